package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/openmol/drugforge/internal/models"
	"github.com/openmol/drugforge/internal/types"
	"gorm.io/gorm"
)

// Paper is one externally sourced literature record.
type Paper struct {
	Title    string           `json:"title"`
	Authors  string           `json:"authors"`
	Year     types.FlexString `json:"year"`
	Abstract string           `json:"abstract"`
	DOI      string           `json:"doi"`
	URL      string           `json:"url"`
}

// GeneratedPaper is one AI-generated research paper in IEEE-like structure.
type GeneratedPaper struct {
	Title                string   `json:"title"`
	Authors              string   `json:"authors"`
	Abstract             string   `json:"abstract"`
	Keywords             []string `json:"keywords"`
	Introduction         string   `json:"introduction"`
	Methodology          string   `json:"methodology"`
	ResultsAndDiscussion string   `json:"resultsAndDiscussion"`
	Conclusion           string   `json:"conclusion"`
	References           []string `json:"references"`
}

// ResearchPapersExist probes for a saved bundle by its natural key.
func ResearchPapersExist(db *gorm.DB, userID, moleculeTitle, smiles string) (bool, error) {
	var count int64
	err := db.Model(&models.ResearchPaperBundle{}).
		Where("user_id = ? AND molecule_title = ? AND smiles = ?", userID, moleculeTitle, smiles).
		Count(&count).Error
	if err != nil {
		return false, types.Storage(err)
	}
	return count > 0, nil
}

// SaveResearchPapers inserts a bundle of externally sourced papers for one molecule.
func SaveResearchPapers(db *gorm.DB, userID, moleculeTitle, smiles string, papers []Paper) (*models.ResearchPaperBundle, error) {
	payload, err := models.NewJSON(papers)
	if err != nil {
		return nil, types.Validation("Invalid papers payload")
	}

	bundle := models.ResearchPaperBundle{
		ID:            uuid.New().String(),
		UserID:        userID,
		MoleculeTitle: moleculeTitle,
		Smiles:        smiles,
		Papers:        payload,
	}

	if err := db.Create(&bundle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ConflictSave("Research papers already saved for this molecule")
		}
		return nil, types.Storage(err)
	}

	return &bundle, nil
}

// ListResearchPapers returns the caller's saved bundles, newest first.
func ListResearchPapers(db *gorm.DB, userID string) ([]models.ResearchPaperBundle, error) {
	var bundles []models.ResearchPaperBundle
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bundles).Error; err != nil {
		return nil, types.Storage(err)
	}
	return bundles, nil
}

// GeneratedPaperExists probes for a saved generated paper by its natural key.
func GeneratedPaperExists(db *gorm.DB, userID, moleculeTitle, smiles string) (bool, error) {
	var count int64
	err := db.Model(&models.GeneratedPaperBundle{}).
		Where("user_id = ? AND molecule_title = ? AND smiles = ?", userID, moleculeTitle, smiles).
		Count(&count).Error
	if err != nil {
		return false, types.Storage(err)
	}
	return count > 0, nil
}

// SaveGeneratedPaper inserts one AI-generated paper for one molecule.
func SaveGeneratedPaper(db *gorm.DB, userID, moleculeTitle, smiles string, paper GeneratedPaper) (*models.GeneratedPaperBundle, error) {
	payload, err := models.NewJSON(paper)
	if err != nil {
		return nil, types.Validation("Invalid paper payload")
	}

	bundle := models.GeneratedPaperBundle{
		ID:            uuid.New().String(),
		UserID:        userID,
		MoleculeTitle: moleculeTitle,
		Smiles:        smiles,
		Paper:         payload,
	}

	if err := db.Create(&bundle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ConflictSave("Generated paper already saved for this molecule")
		}
		return nil, types.Storage(err)
	}

	return &bundle, nil
}

// ListGeneratedPapers returns the caller's saved generated papers, newest first.
func ListGeneratedPapers(db *gorm.DB, userID string) ([]models.GeneratedPaperBundle, error) {
	var bundles []models.GeneratedPaperBundle
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bundles).Error; err != nil {
		return nil, types.Storage(err)
	}
	return bundles, nil
}
