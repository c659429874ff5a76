package services

import (
	"github.com/google/uuid"
	"github.com/openmol/drugforge/internal/models"
	"github.com/openmol/drugforge/internal/types"
	"gorm.io/gorm"
)

// MoleculeInput carries the fields of a completed molecule generation.
type MoleculeInput struct {
	Title             string
	SourceSmilesA     string
	SourceSmilesB     string
	Smiles            string
	IupacName         string
	ConversionDetails string
	PotentialDiseases string
	Information       string
}

// SaveGeneratedMolecule inserts a generated molecule for the owning user.
// Molecules are immutable once created; there is no update path.
func SaveGeneratedMolecule(db *gorm.DB, userID string, in MoleculeInput) (*models.GeneratedMolecule, error) {
	molecule := models.GeneratedMolecule{
		ID:                uuid.New().String(),
		UserID:            userID,
		Title:             in.Title,
		SourceSmilesA:     in.SourceSmilesA,
		SourceSmilesB:     in.SourceSmilesB,
		Smiles:            in.Smiles,
		IupacName:         in.IupacName,
		ConversionDetails: in.ConversionDetails,
		PotentialDiseases: in.PotentialDiseases,
		Information:       in.Information,
	}

	if err := db.Create(&molecule).Error; err != nil {
		return nil, types.Storage(err)
	}

	return &molecule, nil
}

// ListGeneratedMolecules returns the caller's molecules, oldest first. The SPA
// treats the last element as the most recent generation.
func ListGeneratedMolecules(db *gorm.DB, userID string) ([]models.GeneratedMolecule, error) {
	var molecules []models.GeneratedMolecule
	if err := db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&molecules).Error; err != nil {
		return nil, types.Storage(err)
	}
	return molecules, nil
}

// FindGeneratedMolecule looks up one molecule of the caller by title and SMILES.
func FindGeneratedMolecule(db *gorm.DB, userID, title, smiles string) (*models.GeneratedMolecule, error) {
	var molecule models.GeneratedMolecule
	err := db.Where("user_id = ? AND title = ? AND smiles = ?", userID, title, smiles).
		First(&molecule).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, types.Storage(err)
	}
	return &molecule, nil
}
