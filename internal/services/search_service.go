package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/openmol/drugforge/internal/models"
	"github.com/openmol/drugforge/internal/types"
	"gorm.io/gorm"
)

// PredictedTarget is one protein target predicted for a molecule.
type PredictedTarget struct {
	Protein           string                 `json:"protein"`
	Confidence        float64                `json:"confidence"`
	MOA               string                 `json:"moa"`
	Pathways          types.FlexList[string] `json:"pathways"`
	Diseases          types.FlexList[string] `json:"diseases"`
	KnownInteractions any                    `json:"knownInteractions"`
}

// SearchInput carries a target-prediction analysis to persist.
type SearchInput struct {
	Smiles   string                          `json:"smiles"`
	Targets  types.FlexList[PredictedTarget] `json:"targets"`
	Research types.FlexList[Paper]           `json:"research"`
	Docking  any                             `json:"docking"`
}

// TargetSearchExists probes for a saved search by its natural key (user, SMILES).
func TargetSearchExists(db *gorm.DB, userID, smiles string) (bool, error) {
	var count int64
	err := db.Model(&models.TargetSearch{}).
		Where("user_id = ? AND smiles = ?", userID, smiles).
		Count(&count).Error
	if err != nil {
		return false, types.Storage(err)
	}
	return count > 0, nil
}

// SaveTargetSearch inserts one analysis result set for one molecule.
func SaveTargetSearch(db *gorm.DB, userID string, in SearchInput) (*models.TargetSearch, error) {
	targets, err := models.NewJSON(in.Targets.Slice())
	if err != nil {
		return nil, types.Validation("Invalid targets payload")
	}
	research, err := models.NewJSON(in.Research.Slice())
	if err != nil {
		return nil, types.Validation("Invalid research payload")
	}
	docking, err := models.NewJSON(in.Docking)
	if err != nil {
		return nil, types.Validation("Invalid docking payload")
	}

	search := models.TargetSearch{
		ID:       uuid.New().String(),
		UserID:   userID,
		Smiles:   in.Smiles,
		Targets:  targets,
		Research: research,
		Docking:  docking,
	}

	if err := db.Create(&search).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ConflictSave("Search already saved for this molecule")
		}
		return nil, types.Storage(err)
	}

	return &search, nil
}

// ListTargetSearches returns the caller's saved searches, newest first.
func ListTargetSearches(db *gorm.DB, userID string) ([]models.TargetSearch, error) {
	var searches []models.TargetSearch
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&searches).Error; err != nil {
		return nil, types.Storage(err)
	}
	return searches, nil
}
