package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/openmol/drugforge/internal/models"
	"github.com/openmol/drugforge/internal/types"
	"gorm.io/gorm"
)

// DrugNameExists probes for a saved drug name by its natural key. Advisory
// only: the unique index on drug_names is what actually prevents duplicates.
func DrugNameExists(db *gorm.DB, userID, moleculeTitle, smiles string) (bool, error) {
	var count int64
	err := db.Model(&models.DrugName{}).
		Where("user_id = ? AND molecule_title = ? AND smiles = ?", userID, moleculeTitle, smiles).
		Count(&count).Error
	if err != nil {
		return false, types.Storage(err)
	}
	return count > 0, nil
}

// SaveDrugName inserts a naming suggestion. A natural-key duplicate surfaces
// as a 409 conflict rather than a second row.
func SaveDrugName(db *gorm.DB, userID, moleculeTitle, smiles, suggestedName, namingDetails string) (*models.DrugName, error) {
	record := models.DrugName{
		ID:            uuid.New().String(),
		UserID:        userID,
		MoleculeTitle: moleculeTitle,
		Smiles:        smiles,
		SuggestedName: suggestedName,
		NamingDetails: namingDetails,
	}

	if err := db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ConflictSave("Drug name already saved for this molecule")
		}
		return nil, types.Storage(err)
	}

	return &record, nil
}

// ListDrugNames returns the caller's saved naming suggestions, newest first.
func ListDrugNames(db *gorm.DB, userID string) ([]models.DrugName, error) {
	var records []models.DrugName
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, types.Storage(err)
	}
	return records, nil
}
