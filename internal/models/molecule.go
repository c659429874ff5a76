package models

import (
	"time"
)

// GeneratedMolecule is an AI-generated molecule owned by a user. Records are
// immutable once created; there is no update path. JSON field names follow the
// wire contract the SPA consumes.
type GeneratedMolecule struct {
	ID                string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID            string    `gorm:"type:char(36);not null;index:idx_molecules_user" json:"userId"`
	Title             string    `gorm:"size:255;not null" json:"newmoleculetitle"`
	SourceSmilesA     string    `gorm:"size:2048;not null" json:"smilesoffirst"`
	SourceSmilesB     string    `gorm:"size:2048;not null" json:"smilesofsecond"`
	Smiles            string    `gorm:"size:2048" json:"newSmiles"`
	IupacName         string    `gorm:"size:1024" json:"newIupacName"`
	ConversionDetails string    `gorm:"type:text" json:"conversionDetails"`
	PotentialDiseases string    `gorm:"type:text" json:"potentialDiseases"`
	Information       string    `gorm:"type:text" json:"information"`
	CreatedAt         time.Time `json:"created"`
}

// TableName overrides the table name for GeneratedMolecule
func (GeneratedMolecule) TableName() string {
	return "generated_molecules"
}
