package models

import (
	"time"
)

// The domain record stores below share one shape: many records per user, one
// user per record, no cross-references. Each carries a storage-level unique
// compound index on its natural key so two concurrent identical saves cannot
// both land; the advisory check-exists probe stays as a fast path only.

// DrugName is a persisted naming suggestion for a generated molecule.
// Natural key: (user, molecule title, smiles).
type DrugName struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:char(36);not null;uniqueIndex:uq_drug_names_key" json:"userId"`
	MoleculeTitle string    `gorm:"size:191;not null;uniqueIndex:uq_drug_names_key" json:"moleculeTitle"`
	Smiles        string    `gorm:"size:512;not null;uniqueIndex:uq_drug_names_key" json:"smiles"`
	SuggestedName string    `gorm:"size:255;not null" json:"suggestedName"`
	NamingDetails string    `gorm:"type:text" json:"namingDetails"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName overrides the table name for DrugName
func (DrugName) TableName() string {
	return "drug_names"
}

// ResearchPaperBundle associates a molecule fingerprint with externally
// sourced paper metadata. Natural key: (user, molecule title, smiles).
type ResearchPaperBundle struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:char(36);not null;uniqueIndex:uq_paper_bundles_key" json:"userId"`
	MoleculeTitle string    `gorm:"size:191;not null;uniqueIndex:uq_paper_bundles_key" json:"moleculeTitle"`
	Smiles        string    `gorm:"size:512;not null;uniqueIndex:uq_paper_bundles_key" json:"smiles"`
	Papers        JSON      `gorm:"type:json" json:"papers"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName overrides the table name for ResearchPaperBundle
func (ResearchPaperBundle) TableName() string {
	return "research_paper_bundles"
}

// GeneratedPaperBundle associates a molecule fingerprint with one AI-generated
// research paper. Natural key: (user, molecule title, smiles).
type GeneratedPaperBundle struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        string    `gorm:"type:char(36);not null;uniqueIndex:uq_generated_papers_key" json:"userId"`
	MoleculeTitle string    `gorm:"size:191;not null;uniqueIndex:uq_generated_papers_key" json:"moleculeTitle"`
	Smiles        string    `gorm:"size:512;not null;uniqueIndex:uq_generated_papers_key" json:"smiles"`
	Paper         JSON      `gorm:"type:json" json:"paper"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName overrides the table name for GeneratedPaperBundle
func (GeneratedPaperBundle) TableName() string {
	return "generated_paper_bundles"
}

// TargetSearch is a persisted target-prediction analysis for one molecule.
// Natural key: (user, smiles).
type TargetSearch struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:uq_target_searches_key" json:"userId"`
	Smiles    string    `gorm:"size:512;not null;uniqueIndex:uq_target_searches_key" json:"smiles"`
	Targets   JSON      `gorm:"type:json" json:"targets"`
	Research  JSON      `gorm:"type:json" json:"research"`
	Docking   JSON      `gorm:"type:json" json:"docking"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for TargetSearch
func (TargetSearch) TableName() string {
	return "target_searches"
}
