package models

import "gorm.io/gorm"

// ExportRecord is the audit row persisted per export run. Only run metadata
// is stored; the fetched nutrition data itself never touches the database.
type ExportRecord struct {
	gorm.Model
	RunID      string `gorm:"type:varchar(36);uniqueIndex;not null"`
	StartDate  string `gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	EndDate    string `gorm:"type:varchar(10);not null"`
	Days       int
	Items      int
	Status     string // "completed" | "failed"
	Artifacts  string // comma-separated file paths / URLs
	DurationMs int64
}
