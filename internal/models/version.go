package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// VersionAction labels how a timetable version came to exist.
type VersionAction string

const (
	VersionActionGenerated VersionAction = "GENERATED"
	VersionActionOptimized VersionAction = "OPTIMIZED"
	VersionActionRestored  VersionAction = "RESTORED"
)

// TimetableVersion is one persisted snapshot of a branch timetable.
// Payload holds the flat slot list as JSON.
type TimetableVersion struct {
	ID           string         `db:"id" json:"id"`
	BranchID     string         `db:"branch_id" json:"branch_id"`
	Version      int            `db:"version" json:"version"`
	Action       VersionAction  `db:"action" json:"action"`
	Description  string         `db:"description" json:"description"`
	QualityScore float64        `db:"quality_score" json:"quality_score"`
	Payload      types.JSONText `db:"payload" json:"payload"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// TimetableVersionMeta is the lightweight list-view projection.
type TimetableVersionMeta struct {
	ID           string        `json:"id"`
	Version      int           `json:"version"`
	Action       VersionAction `json:"action"`
	Description  string        `json:"description"`
	QualityScore float64       `json:"quality_score"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Meta projects the version into its list-view form.
func (v TimetableVersion) Meta() TimetableVersionMeta {
	return TimetableVersionMeta{
		ID:           v.ID,
		Version:      v.Version,
		Action:       v.Action,
		Description:  v.Description,
		QualityScore: v.QualityScore,
		CreatedAt:    v.CreatedAt,
	}
}
