package dto

import "github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"

// VersionListResponse returns the stored versions of one branch timetable.
type VersionListResponse struct {
	BranchID string                        `json:"branch_id"`
	Versions []models.TimetableVersionMeta `json:"versions"`
}

// VersionDetailResponse returns one stored version with its slots.
type VersionDetailResponse struct {
	Meta  models.TimetableVersionMeta `json:"meta"`
	Slots []models.SlotAssignment     `json:"slots"`
}

// RestoreVersionResponse confirms a restore and echoes the new head version.
type RestoreVersionResponse struct {
	RestoredFrom string                      `json:"restored_from"`
	Head         models.TimetableVersionMeta `json:"head"`
	Slots        []models.SlotAssignment     `json:"slots"`
}
