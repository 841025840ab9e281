package dto

import (
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/constraints"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// ValidateTimetableRequest asks for a full constraint sweep of a timetable.
type ValidateTimetableRequest struct {
	Timetable  []models.SlotAssignment `json:"timetable" validate:"required,min=1,dive"`
	Branch     models.BranchConfig     `json:"branch" validate:"required"`
	Curriculum models.Curriculum       `json:"curriculum" validate:"required"`
}

// ValidateTimetableResponse mirrors the constraint engine report.
type ValidateTimetableResponse struct {
	Valid          bool                    `json:"valid"`
	HardViolations []constraints.Violation `json:"hard_violations"`
	SoftViolations []constraints.Violation `json:"soft_violations"`
	Quality        models.QualityReport    `json:"quality"`
	Summary        constraints.Summary     `json:"summary"`
}

// ValidateEditRequest checks a single proposed slot change against an
// existing timetable without re-running generation.
type ValidateEditRequest struct {
	NewSlot    models.SlotAssignment   `json:"new_slot" validate:"required"`
	Timetable  []models.SlotAssignment `json:"timetable" validate:"dive"`
	Branch     models.BranchConfig     `json:"branch" validate:"required"`
	Curriculum models.Curriculum       `json:"curriculum" validate:"required"`
}

// EditSuggestion proposes an alternative placement for a rejected edit.
type EditSuggestion struct {
	Day  string `json:"day"`
	Slot int    `json:"slot"`
}

// ValidateEditResponse lists the conflicts the edit would introduce and,
// when it is rejected, conflict-free alternative placements.
type ValidateEditResponse struct {
	Valid       bool                    `json:"valid"`
	Conflicts   []constraints.Violation `json:"conflicts"`
	Suggestions []EditSuggestion        `json:"suggestions,omitempty"`
}

// ConstraintToggleRequest enables or disables a named constraint.
type ConstraintToggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// ConstraintInfo describes one registered constraint rule.
type ConstraintInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Enabled     bool   `json:"enabled"`
}
