package dto

import "github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"

// Generation strategies accepted by the API.
const (
	StrategyConstructive = "constructive"
	StrategyBacktracking = "backtracking"
)

// CohortRef identifies one (year, division) cohort in a request.
type CohortRef struct {
	Year     string `json:"year" validate:"required"`
	Division string `json:"division" validate:"required"`
}

// GenerateTimetableRequest carries everything one generation run needs.
// ExistingTimetable plus LockedSlotIDs enable partial regeneration: locked
// slots are preloaded untouched and only TargetCohorts are rebuilt.
type GenerateTimetableRequest struct {
	Branch            models.BranchConfig     `json:"branch" validate:"required"`
	Curriculum        models.Curriculum       `json:"curriculum" validate:"required"`
	Strategy          string                  `json:"strategy,omitempty" validate:"omitempty,oneof=constructive backtracking"`
	Optimize          *bool                   `json:"optimize,omitempty"`
	ExistingTimetable []models.SlotAssignment `json:"existing_timetable,omitempty" validate:"omitempty,dive"`
	LockedSlotIDs     []string                `json:"locked_slot_ids,omitempty"`
	TargetCohorts     []CohortRef             `json:"target_cohorts,omitempty" validate:"omitempty,dive"`
	Description       string                  `json:"description,omitempty"`
}

// TimetableView is the hierarchical year -> division -> day -> slots shape
// returned to clients. Slots within a day are sorted by slot index.
type TimetableView map[string]map[string]map[string][]models.SlotAssignment

// GenerateTimetableResponse is the full outcome of a generation run. A
// run that produced slots but failed acceptance still returns them, with
// Failure explaining what blocked completion.
type GenerateTimetableResponse struct {
	Success   bool                    `json:"success"`
	Timetable TimetableView           `json:"timetable"`
	Slots     []models.SlotAssignment `json:"slots"`
	Stats     models.TimetableStats   `json:"stats"`
	Quality   models.QualityReport    `json:"quality"`
	Valid     bool                    `json:"valid"`
	Failure   *models.FailureReport   `json:"failure,omitempty"`
	VersionID string                  `json:"version_id,omitempty"`
}

// OptimizeTimetableRequest asks for hill-climbing on an existing timetable.
type OptimizeTimetableRequest struct {
	Timetable  []models.SlotAssignment `json:"timetable" validate:"required,min=1,dive"`
	Branch     models.BranchConfig     `json:"branch" validate:"required"`
	Curriculum models.Curriculum       `json:"curriculum" validate:"required"`
	Iterations int                     `json:"iterations,omitempty" validate:"omitempty,min=1,max=10000"`
}

// OptimizeStats reports what the hill climber did.
type OptimizeStats struct {
	Iterations int `json:"iterations"`
	Accepted   int `json:"accepted"`
	Restarts   int `json:"restarts"`
}

// OptimizeTimetableResponse returns the improved timetable with scores.
type OptimizeTimetableResponse struct {
	Timetable    TimetableView           `json:"timetable"`
	Slots        []models.SlotAssignment `json:"slots"`
	InitialScore float64                 `json:"initial_score"`
	FinalScore   float64                 `json:"final_score"`
	Improvement  float64                 `json:"improvement"`
	Stats        OptimizeStats           `json:"stats"`
}

// EngineStatusResponse describes engine capabilities for clients.
type EngineStatusResponse struct {
	Strategies      []string `json:"strategies"`
	HardConstraints []string `json:"hard_constraints"`
	SoftConstraints []string `json:"soft_constraints"`
	MaxIterations   int      `json:"max_iterations"`
	OptimizerActive bool     `json:"optimizer_active"`
}
