package models

import "fmt"

// SlotKind distinguishes the three assignment flavors in the grid.
type SlotKind string

const (
	SlotKindTheory SlotKind = "THEORY"
	SlotKindLab    SlotKind = "LAB"
	SlotKindFree   SlotKind = "FREE"
)

// Sentinel values for not-yet-resolved resources. A TBA teacher or room
// is exempt from overlap checks; completion checks force resolution.
const (
	TeacherTBA  = "TBA"
	RoomTBA     = "TBA"
	SubjectFree = "Free"
)

// SlotAssignment is one cell of the timetable grid. A cohort slot holds
// either a single theory assignment or several parallel lab assignments,
// one per batch.
type SlotAssignment struct {
	ID       string   `json:"id,omitempty"`
	Day      string   `json:"day" validate:"required"`
	Slot     int      `json:"slot" validate:"min=0"`
	Year     string   `json:"year" validate:"required"`
	Division string   `json:"division" validate:"required"`
	Batch    string   `json:"batch,omitempty"`
	Subject  string   `json:"subject" validate:"required"`
	Teacher  string   `json:"teacher"`
	Room     string   `json:"room"`
	Kind     SlotKind `json:"kind" validate:"required,oneof=THEORY LAB FREE"`
	Locked   bool     `json:"locked,omitempty"`
}

// CohortKey identifies the (year, division) cohort of the assignment.
func (a SlotAssignment) CohortKey() string {
	return a.Year + "-" + a.Division
}

// SlotID is the stable identity of the grid cell the assignment occupies.
func (a SlotAssignment) SlotID() string {
	return fmt.Sprintf("%s_%d_%s_%s", a.Day, a.Slot, a.Year, a.Division)
}

// HasTeacher reports whether a concrete teacher is attached.
func (a SlotAssignment) HasTeacher() bool {
	return a.Teacher != "" && a.Teacher != TeacherTBA
}

// HasRoom reports whether a concrete room is attached.
func (a SlotAssignment) HasRoom() bool {
	return a.Room != "" && a.Room != RoomTBA
}

// CohortKey builds the canonical "year-division" key.
func CohortKey(year, division string) string {
	return year + "-" + division
}

// TimetableStats summarizes one generation run.
type TimetableStats struct {
	Iterations  int                     `json:"iterations"`
	Backtracks  int                     `json:"backtracks"`
	TheoryCount int                     `json:"theory_count"`
	LabCount    int                     `json:"lab_count"`
	TotalSlots  int                     `json:"total_slots"`
	PerCohort   map[string]CohortResult `json:"per_cohort,omitempty"`
}

// CohortResult reports the per-cohort outcome of a generation run.
type CohortResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
	Labs    int    `json:"labs"`
	Theory  int    `json:"theory"`
}

// QualityReport grades a timetable against the soft constraints.
type QualityReport struct {
	Score     float64            `json:"score"`
	Grade     string             `json:"grade"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

// GradeFor converts a 0-100 quality score into a letter grade.
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

// FailureBlocker names one concrete obstacle found during a failed run.
type FailureBlocker struct {
	Issue   string `json:"issue"`
	Details string `json:"details,omitempty"`
}

// FailureReport explains why a generation run could not complete.
type FailureReport struct {
	Stage       string           `json:"stage"`
	Reason      string           `json:"reason"`
	Details     string           `json:"details,omitempty"`
	Blockers    []FailureBlocker `json:"blockers,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
}
