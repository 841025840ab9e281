package engine

import "fmt"

// Generation stages reported in StageError and failure reports.
const (
	StageFeasibility   = "FEASIBILITY"
	StageLabScheduling = "LAB_SCHEDULING"
	StageTheory        = "THEORY_SCHEDULING"
	StageBacktracking  = "BACKTRACKING"
	StagePostCheck     = "POST_VALIDATION"
)

// StageError is a structured engine failure carrying the stage it arose
// in, a machine-readable reason and human-readable details.
type StageError struct {
	Stage   string
	Reason  string
	Details string
}

func (e *StageError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Stage, e.Reason, e.Details)
}

// NewStageError builds a StageError with formatted details.
func NewStageError(stage, reason, format string, args ...any) *StageError {
	return &StageError{Stage: stage, Reason: reason, Details: fmt.Sprintf(format, args...)}
}
