package engine

import (
	"fmt"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// PostValidator is the final acceptance gate on a generated timetable:
// it rejects empty results, too few active days, incomplete lab
// coverage per batch and theory shortfalls beyond the slack.
type PostValidator struct {
	branch      *models.BranchConfig
	curriculum  *models.Curriculum
	minDays     int
	theorySlack int
}

// NewPostValidator builds the gate. Non-positive values default to a
// five-day minimum (capped at the configured week) and a slack of two
// missing theory sessions per cohort.
func NewPostValidator(branch *models.BranchConfig, curriculum *models.Curriculum, minDays, theorySlack int) *PostValidator {
	if minDays <= 0 {
		minDays = 5
	}
	if minDays > len(branch.WorkingDays) {
		minDays = len(branch.WorkingDays)
	}
	if theorySlack < 0 {
		theorySlack = 2
	}
	return &PostValidator{branch: branch, curriculum: curriculum, minDays: minDays, theorySlack: theorySlack}
}

// Validate returns nil when the timetable is acceptable, otherwise a
// StageError naming the first failed gate.
func (p *PostValidator) Validate(slots []models.SlotAssignment) *StageError {
	if len(slots) == 0 {
		return &StageError{Stage: StagePostCheck, Reason: "EMPTY_TIMETABLE",
			Details: "generation produced no assignments"}
	}
	if err := p.checkDays(slots); err != nil {
		return err
	}
	if err := p.checkLabCoverage(slots); err != nil {
		return err
	}
	return p.checkTheoryTotals(slots)
}

func (p *PostValidator) checkDays(slots []models.SlotAssignment) *StageError {
	days := make(map[string]bool)
	for _, a := range slots {
		if a.Kind != models.SlotKindFree {
			days[a.Day] = true
		}
	}
	if len(days) < p.minDays {
		return NewStageError(StagePostCheck, "INSUFFICIENT_DAYS",
			"classes span %d days, expected at least %d", len(days), p.minDays)
	}
	return nil
}

// checkLabCoverage verifies every batch of every cohort got a session
// of every practical subject.
func (p *PostValidator) checkLabCoverage(slots []models.SlotAssignment) *StageError {
	type batchKey struct {
		Year     string
		Division string
		Batch    string
	}
	covered := make(map[batchKey]map[string]bool)
	for _, a := range slots {
		if a.Kind != models.SlotKindLab {
			continue
		}
		key := batchKey{a.Year, a.Division, a.Batch}
		if covered[key] == nil {
			covered[key] = make(map[string]bool)
		}
		covered[key][a.Subject] = true
	}

	for _, year := range p.branch.AcademicYears {
		for _, division := range p.branch.DivisionsFor(year) {
			required := p.curriculum.LabSubjects(year, division)
			if len(required) == 0 {
				continue
			}
			for b := 0; b < p.branch.BatchesFor(year); b++ {
				batch := fmt.Sprintf("B%d", b+1)
				got := covered[batchKey{year, division, batch}]
				for _, subject := range required {
					if !got[subject.Name] {
						return NewStageError(StagePostCheck, "LAB_COVERAGE_FAILED",
							"%s batch %s is missing practical %s",
							models.CohortKey(year, division), batch, subject.Name)
					}
				}
			}
		}
	}
	return nil
}

// checkTheoryTotals tolerates a small per-cohort shortfall but rejects
// anything beyond the slack.
func (p *PostValidator) checkTheoryTotals(slots []models.SlotAssignment) *StageError {
	type cohort struct {
		Year     string
		Division string
	}
	actual := make(map[cohort]int)
	for _, a := range slots {
		if a.Kind == models.SlotKindTheory && a.Subject != models.SubjectFree {
			actual[cohort{a.Year, a.Division}]++
		}
	}

	for _, year := range p.branch.AcademicYears {
		for _, division := range p.branch.DivisionsFor(year) {
			required := 0
			for _, subject := range p.curriculum.TheorySubjects(year, division) {
				required += subject.WeeklySessions
			}
			if missing := required - actual[cohort{year, division}]; missing > p.theorySlack {
				return NewStageError(StagePostCheck, "THEORY_MISSING",
					"%s is missing %d theory sessions (slack %d)",
					models.CohortKey(year, division), missing, p.theorySlack)
			}
		}
	}
	return nil
}
