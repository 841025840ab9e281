package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// FeasibilityVerifier runs cheap structural checks before any search is
// attempted: enough slots per cohort, enough labs for parallel batches
// and enough teacher capacity for the assigned load.
type FeasibilityVerifier struct {
	branch     *models.BranchConfig
	curriculum *models.Curriculum
	weeklyCap  int
	logger     *zap.Logger
}

// NewFeasibilityVerifier builds a verifier. weeklyCap bounds teachers
// without an explicit capacity; zero falls back to the model default.
func NewFeasibilityVerifier(branch *models.BranchConfig, curriculum *models.Curriculum, weeklyCap int, logger *zap.Logger) *FeasibilityVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeasibilityVerifier{branch: branch, curriculum: curriculum, weeklyCap: weeklyCap, logger: logger}
}

// Verify returns nil when generation can proceed, otherwise a failure
// report naming every blocker found. Checks run in cost order and all
// blockers of the failing tier are collected before returning.
func (v *FeasibilityVerifier) Verify() *models.FailureReport {
	if blockers := v.checkTime(); len(blockers) > 0 {
		return v.report("INSUFFICIENT_TIME", blockers,
			"reduce weekly sessions, add working days or add slots per day")
	}
	if blockers := v.checkLabs(); len(blockers) > 0 {
		return v.report("INSUFFICIENT_LABS", blockers,
			"add shared labs or reduce lab batches per year")
	}
	if blockers := v.checkTeachers(); len(blockers) > 0 {
		return v.report("TEACHER_OVERLOAD", blockers,
			"assign more teachers or raise weekly capacity")
	}
	return nil
}

func (v *FeasibilityVerifier) report(reason string, blockers []models.FailureBlocker, suggestion string) *models.FailureReport {
	v.logger.Warn("feasibility check failed",
		zap.String("reason", reason),
		zap.Int("blockers", len(blockers)))
	return &models.FailureReport{
		Stage:       StageFeasibility,
		Reason:      reason,
		Details:     blockers[0].Details,
		Blockers:    blockers,
		Suggestions: []string{suggestion},
	}
}

// checkTime verifies each cohort's weekly demand fits its teaching grid.
// A practical occupies one synchronized window of its session length for
// the whole cohort regardless of batch count.
func (v *FeasibilityVerifier) checkTime() []models.FailureBlocker {
	var blockers []models.FailureBlocker
	capacity := len(v.branch.WorkingDays) * v.branch.TeachingSlotsPerDay()
	for _, year := range v.branch.AcademicYears {
		for _, division := range v.branch.DivisionsFor(year) {
			demand := 0
			for _, s := range v.curriculum.TheorySubjects(year, division) {
				demand += s.WeeklySessions
			}
			for _, s := range v.curriculum.LabSubjects(year, division) {
				demand += s.Length()
			}
			if demand > capacity {
				blockers = append(blockers, models.FailureBlocker{
					Issue: "cohort demand exceeds weekly slots",
					Details: fmt.Sprintf("%s needs %d slots but only %d are available",
						models.CohortKey(year, division), demand, capacity),
				})
			}
		}
	}
	return blockers
}

// checkLabs verifies every year's parallel batches can each get a lab.
func (v *FeasibilityVerifier) checkLabs() []models.FailureBlocker {
	var blockers []models.FailureBlocker
	labs := len(v.branch.SharedLabs)
	for _, year := range v.branch.AcademicYears {
		hasPracticals := false
		for _, division := range v.branch.DivisionsFor(year) {
			if len(v.curriculum.LabSubjects(year, division)) > 0 {
				hasPracticals = true
				break
			}
		}
		if !hasPracticals {
			continue
		}
		if batches := v.branch.BatchesFor(year); batches > labs {
			blockers = append(blockers, models.FailureBlocker{
				Issue: "not enough labs for parallel batches",
				Details: fmt.Sprintf("year %s runs %d parallel batches but only %d shared labs exist",
					year, batches, labs),
			})
		}
	}
	return blockers
}

// checkTeachers verifies explicitly assigned teachers can absorb their
// weekly load. Competency-resolved subjects are skipped since the load
// can spread over several candidates.
func (v *FeasibilityVerifier) checkTeachers() []models.FailureBlocker {
	demand := make(map[string]int)
	for _, subject := range v.curriculum.Subjects {
		teacher := v.curriculum.AssignedTeacher(subject.Name)
		if teacher == "" || teacher == models.TeacherTBA {
			continue
		}
		divisions := 0
		for _, division := range v.branch.DivisionsFor(subject.Year) {
			if subject.AppliesTo(division) {
				divisions++
			}
		}
		if subject.IsPractical {
			demand[teacher] += subject.Length() * divisions * v.branch.BatchesFor(subject.Year)
		} else {
			demand[teacher] += subject.WeeklySessions * divisions
		}
	}

	var blockers []models.FailureBlocker
	for teacher, load := range demand {
		capacity := v.weeklyCap
		if t, ok := v.curriculum.TeacherByName(teacher); ok {
			capacity = t.WeeklyCapacity()
		} else if capacity <= 0 {
			capacity = models.Teacher{}.WeeklyCapacity()
		}
		if load > capacity {
			blockers = append(blockers, models.FailureBlocker{
				Issue: "teacher weekly capacity exceeded",
				Details: fmt.Sprintf("%s is assigned %d sessions against a capacity of %d",
					teacher, load, capacity),
			})
		}
	}
	return blockers
}
