package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// LabReport summarizes lab placement for one cohort.
type LabReport struct {
	Batches   int
	Completed int
	Placed    int
	Missing   []string
}

// LabScheduler places practical sessions first, one window per subject
// per batch, so that batches can run in parallel across distinct labs.
// Commits are locked: the theory phase must schedule around them.
type LabScheduler struct {
	state  *State
	logger *zap.Logger
}

// NewLabScheduler builds a lab scheduler over a shared state.
func NewLabScheduler(state *State, logger *zap.Logger) *LabScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabScheduler{state: state, logger: logger}
}

type labWindow struct {
	day   string
	start int
}

// ScheduleCohort places every practical subject for each batch of one
// cohort. Batches take subjects in rotated order so that parallel
// batches start on different subjects and spread across labs. A cohort
// where no batch completes is a hard failure; partial completion is
// reported and left to the post-generation validator.
func (l *LabScheduler) ScheduleCohort(year, division string) (LabReport, error) {
	subjects := l.state.curriculum.LabSubjects(year, division)
	batches := l.state.branch.BatchesFor(year)
	report := LabReport{Batches: batches}
	if len(subjects) == 0 {
		return report, nil
	}

	for b := 0; b < batches; b++ {
		batch := fmt.Sprintf("B%d", b+1)
		complete := true
		for i := range subjects {
			subject := subjects[(i+b)%len(subjects)]
			// Preloaded slots may already hold this practical, for
			// example when regenerating around locked sessions.
			if l.state.BatchHasLab(subject.Name, year, division, batch) {
				continue
			}
			if l.placeSession(year, division, batch, subject) {
				report.Placed++
				continue
			}
			complete = false
			report.Missing = append(report.Missing,
				fmt.Sprintf("%s %s: %s", models.CohortKey(year, division), batch, subject.Name))
		}
		if complete {
			report.Completed++
		}
	}

	if report.Completed == 0 {
		return report, NewStageError(StageLabScheduling, "NO_BATCH_COMPLETED",
			"no lab batch of %s could be fully scheduled", models.CohortKey(year, division))
	}
	if report.Completed < batches {
		l.logger.Warn("partial lab coverage",
			zap.String("cohort", models.CohortKey(year, division)),
			zap.Int("completed", report.Completed),
			zap.Int("batches", batches))
	}
	return report, nil
}

func (l *LabScheduler) placeSession(year, division, batch string, subject models.Subject) bool {
	duration := subject.Length()
	for _, w := range l.windows(duration) {
		if !l.batchFree(w, duration, year, division, batch, subject.Name) {
			continue
		}
		room := l.findLab(w, duration)
		if room == "" {
			continue
		}
		teacher := l.findTeacher(w, duration, subject.Name)
		if teacher == "" {
			continue
		}
		l.commit(w, duration, year, division, batch, subject.Name, teacher, room)
		return true
	}
	return false
}

// windows enumerates candidate (day, start) pairs for a session of the
// given length, excluding any window touching recess.
func (l *LabScheduler) windows(duration int) []labWindow {
	branch := l.state.branch
	var out []labWindow
	for _, day := range branch.WorkingDays {
		for start := 0; start+duration <= branch.SlotsPerDay; start++ {
			overlapsRecess := false
			for offset := 0; offset < duration; offset++ {
				if branch.IsRecess(start + offset) {
					overlapsRecess = true
					break
				}
			}
			if !overlapsRecess {
				out = append(out, labWindow{day, start})
			}
		}
	}
	return out
}

// batchFree reports whether the batch can occupy the window with the
// given subject. Other batches of the same cohort may already sit
// there, but only on different subjects; theory or whole cohort entries
// block it.
func (l *LabScheduler) batchFree(w labWindow, duration int, year, division, batch, subject string) bool {
	for offset := 0; offset < duration; offset++ {
		for _, entry := range l.state.At(w.day, w.start+offset, year, division) {
			if entry.Kind != models.SlotKindLab || entry.Batch == "" || entry.Batch == batch {
				return false
			}
			if entry.Subject == subject {
				return false
			}
		}
	}
	return true
}

func (l *LabScheduler) findLab(w labWindow, duration int) string {
	for _, lab := range l.state.branch.SharedLabs {
		free := true
		for offset := 0; offset < duration; offset++ {
			if !l.state.IsRoomAvailable(lab.Name, w.day, w.start+offset) {
				free = false
				break
			}
		}
		if free {
			return lab.Name
		}
	}
	return ""
}

// findTeacher picks the first eligible teacher free for the whole
// window. Subjects with no eligible teacher at all fall back to the TBA
// sentinel so the structural slot is still held.
func (l *LabScheduler) findTeacher(w labWindow, duration int, subject string) string {
	eligible := l.state.curriculum.TeachersFor(subject)
	if len(eligible) == 0 {
		return models.TeacherTBA
	}
	for _, teacher := range eligible {
		free := true
		for offset := 0; offset < duration; offset++ {
			if !l.state.IsTeacherAvailable(teacher, w.day, w.start+offset) {
				free = false
				break
			}
		}
		if free {
			return teacher
		}
	}
	return ""
}

func (l *LabScheduler) commit(w labWindow, duration int, year, division, batch, subject, teacher, room string) {
	for offset := 0; offset < duration; offset++ {
		l.state.Assign(models.SlotAssignment{
			ID:       fmt.Sprintf("lab_%s_%s_%s_%d_%s_%d", year, division, w.day, w.start, batch, offset),
			Day:      w.day,
			Slot:     w.start + offset,
			Year:     year,
			Division: division,
			Batch:    batch,
			Subject:  subject,
			Teacher:  teacher,
			Room:     room,
			Kind:     models.SlotKindLab,
		}, true)
	}
}
