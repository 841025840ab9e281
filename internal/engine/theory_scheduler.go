package engine

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// TheoryReport summarizes lecture placement for one cohort.
type TheoryReport struct {
	Required   int
	Placed     int
	Shortfalls map[string]int
}

// TheoryScheduler greedily fills the remaining grid with lectures after
// labs are locked in. Subjects with the largest weekly demand go first;
// each session lands on the least-loaded admissible day.
type TheoryScheduler struct {
	state           *State
	maxDailyLoad    int
	teacherDailyCap int
	logger          *zap.Logger
}

// NewTheoryScheduler builds a theory scheduler over a shared state.
// Non-positive caps fall back to 7 daily cohort slots and 4 daily
// teacher slots.
func NewTheoryScheduler(state *State, maxDailyLoad, teacherDailyCap int, logger *zap.Logger) *TheoryScheduler {
	if maxDailyLoad <= 0 {
		maxDailyLoad = 7
	}
	if teacherDailyCap <= 0 {
		teacherDailyCap = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TheoryScheduler{
		state:           state,
		maxDailyLoad:    maxDailyLoad,
		teacherDailyCap: teacherDailyCap,
		logger:          logger,
	}
}

// ScheduleCohort places every theory session of one cohort. Shortfalls
// are not fatal here; the post-generation validator decides whether the
// final timetable is acceptable.
func (t *TheoryScheduler) ScheduleCohort(year, division string) TheoryReport {
	subjects := t.state.curriculum.TheorySubjects(year, division)
	sort.SliceStable(subjects, func(i, j int) bool {
		return subjects[i].WeeklySessions > subjects[j].WeeklySessions
	})

	report := TheoryReport{Shortfalls: make(map[string]int)}
	for _, subject := range subjects {
		teacher := t.state.curriculum.AssignedTeacher(subject.Name)
		if teacher == "" {
			teacher = models.TeacherTBA
		}
		report.Required += subject.WeeklySessions
		for t.state.RemainingSessions(subject, division) > 0 {
			if !t.placeSession(year, division, subject.Name, teacher) {
				missing := t.state.RemainingSessions(subject, division)
				report.Shortfalls[subject.Name] = missing
				t.logger.Warn("theory shortfall",
					zap.String("cohort", models.CohortKey(year, division)),
					zap.String("subject", subject.Name),
					zap.Int("missing", missing))
				break
			}
			report.Placed++
		}
	}
	return report
}

func (t *TheoryScheduler) placeSession(year, division, subject, teacher string) bool {
	tried := make(map[string]bool)
	for range t.state.branch.WorkingDays {
		day := t.pickDay(year, division, teacher, tried)
		if day == "" {
			return false
		}
		tried[day] = true
		if t.assignOnDay(day, year, division, subject, teacher) {
			return true
		}
	}
	return false
}

// pickDay selects the untried day minimizing cohort plus teacher load,
// skipping days already at either cap.
func (t *TheoryScheduler) pickDay(year, division, teacher string, tried map[string]bool) string {
	best := ""
	bestLoad := -1
	for _, day := range t.state.branch.WorkingDays {
		if tried[day] {
			continue
		}
		cohortLoad := t.state.DailyCohortLoad(year, division, day)
		if cohortLoad >= t.maxDailyLoad {
			continue
		}
		teacherLoad := t.state.DailyTeacherLoad(teacher, day)
		if teacher != models.TeacherTBA && teacherLoad >= t.teacherDailyCap {
			continue
		}
		if load := cohortLoad + teacherLoad; best == "" || load < bestLoad {
			best, bestLoad = day, load
		}
	}
	return best
}

func (t *TheoryScheduler) assignOnDay(day, year, division, subject, teacher string) bool {
	for slot := 0; slot < t.state.branch.SlotsPerDay; slot++ {
		if t.state.branch.IsRecess(slot) {
			continue
		}
		if !t.state.IsCohortSlotFree(day, slot, year, division) {
			continue
		}
		if !t.state.IsTeacherAvailable(teacher, day, slot) {
			continue
		}
		room := t.findRoom(day, slot, year, division)
		if room == "" {
			continue
		}
		t.state.Assign(models.SlotAssignment{
			Day:      day,
			Slot:     slot,
			Year:     year,
			Division: division,
			Subject:  subject,
			Teacher:  teacher,
			Room:     room,
			Kind:     models.SlotKindTheory,
		}, false)
		return true
	}
	return false
}

// findRoom prefers the cohort's home room, then falls back to any free
// classroom in the branch.
func (t *TheoryScheduler) findRoom(day string, slot int, year, division string) string {
	if home := t.state.branch.HomeRoom(year, division); home != "" &&
		t.state.IsRoomAvailable(home, day, slot) {
		return home
	}
	for _, room := range t.state.branch.AllClassrooms() {
		if t.state.IsRoomAvailable(room, day, slot) {
			return room
		}
	}
	return ""
}
