package constraints

import (
	"fmt"
	"math"
	"sort"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

func stdDev(values []float64) (mean, dev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		dev += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(dev / float64(len(values)))
}

// excessRuns counts how many occupied slots extend a consecutive run
// beyond the limit. Duplicate slot indices collapse into one.
func excessRuns(slots []int, limit int) int {
	if len(slots) == 0 {
		return 0
	}
	sort.Ints(slots)
	excess := 0
	run := 1
	for i := 1; i < len(slots); i++ {
		if slots[i] == slots[i-1] {
			continue
		}
		if slots[i] == slots[i-1]+1 {
			run++
			if run > limit {
				excess++
			}
			continue
		}
		run = 1
	}
	return excess
}

// TeacherConsecutiveRule penalizes teachers running more than the limit
// of back-to-back sessions.
type TeacherConsecutiveRule struct {
	Limit int
}

func (TeacherConsecutiveRule) Name() string { return TeacherConsecutiveLimit }
func (TeacherConsecutiveRule) Description() string {
	return "teachers should not teach too many consecutive slots"
}
func (TeacherConsecutiveRule) Severity() Severity { return SeveritySoft }

func (r TeacherConsecutiveRule) Check(slots []models.SlotAssignment, _ *Context) Result {
	limit := r.Limit
	if limit <= 0 {
		limit = 2
	}
	type dayTeacher struct {
		Teacher string
		Day     string
	}
	byDay := make(map[dayTeacher][]int)
	for _, a := range slots {
		if !a.HasTeacher() {
			continue
		}
		key := dayTeacher{a.Teacher, a.Day}
		byDay[key] = append(byDay[key], a.Slot)
	}

	res := Result{Score: 100}
	violations := 0
	for key, occupied := range byDay {
		if excess := excessRuns(occupied, limit); excess > 0 {
			violations += excess
			res.Violations = append(res.Violations, Violation{
				Constraint: TeacherConsecutiveLimit,
				Severity:   SeveritySoft,
				Message:    fmt.Sprintf("%s exceeds %d consecutive sessions on %s", key.Teacher, limit, key.Day),
				Day:        key.Day,
				Entities:   map[string]string{"teacher": key.Teacher},
			})
		}
	}
	res.Score = math.Max(0, 100-float64(5*violations))
	return res
}

// StudentConsecutiveRule penalizes cohorts sitting through more than
// the limit of back-to-back sessions.
type StudentConsecutiveRule struct {
	Limit int
}

func (StudentConsecutiveRule) Name() string { return StudentConsecutiveLimit }
func (StudentConsecutiveRule) Description() string {
	return "cohorts should not sit too many consecutive slots"
}
func (StudentConsecutiveRule) Severity() Severity { return SeveritySoft }

func (r StudentConsecutiveRule) Check(slots []models.SlotAssignment, _ *Context) Result {
	limit := r.Limit
	if limit <= 0 {
		limit = 3
	}
	type dayCohort struct {
		Cohort string
		Day    string
	}
	byDay := make(map[dayCohort][]int)
	for _, a := range slots {
		if a.Kind == models.SlotKindFree {
			continue
		}
		key := dayCohort{a.CohortKey(), a.Day}
		byDay[key] = append(byDay[key], a.Slot)
	}

	res := Result{Score: 100}
	violations := 0
	for key, occupied := range byDay {
		if excess := excessRuns(occupied, limit); excess > 0 {
			violations += excess
			res.Violations = append(res.Violations, Violation{
				Constraint: StudentConsecutiveLimit,
				Severity:   SeveritySoft,
				Message:    fmt.Sprintf("%s exceeds %d consecutive sessions on %s", key.Cohort, limit, key.Day),
				Day:        key.Day,
				Entities:   map[string]string{"cohort": key.Cohort},
			})
		}
	}
	res.Score = math.Max(0, 100-float64(2*violations))
	return res
}

// BalancedTeacherLoadRule grades how evenly lecture load spreads across
// teachers, excluding practicals and TBA placeholders.
type BalancedTeacherLoadRule struct {
	MaxDeviation float64
}

func (BalancedTeacherLoadRule) Name() string { return BalancedTeacherLoad }
func (BalancedTeacherLoadRule) Description() string {
	return "lecture load should spread evenly across teachers"
}
func (BalancedTeacherLoadRule) Severity() Severity { return SeveritySoft }

func (r BalancedTeacherLoadRule) Check(slots []models.SlotAssignment, _ *Context) Result {
	maxDev := r.MaxDeviation
	if maxDev <= 0 {
		maxDev = 3.0
	}
	loads := make(map[string]int)
	for _, a := range slots {
		if a.Kind != models.SlotKindTheory || !a.HasTeacher() {
			continue
		}
		loads[a.Teacher]++
	}
	if len(loads) < 2 {
		return Result{Score: 100}
	}

	values := make([]float64, 0, len(loads))
	for _, load := range loads {
		values = append(values, float64(load))
	}
	mean, dev := stdDev(values)

	res := Result{Score: math.Max(0, 100-dev/maxDev*100)}
	for teacher, load := range loads {
		if float64(load) > mean+dev && dev > 0 {
			res.Violations = append(res.Violations, Violation{
				Constraint: BalancedTeacherLoad,
				Severity:   SeveritySoft,
				Message:    fmt.Sprintf("%s carries %d lectures against a mean of %.1f", teacher, load, mean),
				Entities:   map[string]string{"teacher": teacher},
			})
		}
	}
	return res
}

// BalancedDailyLoadRule grades how evenly each cohort's sessions spread
// over the week, averaged across cohorts.
type BalancedDailyLoadRule struct {
	MaxDeviation float64
}

func (BalancedDailyLoadRule) Name() string { return BalancedDailyLoad }
func (BalancedDailyLoadRule) Description() string {
	return "each cohort's sessions should spread evenly over the week"
}
func (BalancedDailyLoadRule) Severity() Severity { return SeveritySoft }

func (r BalancedDailyLoadRule) Check(slots []models.SlotAssignment, ctx *Context) Result {
	maxDev := r.MaxDeviation
	if maxDev <= 0 {
		maxDev = 2.0
	}
	if ctx == nil || ctx.Branch == nil || len(ctx.Branch.WorkingDays) == 0 {
		return Result{Score: 100}
	}

	perCohort := make(map[string]map[string]int)
	for _, a := range slots {
		if a.Kind == models.SlotKindFree {
			continue
		}
		cohort := a.CohortKey()
		if perCohort[cohort] == nil {
			perCohort[cohort] = make(map[string]int)
		}
		perCohort[cohort][a.Day]++
	}
	if len(perCohort) == 0 {
		return Result{Score: 100}
	}

	res := Result{}
	total := 0.0
	for cohort, days := range perCohort {
		values := make([]float64, 0, len(ctx.Branch.WorkingDays))
		for _, day := range ctx.Branch.WorkingDays {
			values = append(values, float64(days[day]))
		}
		mean, dev := stdDev(values)
		total += math.Max(0, 100-dev/maxDev*100)
		if dev > maxDev {
			res.Violations = append(res.Violations, Violation{
				Constraint: BalancedDailyLoad,
				Severity:   SeveritySoft,
				Message:    fmt.Sprintf("%s daily load deviates %.1f against a mean of %.1f", cohort, dev, mean),
				Entities:   map[string]string{"cohort": cohort},
			})
		}
	}
	res.Score = total / float64(len(perCohort))
	return res
}

// SubjectRepetitionRule penalizes the same theory subject appearing
// more than once in a cohort's day.
type SubjectRepetitionRule struct{}

func (SubjectRepetitionRule) Name() string { return SubjectRepetitionAvoid }
func (SubjectRepetitionRule) Description() string {
	return "a theory subject should appear at most once per cohort day"
}
func (SubjectRepetitionRule) Severity() Severity { return SeveritySoft }

func (r SubjectRepetitionRule) Check(slots []models.SlotAssignment, _ *Context) Result {
	type dayKey struct {
		Cohort string
		Day    string
	}
	counts := make(map[dayKey]map[string]int)
	entries := 0
	for _, a := range slots {
		if a.Kind != models.SlotKindTheory || a.Subject == models.SubjectFree {
			continue
		}
		entries++
		key := dayKey{a.CohortKey(), a.Day}
		if counts[key] == nil {
			counts[key] = make(map[string]int)
		}
		counts[key][a.Subject]++
	}
	if entries == 0 {
		return Result{Score: 100}
	}

	res := Result{}
	repeats := 0
	for key, subjects := range counts {
		for subject, count := range subjects {
			if count < 2 {
				continue
			}
			repeats += count - 1
			res.Violations = append(res.Violations, Violation{
				Constraint: SubjectRepetitionAvoid,
				Severity:   SeveritySoft,
				Message:    fmt.Sprintf("%s repeats %s %d times on %s", key.Cohort, subject, count, key.Day),
				Day:        key.Day,
				Entities:   map[string]string{"subject": subject, "cohort": key.Cohort},
			})
		}
	}
	res.Score = math.Max(0, 100-float64(repeats)/float64(entries)*100)
	return res
}

// PreferenceRule grades how well slot assignments honor recorded
// teacher preferences. Timetables with no preferences score full marks.
type PreferenceRule struct{}

func (PreferenceRule) Name() string { return PreferenceHandling }
func (PreferenceRule) Description() string {
	return "assignments should respect teacher slot preferences"
}
func (PreferenceRule) Severity() Severity { return SeveritySoft }

func (r PreferenceRule) Check(slots []models.SlotAssignment, ctx *Context) Result {
	if ctx == nil || ctx.Curriculum == nil || len(ctx.Curriculum.Preferences) == 0 {
		return Result{Score: 100}
	}

	res := Result{}
	satisfied := 0.0
	considered := 0
	for _, a := range slots {
		if !a.HasTeacher() {
			continue
		}
		pref, ok := ctx.Curriculum.PreferenceFor(a.Teacher)
		if !ok {
			continue
		}
		considered++
		switch {
		case containsInt(pref.PreferredSlots, a.Slot):
			satisfied++
		case containsInt(pref.AvoidSlots, a.Slot):
			res.Violations = append(res.Violations, Violation{
				Constraint: PreferenceHandling,
				Severity:   SeveritySoft,
				Message:    fmt.Sprintf("%s is scheduled in avoided slot %d on %s", a.Teacher, a.Slot, a.Day),
				Day:        a.Day,
				Slot:       a.Slot,
				Entities:   map[string]string{"teacher": a.Teacher},
			})
		default:
			satisfied += 0.5
		}
	}
	if considered == 0 {
		return Result{Score: 100}
	}
	res.Score = satisfied / float64(considered) * 100
	return res
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
