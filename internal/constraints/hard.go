package constraints

import (
	"fmt"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

type timeKey struct {
	Day  string
	Slot int
}

// TeacherNonOverlapRule forbids one teacher in two places at once. TBA
// placeholders are exempt until resolved.
type TeacherNonOverlapRule struct{}

func (TeacherNonOverlapRule) Name() string { return TeacherNonOverlap }
func (TeacherNonOverlapRule) Description() string {
	return "a teacher may hold at most one session per time slot"
}
func (TeacherNonOverlapRule) Severity() Severity { return SeverityHard }

func (r TeacherNonOverlapRule) Check(slots []models.SlotAssignment, _ *Context) Result {
	occupied := make(map[timeKey]map[string][]models.SlotAssignment)
	for _, a := range slots {
		if !a.HasTeacher() {
			continue
		}
		key := timeKey{a.Day, a.Slot}
		if occupied[key] == nil {
			occupied[key] = make(map[string][]models.SlotAssignment)
		}
		occupied[key][a.Teacher] = append(occupied[key][a.Teacher], a)
	}

	var res Result
	for key, teachers := range occupied {
		for teacher, entries := range teachers {
			if len(entries) < 2 {
				continue
			}
			res.Violations = append(res.Violations, Violation{
				Constraint: TeacherNonOverlap,
				Severity:   SeverityHard,
				Message:    fmt.Sprintf("%s is booked %d times at %s slot %d", teacher, len(entries), key.Day, key.Slot),
				Day:        key.Day,
				Slot:       key.Slot,
				Entities:   map[string]string{"teacher": teacher},
			})
		}
	}
	return res
}

// RoomNonOverlapRule forbids double-booked rooms. Parallel lab batches
// occupy distinct labs, so no exception is needed beyond the TBA
// sentinel.
type RoomNonOverlapRule struct{}

func (RoomNonOverlapRule) Name() string { return RoomNonOverlap }
func (RoomNonOverlapRule) Description() string {
	return "a room may host at most one session per time slot"
}
func (RoomNonOverlapRule) Severity() Severity { return SeverityHard }

func (r RoomNonOverlapRule) Check(slots []models.SlotAssignment, _ *Context) Result {
	occupied := make(map[timeKey]map[string][]models.SlotAssignment)
	for _, a := range slots {
		if !a.HasRoom() {
			continue
		}
		key := timeKey{a.Day, a.Slot}
		if occupied[key] == nil {
			occupied[key] = make(map[string][]models.SlotAssignment)
		}
		occupied[key][a.Room] = append(occupied[key][a.Room], a)
	}

	var res Result
	for key, rooms := range occupied {
		for room, entries := range rooms {
			if len(entries) < 2 {
				continue
			}
			res.Violations = append(res.Violations, Violation{
				Constraint: RoomNonOverlap,
				Severity:   SeverityHard,
				Message:    fmt.Sprintf("room %s is booked %d times at %s slot %d", room, len(entries), key.Day, key.Slot),
				Day:        key.Day,
				Slot:       key.Slot,
				Entities:   map[string]string{"room": room},
			})
		}
	}
	return res
}

// LabBatchSyncRule verifies the parallel-batch structure of lab cells:
// every lab entry sharing a cohort cell must belong to a different
// batch and run a different subject.
type LabBatchSyncRule struct{}

func (LabBatchSyncRule) Name() string { return LabBatchSync }
func (LabBatchSyncRule) Description() string {
	return "parallel lab entries in one cohort slot need distinct batches and subjects"
}
func (LabBatchSyncRule) Severity() Severity { return SeverityHard }

func (r LabBatchSyncRule) Check(slots []models.SlotAssignment, _ *Context) Result {
	type cohortCell struct {
		Day      string
		Slot     int
		Year     string
		Division string
	}
	cells := make(map[cohortCell][]models.SlotAssignment)
	for _, a := range slots {
		if a.Kind != models.SlotKindLab {
			continue
		}
		key := cohortCell{a.Day, a.Slot, a.Year, a.Division}
		cells[key] = append(cells[key], a)
	}

	var res Result
	for key, entries := range cells {
		batches := make(map[string]bool)
		subjects := make(map[string]bool)
		for _, a := range entries {
			if batches[a.Batch] {
				res.Violations = append(res.Violations, Violation{
					Constraint: LabBatchSync,
					Severity:   SeverityHard,
					Message: fmt.Sprintf("batch %s of %s appears twice at %s slot %d",
						a.Batch, a.CohortKey(), key.Day, key.Slot),
					Day:      key.Day,
					Slot:     key.Slot,
					Entities: map[string]string{"batch": a.Batch, "cohort": a.CohortKey()},
				})
			}
			if subjects[a.Subject] {
				res.Violations = append(res.Violations, Violation{
					Constraint: LabBatchSync,
					Severity:   SeverityHard,
					Message: fmt.Sprintf("lab %s of %s runs twice in parallel at %s slot %d",
						a.Subject, a.CohortKey(), key.Day, key.Slot),
					Day:      key.Day,
					Slot:     key.Slot,
					Entities: map[string]string{"subject": a.Subject, "cohort": a.CohortKey()},
				})
			}
			batches[a.Batch] = true
			subjects[a.Subject] = true
		}
	}
	return res
}

// WeeklyLectureCompletionRule demands exact theory counts: every theory
// subject of a cohort must appear exactly its weekly number of times.
// Practical coverage is the post-generation validator's job.
type WeeklyLectureCompletionRule struct{}

func (WeeklyLectureCompletionRule) Name() string { return WeeklyLectureCompletion }
func (WeeklyLectureCompletionRule) Description() string {
	return "theory subjects must match their weekly session counts exactly"
}
func (WeeklyLectureCompletionRule) Severity() Severity { return SeverityHard }

func (r WeeklyLectureCompletionRule) Check(slots []models.SlotAssignment, ctx *Context) Result {
	if ctx == nil || ctx.Branch == nil || ctx.Curriculum == nil {
		return Result{}
	}
	type countKey struct {
		Subject  string
		Year     string
		Division string
	}
	actual := make(map[countKey]int)
	for _, a := range slots {
		if a.Kind == models.SlotKindTheory && a.Subject != models.SubjectFree {
			actual[countKey{a.Subject, a.Year, a.Division}]++
		}
	}

	var res Result
	for _, year := range ctx.Branch.AcademicYears {
		for _, division := range ctx.Branch.DivisionsFor(year) {
			for _, subject := range ctx.Curriculum.TheorySubjects(year, division) {
				got := actual[countKey{subject.Name, year, division}]
				if got == subject.WeeklySessions {
					continue
				}
				res.Violations = append(res.Violations, Violation{
					Constraint: WeeklyLectureCompletion,
					Severity:   SeverityHard,
					Message: fmt.Sprintf("%s has %d of %d weekly sessions of %s",
						models.CohortKey(year, division), got, subject.WeeklySessions, subject.Name),
					Entities: map[string]string{
						"subject": subject.Name,
						"cohort":  models.CohortKey(year, division),
					},
				})
			}
		}
	}
	return res
}

// StructuralValidityRule rejects entries naming unknown years,
// divisions, subjects, teachers or rooms. Free periods and TBA
// sentinels are exempt.
type StructuralValidityRule struct{}

func (StructuralValidityRule) Name() string { return StructuralValidity }
func (StructuralValidityRule) Description() string {
	return "every entry must reference configured years, divisions, subjects, teachers and rooms"
}
func (StructuralValidityRule) Severity() Severity { return SeverityHard }

func (r StructuralValidityRule) Check(slots []models.SlotAssignment, ctx *Context) Result {
	if ctx == nil || ctx.Branch == nil || ctx.Curriculum == nil {
		return Result{}
	}
	subjects := make(map[string]bool)
	for _, s := range ctx.Curriculum.Subjects {
		subjects[s.Name] = true
	}
	teachers := make(map[string]bool)
	for _, t := range ctx.Curriculum.Teachers {
		teachers[t.Name] = true
	}
	for _, a := range ctx.Curriculum.Assignments {
		teachers[a.Teacher] = true
	}
	rooms := make(map[string]bool)
	for _, room := range ctx.Branch.AllClassrooms() {
		rooms[room] = true
	}
	for _, lab := range ctx.Branch.SharedLabs {
		rooms[lab.Name] = true
	}
	divisions := make(map[string]map[string]bool)
	for _, year := range ctx.Branch.AcademicYears {
		divisions[year] = make(map[string]bool)
		for _, division := range ctx.Branch.DivisionsFor(year) {
			divisions[year][division] = true
		}
	}

	var res Result
	for _, a := range slots {
		if divisions[a.Year] == nil {
			res.Violations = append(res.Violations, structuralViolation(a, "year", a.Year))
		} else if !divisions[a.Year][a.Division] {
			res.Violations = append(res.Violations, structuralViolation(a, "division", a.Division))
		}
		if a.Subject != models.SubjectFree && !subjects[a.Subject] {
			res.Violations = append(res.Violations, structuralViolation(a, "subject", a.Subject))
		}
		if a.HasTeacher() && len(teachers) > 0 && !teachers[a.Teacher] {
			res.Violations = append(res.Violations, structuralViolation(a, "teacher", a.Teacher))
		}
		if a.HasRoom() && len(rooms) > 0 && !rooms[a.Room] {
			res.Violations = append(res.Violations, structuralViolation(a, "room", a.Room))
		}
	}
	return res
}

func structuralViolation(a models.SlotAssignment, kind, value string) Violation {
	return Violation{
		Constraint: StructuralValidity,
		Severity:   SeverityHard,
		Message:    fmt.Sprintf("unknown %s %q at %s slot %d for %s", kind, value, a.Day, a.Slot, a.CohortKey()),
		Day:        a.Day,
		Slot:       a.Slot,
		Entities:   map[string]string{kind: value, "cohort": a.CohortKey()},
	}
}
