package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

func intPtr(v int) *int { return &v }

func testContext() *Context {
	return &Context{
		Branch: &models.BranchConfig{
			AcademicYears: []string{"SE"},
			Divisions:     map[string][]string{"SE": {"A"}},
			WorkingDays:   []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			SlotsPerDay:   7,
			RecessSlot:    intPtr(3),
			Classrooms:    map[string][]string{"SE": {"R101", "R102"}},
			SharedLabs:    []models.SharedLab{{Name: "L1"}, {Name: "L2"}},
		},
		Curriculum: &models.Curriculum{
			Subjects: []models.Subject{
				{Name: "Math", Year: "SE", WeeklySessions: 2},
				{Name: "Physics", Year: "SE", WeeklySessions: 1},
				{Name: "PhysicsLab", Year: "SE", IsPractical: true},
				{Name: "ChemLab", Year: "SE", IsPractical: true},
			},
			Teachers: []models.Teacher{
				{Name: "Sharma", Subjects: []string{"Math"}},
				{Name: "Iyer", Subjects: []string{"Physics", "PhysicsLab"}},
				{Name: "Rao", Subjects: []string{"ChemLab"}},
			},
		},
	}
}

func theoryAt(day string, slot int, subject, teacher, room string) models.SlotAssignment {
	return models.SlotAssignment{
		Day: day, Slot: slot, Year: "SE", Division: "A",
		Subject: subject, Teacher: teacher, Room: room,
		Kind: models.SlotKindTheory,
	}
}

func labAt(day string, slot int, batch, subject, teacher, room string) models.SlotAssignment {
	return models.SlotAssignment{
		Day: day, Slot: slot, Year: "SE", Division: "A", Batch: batch,
		Subject: subject, Teacher: teacher, Room: room,
		Kind: models.SlotKindLab,
	}
}

func TestTeacherNonOverlapFlagsDoubleBooking(t *testing.T) {
	slots := []models.SlotAssignment{
		theoryAt("Monday", 0, "Math", "Sharma", "R101"),
		theoryAt("Monday", 0, "Physics", "Sharma", "R102"),
	}
	res := TeacherNonOverlapRule{}.Check(slots, testContext())
	require.Len(t, res.Violations, 1)
	assert.Equal(t, TeacherNonOverlap, res.Violations[0].Constraint)
	assert.Equal(t, "Sharma", res.Violations[0].Entities["teacher"])
}

func TestTeacherNonOverlapExemptsTBA(t *testing.T) {
	slots := []models.SlotAssignment{
		theoryAt("Monday", 0, "Math", models.TeacherTBA, "R101"),
		theoryAt("Monday", 0, "Physics", models.TeacherTBA, "R102"),
	}
	res := TeacherNonOverlapRule{}.Check(slots, testContext())
	assert.Empty(t, res.Violations)
}

func TestRoomNonOverlapFlagsDoubleBooking(t *testing.T) {
	slots := []models.SlotAssignment{
		theoryAt("Monday", 0, "Math", "Sharma", "R101"),
		theoryAt("Monday", 0, "Physics", "Iyer", "R101"),
	}
	res := RoomNonOverlapRule{}.Check(slots, testContext())
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "R101", res.Violations[0].Entities["room"])
}

func TestRoomNonOverlapAllowsParallelBatchesInDistinctLabs(t *testing.T) {
	slots := []models.SlotAssignment{
		labAt("Monday", 0, "B1", "PhysicsLab", "Iyer", "L1"),
		labAt("Monday", 0, "B2", "ChemLab", "Rao", "L2"),
	}
	assert.Empty(t, RoomNonOverlapRule{}.Check(slots, testContext()).Violations)
}

func TestLabBatchSyncRejectsDuplicateBatch(t *testing.T) {
	slots := []models.SlotAssignment{
		labAt("Monday", 0, "B1", "PhysicsLab", "Iyer", "L1"),
		labAt("Monday", 0, "B1", "ChemLab", "Rao", "L2"),
	}
	res := LabBatchSyncRule{}.Check(slots, testContext())
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "B1", res.Violations[0].Entities["batch"])
}

func TestLabBatchSyncRejectsDuplicateSubject(t *testing.T) {
	slots := []models.SlotAssignment{
		labAt("Monday", 0, "B1", "PhysicsLab", "Iyer", "L1"),
		labAt("Monday", 0, "B2", "PhysicsLab", "Rao", "L2"),
	}
	res := LabBatchSyncRule{}.Check(slots, testContext())
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "PhysicsLab", res.Violations[0].Entities["subject"])
}

func TestLabBatchSyncAcceptsWellFormedParallelCell(t *testing.T) {
	slots := []models.SlotAssignment{
		labAt("Monday", 0, "B1", "PhysicsLab", "Iyer", "L1"),
		labAt("Monday", 0, "B2", "ChemLab", "Rao", "L2"),
	}
	assert.Empty(t, LabBatchSyncRule{}.Check(slots, testContext()).Violations)
}

func TestWeeklyCompletionFlagsBothDirections(t *testing.T) {
	ctx := testContext()

	// Math has one of two sessions, Physics has two of one.
	slots := []models.SlotAssignment{
		theoryAt("Monday", 0, "Math", "Sharma", "R101"),
		theoryAt("Monday", 1, "Physics", "Iyer", "R101"),
		theoryAt("Tuesday", 0, "Physics", "Iyer", "R101"),
	}
	res := WeeklyLectureCompletionRule{}.Check(slots, ctx)
	require.Len(t, res.Violations, 2)
}

func TestWeeklyCompletionIgnoresLabsAndFreePeriods(t *testing.T) {
	ctx := testContext()
	slots := []models.SlotAssignment{
		theoryAt("Monday", 0, "Math", "Sharma", "R101"),
		theoryAt("Tuesday", 0, "Math", "Sharma", "R101"),
		theoryAt("Wednesday", 0, "Physics", "Iyer", "R101"),
		labAt("Monday", 1, "B1", "PhysicsLab", "Iyer", "L1"),
		{Day: "Friday", Slot: 0, Year: "SE", Division: "A", Subject: models.SubjectFree,
			Teacher: models.TeacherTBA, Room: models.RoomTBA, Kind: models.SlotKindFree},
	}
	assert.Empty(t, WeeklyLectureCompletionRule{}.Check(slots, ctx).Violations)
}

func TestStructuralValidityFlagsUnknownEntities(t *testing.T) {
	slots := []models.SlotAssignment{
		theoryAt("Monday", 0, "Alchemy", "Sharma", "R101"),
		theoryAt("Monday", 1, "Math", "Nobody", "R101"),
		theoryAt("Monday", 2, "Math", "Sharma", "R999"),
	}
	res := StructuralValidityRule{}.Check(slots, testContext())
	assert.Len(t, res.Violations, 3)
}

func TestStructuralValidityFlagsUnknownCohort(t *testing.T) {
	ghost := theoryAt("Monday", 0, "Math", "Sharma", "R101")
	ghost.Year = "GHOST"
	stray := theoryAt("Monday", 1, "Math", "Sharma", "R101")
	stray.Division = "Z"

	res := StructuralValidityRule{}.Check([]models.SlotAssignment{ghost, stray}, testContext())
	require.Len(t, res.Violations, 2)
	assert.Equal(t, "GHOST", res.Violations[0].Entities["year"])
	assert.Equal(t, "Z", res.Violations[1].Entities["division"])
}

func TestStructuralValidityExemptsSentinels(t *testing.T) {
	slots := []models.SlotAssignment{
		{Day: "Monday", Slot: 0, Year: "SE", Division: "A", Subject: models.SubjectFree,
			Teacher: models.TeacherTBA, Room: models.RoomTBA, Kind: models.SlotKindFree},
		theoryAt("Monday", 1, "Math", models.TeacherTBA, models.RoomTBA),
	}
	assert.Empty(t, StructuralValidityRule{}.Check(slots, testContext()).Violations)
}
