package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

func TestTheorySchedulerPlacesAllSessions(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		subjects: []models.Subject{theorySubject("Math", 3), theorySubject("Physics", 2)},
		bindings: []models.SubjectAssignment{
			{Subject: "Math", Teacher: "Sharma"},
			{Subject: "Physics", Teacher: "Iyer"},
		},
	})
	state := NewState(branch, curriculum)

	report := NewTheoryScheduler(state, 0, 0, nil).ScheduleCohort("SE", "A")
	assert.Equal(t, 5, report.Required)
	assert.Equal(t, 5, report.Placed)
	assert.Empty(t, report.Shortfalls)
	assert.Equal(t, 0, state.RemainingSessions(theorySubject("Math", 3), "A"))
}

func TestTheorySchedulerSpreadsSessionsAcrossDays(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		subjects: []models.Subject{theorySubject("Math", 3)},
		bindings: []models.SubjectAssignment{{Subject: "Math", Teacher: "Sharma"}},
	})
	state := NewState(branch, curriculum)

	NewTheoryScheduler(state, 0, 0, nil).ScheduleCohort("SE", "A")

	days := make(map[string]bool)
	for _, a := range state.Assignments() {
		days[a.Day] = true
	}
	assert.Len(t, days, 3, "each session should land on its own day")
}

func TestTheorySchedulerFallsBackToTBA(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		subjects: []models.Subject{theorySubject("Math", 2)},
	})
	state := NewState(branch, curriculum)

	report := NewTheoryScheduler(state, 0, 0, nil).ScheduleCohort("SE", "A")
	require.Equal(t, 2, report.Placed)
	for _, a := range state.Assignments() {
		assert.Equal(t, models.TeacherTBA, a.Teacher)
	}
}

func TestTheorySchedulerSchedulesAroundLockedLabs(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		subjects: []models.Subject{theorySubject("Math", 1), labSubject("PhysicsLab")},
		bindings: []models.SubjectAssignment{{Subject: "Math", Teacher: "Sharma"}},
	})
	state := NewState(branch, curriculum)
	state.Assign(models.SlotAssignment{
		Day: "Monday", Slot: 0, Year: "SE", Division: "A", Batch: "B1",
		Subject: "PhysicsLab", Teacher: "Iyer", Room: "L1", Kind: models.SlotKindLab,
	}, true)

	report := NewTheoryScheduler(state, 0, 0, nil).ScheduleCohort("SE", "A")
	require.Equal(t, 1, report.Placed)
	for _, a := range state.Assignments() {
		if a.Kind != models.SlotKindTheory {
			continue
		}
		assert.False(t, a.Day == "Monday" && a.Slot == 0, "lecture placed over a locked lab")
	}
}

func TestTheorySchedulerSkipsRecess(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		subjects: []models.Subject{theorySubject("Math", 5)},
		bindings: []models.SubjectAssignment{{Subject: "Math", Teacher: "Sharma"}},
	})
	state := NewState(branch, curriculum)

	NewTheoryScheduler(state, 0, 0, nil).ScheduleCohort("SE", "A")
	for _, a := range state.Assignments() {
		assert.False(t, branch.IsRecess(a.Slot))
	}
}

func TestTheorySchedulerPrefersHomeRoom(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		subjects: []models.Subject{theorySubject("Math", 1)},
		bindings: []models.SubjectAssignment{{Subject: "Math", Teacher: "Sharma"}},
	})
	state := NewState(branch, curriculum)

	NewTheoryScheduler(state, 0, 0, nil).ScheduleCohort("SE", "A")
	slots := state.Assignments()
	require.Len(t, slots, 1)
	assert.Equal(t, branch.HomeRoom("SE", "A"), slots[0].Room)
}

func TestTheorySchedulerReportsShortfall(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		// 40 weekly sessions cannot fit 30 teaching slots.
		subjects: []models.Subject{theorySubject("Math", 40)},
		bindings: []models.SubjectAssignment{{Subject: "Math", Teacher: "Sharma"}},
	})
	state := NewState(branch, curriculum)

	report := NewTheoryScheduler(state, 0, 0, nil).ScheduleCohort("SE", "A")
	assert.Less(t, report.Placed, report.Required)
	assert.NotZero(t, report.Shortfalls["Math"])
}
