package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

func TestFeasibilityAcceptsSaneConfig(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		batches:  2,
		labs:     []string{"L1", "L2"},
		subjects: []models.Subject{theorySubject("Math", 4), labSubject("PhysicsLab")},
		teachers: []models.Teacher{{Name: "Sharma", Subjects: []string{"Math"}}},
	})

	report := NewFeasibilityVerifier(branch, curriculum, 0, nil).Verify()
	assert.Nil(t, report)
}

func TestFeasibilityRejectsOverfullWeek(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		// 31 sessions against 30 teaching slots.
		subjects: []models.Subject{theorySubject("Math", 31)},
	})

	report := NewFeasibilityVerifier(branch, curriculum, 0, nil).Verify()
	require.NotNil(t, report)
	assert.Equal(t, StageFeasibility, report.Stage)
	assert.Equal(t, "INSUFFICIENT_TIME", report.Reason)
	assert.NotEmpty(t, report.Blockers)
	assert.NotEmpty(t, report.Suggestions)
}

func TestFeasibilityRejectsTooFewLabs(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		batches:  3,
		labs:     []string{"L1"},
		subjects: []models.Subject{labSubject("PhysicsLab")},
	})

	report := NewFeasibilityVerifier(branch, curriculum, 0, nil).Verify()
	require.NotNil(t, report)
	assert.Equal(t, "INSUFFICIENT_LABS", report.Reason)
}

func TestFeasibilityRejectsOverloadedTeacher(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		divisions: []string{"A", "B"},
		subjects:  []models.Subject{theorySubject("Math", 14)},
		teachers:  []models.Teacher{{Name: "Sharma", MaxWeeklySessions: 20}},
		bindings:  []models.SubjectAssignment{{Subject: "Math", Teacher: "Sharma"}},
	})

	// 14 sessions across two divisions against a capacity of 20.
	report := NewFeasibilityVerifier(branch, curriculum, 0, nil).Verify()
	require.NotNil(t, report)
	assert.Equal(t, "TEACHER_OVERLOAD", report.Reason)
}

func TestFeasibilityIgnoresYearsWithoutPracticals(t *testing.T) {
	branch, curriculum := newFixture(fixtureConfig{
		batches:  3,
		labs:     nil,
		subjects: []models.Subject{theorySubject("Math", 4)},
	})

	assert.Nil(t, NewFeasibilityVerifier(branch, curriculum, 0, nil).Verify())
}
