package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/constraints"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

func optimizerFixture() (*constraints.Context, []models.SlotAssignment) {
	branch, curriculum := newFixture(fixtureConfig{
		subjects: []models.Subject{theorySubject("Math", 2), theorySubject("Physics", 2)},
		teachers: []models.Teacher{
			{Name: "Sharma", Subjects: []string{"Math"}},
			{Name: "Iyer", Subjects: []string{"Physics"}},
		},
	})
	// Both Math sessions crammed onto Monday, both Physics onto
	// Tuesday: repetition and daily balance both have room to improve.
	slots := []models.SlotAssignment{
		{Day: "Monday", Slot: 0, Year: "SE", Division: "A", Subject: "Math", Teacher: "Sharma", Room: "R101", Kind: models.SlotKindTheory},
		{Day: "Monday", Slot: 1, Year: "SE", Division: "A", Subject: "Math", Teacher: "Sharma", Room: "R101", Kind: models.SlotKindTheory},
		{Day: "Tuesday", Slot: 0, Year: "SE", Division: "A", Subject: "Physics", Teacher: "Iyer", Room: "R101", Kind: models.SlotKindTheory},
		{Day: "Tuesday", Slot: 1, Year: "SE", Division: "A", Subject: "Physics", Teacher: "Iyer", Room: "R101", Kind: models.SlotKindTheory},
	}
	return &constraints.Context{Branch: branch, Curriculum: curriculum}, slots
}

func TestOptimizerNeverRegresses(t *testing.T) {
	ctx, slots := optimizerFixture()
	rules := constraints.NewEngine()
	opt := NewOptimizer(rules, ctx, rand.New(rand.NewSource(42)), 50, 10, nil)

	result := opt.Optimize(slots)
	assert.GreaterOrEqual(t, result.FinalScore, result.InitialScore)
	assert.Len(t, result.Slots, len(slots))
}

func TestOptimizerKeepsTimetableValid(t *testing.T) {
	ctx, slots := optimizerFixture()
	rules := constraints.NewEngine()
	opt := NewOptimizer(rules, ctx, rand.New(rand.NewSource(7)), 50, 10, nil)

	result := opt.Optimize(slots)
	report := rules.Validate(result.Slots, ctx)
	assert.True(t, report.Valid, "optimizer must not introduce hard violations")
}

func TestOptimizerPreservesSessionCounts(t *testing.T) {
	ctx, slots := optimizerFixture()
	opt := NewOptimizer(constraints.NewEngine(), ctx, rand.New(rand.NewSource(3)), 50, 10, nil)

	result := opt.Optimize(slots)
	counts := make(map[string]int)
	for _, a := range result.Slots {
		counts[a.Subject]++
	}
	assert.Equal(t, 2, counts["Math"])
	assert.Equal(t, 2, counts["Physics"])
}

func TestOptimizerNoopOnSingleLecture(t *testing.T) {
	ctx, slots := optimizerFixture()
	opt := NewOptimizer(constraints.NewEngine(), ctx, rand.New(rand.NewSource(1)), 50, 10, nil)

	result := opt.Optimize(slots[:1])
	require.Len(t, result.Slots, 1)
	assert.Zero(t, result.Iterations)
	assert.Equal(t, result.InitialScore, result.FinalScore)
}

func TestOptimizerSkipsLockedSlots(t *testing.T) {
	ctx, slots := optimizerFixture()
	slots[0].Locked = true
	opt := NewOptimizer(constraints.NewEngine(), ctx, rand.New(rand.NewSource(9)), 50, 10, nil)

	result := opt.Optimize(slots)
	require.Len(t, result.Slots, len(slots))
	assert.Equal(t, "Monday", result.Slots[0].Day)
	assert.Equal(t, 0, result.Slots[0].Slot)
}
