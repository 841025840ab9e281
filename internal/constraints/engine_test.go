package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

func validFixtureTimetable() []models.SlotAssignment {
	return []models.SlotAssignment{
		theoryAt("Monday", 0, "Math", "Sharma", "R101"),
		theoryAt("Tuesday", 0, "Math", "Sharma", "R101"),
		theoryAt("Wednesday", 0, "Physics", "Iyer", "R101"),
		labAt("Thursday", 0, "B1", "PhysicsLab", "Iyer", "L1"),
		labAt("Thursday", 0, "B2", "ChemLab", "Rao", "L2"),
	}
}

func TestEngineValidatePassesCleanTimetable(t *testing.T) {
	report := NewEngine().Validate(validFixtureTimetable(), testContext())
	assert.True(t, report.Valid)
	assert.Empty(t, report.HardViolations)
	assert.Positive(t, report.QualityScore)
	assert.NotEmpty(t, report.Breakdown)
	assert.Equal(t, 11, report.Summary.RulesChecked)
}

func TestEngineValidateCollectsHardViolations(t *testing.T) {
	slots := append(validFixtureTimetable(),
		theoryAt("Monday", 0, "Physics", "Sharma", "R102"))
	report := NewEngine().Validate(slots, testContext())
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.HardViolations)
	assert.Equal(t, len(report.HardViolations), report.Summary.HardViolations)
}

func TestEngineQualityScoreIsMeanOfSoftScores(t *testing.T) {
	engine := NewEngine()
	report := engine.Validate(validFixtureTimetable(), testContext())

	total := 0.0
	for _, score := range report.Breakdown {
		total += score
	}
	assert.InDelta(t, total/float64(len(report.Breakdown)), report.QualityScore, 0.001)
	assert.InDelta(t, report.QualityScore,
		engine.QualityScore(validFixtureTimetable(), testContext()), 0.001)
}

func TestEngineDisableRuleSkipsIt(t *testing.T) {
	engine := NewEngine()
	require.True(t, engine.SetEnabled(WeeklyLectureCompletion, false))

	// A timetable with missing sessions passes once completion is off.
	slots := []models.SlotAssignment{theoryAt("Monday", 0, "Math", "Sharma", "R101")}
	report := engine.Validate(slots, testContext())
	assert.True(t, report.Valid)

	require.True(t, engine.SetEnabled(WeeklyLectureCompletion, true))
	assert.False(t, engine.Validate(slots, testContext()).Valid)
}

func TestEngineSetEnabledUnknownRule(t *testing.T) {
	assert.False(t, NewEngine().SetEnabled("NO_SUCH_RULE", false))
}

func TestEngineRulesListsToggleState(t *testing.T) {
	engine := NewEngine()
	engine.SetEnabled(PreferenceHandling, false)

	var found bool
	for _, info := range engine.Rules() {
		if info.Name == PreferenceHandling {
			found = true
			assert.False(t, info.Enabled)
			assert.Equal(t, SeveritySoft, info.Severity)
		}
	}
	assert.True(t, found)
}

func TestEngineValidateSlotFlagsIntroducedConflict(t *testing.T) {
	existing := validFixtureTimetable()
	edit := theoryAt("Monday", 0, "Physics", "Iyer", "R101")

	conflicts := NewEngine().ValidateSlot(edit, existing, testContext())
	require.NotEmpty(t, conflicts)
	for _, v := range conflicts {
		assert.Equal(t, "Monday", v.Day)
		assert.Equal(t, 0, v.Slot)
	}
}

func TestEngineValidateSlotAcceptsCleanEdit(t *testing.T) {
	existing := validFixtureTimetable()
	edit := theoryAt("Friday", 2, "Physics", "Iyer", "R102")

	assert.Empty(t, NewEngine().ValidateSlot(edit, existing, testContext()))
}

func TestEngineValidateSlotSkipsAggregateRules(t *testing.T) {
	// The edit breaks weekly completion on purpose; incremental
	// validation must not flag it.
	existing := []models.SlotAssignment{theoryAt("Monday", 0, "Math", "Sharma", "R101")}
	edit := theoryAt("Tuesday", 1, "Physics", "Iyer", "R102")

	assert.Empty(t, NewEngine().ValidateSlot(edit, existing, testContext()))
}
