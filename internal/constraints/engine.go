package constraints

import "github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"

// Summary gives headline numbers for a validation sweep.
type Summary struct {
	RulesChecked   int `json:"rules_checked"`
	HardViolations int `json:"hard_violations"`
	SoftViolations int `json:"soft_violations"`
}

// Report is the outcome of a full validation sweep. QualityScore is the
// mean of the enabled soft-rule scores; hard violations decide Valid.
type Report struct {
	Valid          bool               `json:"valid"`
	HardViolations []Violation        `json:"hard_violations"`
	SoftViolations []Violation        `json:"soft_violations"`
	QualityScore   float64            `json:"quality_score"`
	Breakdown      map[string]float64 `json:"breakdown"`
	Summary        Summary            `json:"summary"`
}

// RuleInfo describes one registered rule for API listings.
type RuleInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Enabled     bool     `json:"enabled"`
}

// Engine evaluates a rule set against timetables. Construct one per
// request; rule toggling is not synchronized for shared use.
type Engine struct {
	rules    []Rule
	disabled map[string]bool
}

// NewEngine registers the default hard and soft rule set.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			TeacherNonOverlapRule{},
			RoomNonOverlapRule{},
			LabBatchSyncRule{},
			WeeklyLectureCompletionRule{},
			StructuralValidityRule{},
			TeacherConsecutiveRule{},
			StudentConsecutiveRule{},
			BalancedTeacherLoadRule{},
			BalancedDailyLoadRule{},
			SubjectRepetitionRule{},
			PreferenceRule{},
		},
		disabled: make(map[string]bool),
	}
}

// Register appends a custom rule.
func (e *Engine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// SetEnabled toggles a rule by name and reports whether it exists.
func (e *Engine) SetEnabled(name string, enabled bool) bool {
	for _, rule := range e.rules {
		if rule.Name() == name {
			e.disabled[name] = !enabled
			return true
		}
	}
	return false
}

// Enabled reports whether the named rule participates in validation.
func (e *Engine) Enabled(name string) bool {
	return !e.disabled[name]
}

// Rules lists every registered rule with its toggle state.
func (e *Engine) Rules() []RuleInfo {
	out := make([]RuleInfo, 0, len(e.rules))
	for _, rule := range e.rules {
		out = append(out, RuleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    rule.Severity(),
			Enabled:     e.Enabled(rule.Name()),
		})
	}
	return out
}

// Validate runs every enabled rule over the timetable.
func (e *Engine) Validate(slots []models.SlotAssignment, ctx *Context) *Report {
	report := &Report{
		Valid:     true,
		Breakdown: make(map[string]float64),
	}
	softTotal := 0.0
	softCount := 0
	for _, rule := range e.rules {
		if !e.Enabled(rule.Name()) {
			continue
		}
		report.Summary.RulesChecked++
		result := rule.Check(slots, ctx)
		if rule.Severity() == SeverityHard {
			report.HardViolations = append(report.HardViolations, result.Violations...)
			continue
		}
		report.SoftViolations = append(report.SoftViolations, result.Violations...)
		report.Breakdown[rule.Name()] = result.Score
		softTotal += result.Score
		softCount++
	}
	report.Summary.HardViolations = len(report.HardViolations)
	report.Summary.SoftViolations = len(report.SoftViolations)
	report.Valid = len(report.HardViolations) == 0
	if softCount > 0 {
		report.QualityScore = softTotal / float64(softCount)
	} else {
		report.QualityScore = 100
	}
	return report
}

// QualityScore runs only the soft tier and returns the mean score.
func (e *Engine) QualityScore(slots []models.SlotAssignment, ctx *Context) float64 {
	total := 0.0
	count := 0
	for _, rule := range e.rules {
		if rule.Severity() != SeveritySoft || !e.Enabled(rule.Name()) {
			continue
		}
		total += rule.Check(slots, ctx).Score
		count++
	}
	if count == 0 {
		return 100
	}
	return total / float64(count)
}

// incremental rules cover conflicts a single edit can introduce.
var incrementalRules = map[string]bool{
	TeacherNonOverlap:  true,
	RoomNonOverlap:     true,
	LabBatchSync:       true,
	StructuralValidity: true,
}

// ValidateSlot checks one proposed assignment against an existing
// timetable, returning only the violations the new slot participates
// in. Aggregate rules like weekly completion are skipped since a
// single edit is expected to change totals.
func (e *Engine) ValidateSlot(newSlot models.SlotAssignment, existing []models.SlotAssignment, ctx *Context) []Violation {
	combined := make([]models.SlotAssignment, 0, len(existing)+1)
	combined = append(combined, existing...)
	combined = append(combined, newSlot)

	var conflicts []Violation
	for _, rule := range e.rules {
		if !incrementalRules[rule.Name()] || !e.Enabled(rule.Name()) {
			continue
		}
		for _, v := range rule.Check(combined, ctx).Violations {
			if v.Day == newSlot.Day && v.Slot == newSlot.Slot {
				conflicts = append(conflicts, v)
			}
		}
	}
	return conflicts
}
