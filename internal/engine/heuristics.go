package engine

import "sort"

// SlotHeuristics orders open cells most-constrained-first so the search
// fails fast: cohorts with unfinished practicals outrank everything,
// then cohorts with fewer remaining subject choices. Ties break slot
// level by slot level across the week, which spreads lectures over
// days instead of cramming the earliest ones.
type SlotHeuristics struct {
	state *State
}

// NewSlotHeuristics builds the ordering helper over a shared state.
func NewSlotHeuristics(state *State) *SlotHeuristics {
	return &SlotHeuristics{state: state}
}

// Order sorts the refs in place by descending difficulty and returns
// them.
func (h *SlotHeuristics) Order(refs []SlotRef) []SlotRef {
	sort.SliceStable(refs, func(i, j int) bool {
		return h.difficulty(refs[i]) > h.difficulty(refs[j])
	})
	return refs
}

func (h *SlotHeuristics) difficulty(ref SlotRef) int {
	score := 0
	if h.cohortHasPendingPracticals(ref.Year, ref.Division) {
		score += 100
	}
	remaining := 0
	for _, subject := range h.state.curriculum.TheorySubjects(ref.Year, ref.Division) {
		if h.state.RemainingSessions(subject, ref.Division) > 0 {
			remaining++
		}
	}
	score *= 100
	score += (10 - remaining) * 100
	score -= ref.Slot*len(h.state.branch.WorkingDays) + h.state.branch.DayIndex(ref.Day)
	return score
}

func (h *SlotHeuristics) cohortHasPendingPracticals(year, division string) bool {
	for _, subject := range h.state.curriculum.LabSubjects(year, division) {
		scheduled := h.state.SubjectCount(subject.Name, year, division)
		if scheduled < subject.Length()*h.state.branch.BatchesFor(year) {
			return true
		}
	}
	return false
}
