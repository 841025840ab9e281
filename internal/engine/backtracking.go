package engine

import (
	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// SearchStats reports the effort spent by the backtracking search.
type SearchStats struct {
	Iterations int
	Backtracks int
}

// Backtracker runs a depth-first search over the open cells, trying
// ranked candidates and rolling back on dead ends. An iteration ceiling
// bounds the worst case.
type Backtracker struct {
	state         *State
	candidates    *CandidateGenerator
	heuristics    *SlotHeuristics
	maxIterations int
	logger        *zap.Logger

	stats SearchStats
}

// NewBacktracker builds a search over a shared state. A non-positive
// ceiling defaults to 10000 iterations.
func NewBacktracker(state *State, maxIterations int, logger *zap.Logger) *Backtracker {
	if maxIterations <= 0 {
		maxIterations = 10000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backtracker{
		state:         state,
		candidates:    NewCandidateGenerator(state),
		heuristics:    NewSlotHeuristics(state),
		maxIterations: maxIterations,
		logger:        logger,
	}
}

// Solve fills every open cell or reports failure. Stats are valid
// either way.
func (b *Backtracker) Solve() (bool, SearchStats) {
	return b.SolveRefs(b.state.OpenRefs())
}

// SolveRefs restricts the search to the given cells, leaving the rest
// of the grid untouched. Partial regeneration uses this to rebuild only
// the targeted cohorts.
func (b *Backtracker) SolveRefs(refs []SlotRef) (bool, SearchStats) {
	b.stats = SearchStats{}
	refs = b.heuristics.Order(refs)
	ok := b.solve(refs)
	b.logger.Info("backtracking finished",
		zap.Bool("solved", ok),
		zap.Int("iterations", b.stats.Iterations),
		zap.Int("backtracks", b.stats.Backtracks))
	return ok, b.stats
}

func (b *Backtracker) solve(refs []SlotRef) bool {
	if len(refs) == 0 {
		return true
	}
	if b.stats.Iterations >= b.maxIterations {
		return false
	}
	b.stats.Iterations++

	ref := refs[0]
	for _, candidate := range b.candidates.Generate(ref) {
		b.state.Assign(candidate.Assignment, false)
		if b.state.ConflictsAt(candidate.Assignment) {
			b.state.Rollback(candidate.Assignment)
			continue
		}
		// Reorder the remaining cells: placing a lecture changes which
		// cohorts are most constrained.
		if b.solve(b.heuristics.Order(refs[1:])) {
			return true
		}
		b.state.Rollback(candidate.Assignment)
		b.stats.Backtracks++
		if b.stats.Iterations >= b.maxIterations {
			return false
		}
	}
	return false
}

// FailureReport explains an unsuccessful search with concrete blockers.
func (b *Backtracker) FailureReport() *models.FailureReport {
	report := &models.FailureReport{
		Stage:  StageBacktracking,
		Reason: "SEARCH_EXHAUSTED",
	}
	if b.stats.Iterations >= b.maxIterations {
		report.Reason = "ITERATION_LIMIT"
		report.Details = "search hit the iteration ceiling before covering every slot"
		report.Suggestions = append(report.Suggestions, "raise the iteration limit or relax the configuration")
	}
	branch := b.state.branch
	curriculum := b.state.curriculum
	for _, year := range branch.AcademicYears {
		if batches := branch.BatchesFor(year); batches > len(branch.SharedLabs) {
			report.Blockers = append(report.Blockers, models.FailureBlocker{
				Issue:   "insufficient labs",
				Details: "year " + year + " needs more labs than are available",
			})
		}
	}
	if len(curriculum.Teachers) > 0 && len(curriculum.Teachers) < 2 {
		report.Blockers = append(report.Blockers, models.FailureBlocker{
			Issue: "very small teaching staff",
		})
	}
	return report
}
