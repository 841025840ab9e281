package engine

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/constraints"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// OptimizeResult carries the best timetable found and search metrics.
type OptimizeResult struct {
	Slots        []models.SlotAssignment
	InitialScore float64
	FinalScore   float64
	Iterations   int
	Accepted     int
	Restarts     int
}

// Optimizer improves a valid timetable by hill climbing: it swaps the
// times of two random lectures of one cohort, keeps the swap when the
// quality score improves and the hard rules still pass, and restarts
// from the best-known timetable after too many fruitless tries. The
// best timetable ever seen is returned.
type Optimizer struct {
	rules         *constraints.Engine
	ctx           *constraints.Context
	rng           *rand.Rand
	maxIterations int
	patience      int
	logger        *zap.Logger
}

// NewOptimizer builds a hill climber. Non-positive limits default to
// 100 iterations with a patience of 20.
func NewOptimizer(rules *constraints.Engine, ctx *constraints.Context, rng *rand.Rand, maxIterations, patience int, logger *zap.Logger) *Optimizer {
	if maxIterations <= 0 {
		maxIterations = 100
	}
	if patience <= 0 {
		patience = 20
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{
		rules:         rules,
		ctx:           ctx,
		rng:           rng,
		maxIterations: maxIterations,
		patience:      patience,
		logger:        logger,
	}
}

// Optimize runs the climb and returns the best timetable found.
func (o *Optimizer) Optimize(slots []models.SlotAssignment) OptimizeResult {
	current := cloneSlots(slots)
	currentScore := o.rules.QualityScore(current, o.ctx)

	best := cloneSlots(current)
	result := OptimizeResult{InitialScore: currentScore, FinalScore: currentScore}

	lectures := theoryIndices(current)
	if len(lectures) < 2 {
		result.Slots = best
		return result
	}

	stuck := 0
	for i := 0; i < o.maxIterations; i++ {
		result.Iterations++
		neighbor, ok := o.swapNeighbor(current, lectures)
		if !ok {
			stuck++
			continue
		}
		report := o.rules.Validate(neighbor, o.ctx)
		if !report.Valid || report.QualityScore <= currentScore {
			stuck++
			if stuck >= o.patience {
				current = cloneSlots(best)
				currentScore = result.FinalScore
				stuck = 0
				result.Restarts++
			}
			continue
		}
		current = neighbor
		currentScore = report.QualityScore
		stuck = 0
		result.Accepted++
		if currentScore > result.FinalScore {
			best = cloneSlots(current)
			result.FinalScore = currentScore
		}
	}

	o.logger.Info("optimizer finished",
		zap.Float64("initial_score", result.InitialScore),
		zap.Float64("final_score", result.FinalScore),
		zap.Int("accepted", result.Accepted),
		zap.Int("restarts", result.Restarts))
	result.Slots = best
	return result
}

// swapNeighbor exchanges the (day, slot) of two random lectures of the
// same cohort. Picking two cohorts counts as a failed draw so the loop
// stays bounded.
func (o *Optimizer) swapNeighbor(current []models.SlotAssignment, lectures []int) ([]models.SlotAssignment, bool) {
	i := lectures[o.rng.Intn(len(lectures))]
	j := lectures[o.rng.Intn(len(lectures))]
	if i == j {
		return nil, false
	}
	a, b := current[i], current[j]
	if a.Year != b.Year || a.Division != b.Division {
		return nil, false
	}
	neighbor := cloneSlots(current)
	neighbor[i].Day, neighbor[i].Slot = b.Day, b.Slot
	neighbor[j].Day, neighbor[j].Slot = a.Day, a.Slot
	return neighbor, true
}

func theoryIndices(slots []models.SlotAssignment) []int {
	var out []int
	for i, a := range slots {
		if a.Kind == models.SlotKindTheory && !a.Locked {
			out = append(out, i)
		}
	}
	return out
}

func cloneSlots(slots []models.SlotAssignment) []models.SlotAssignment {
	out := make([]models.SlotAssignment, len(slots))
	copy(out, slots)
	return out
}
