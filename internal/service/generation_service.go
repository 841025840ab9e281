package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/constraints"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/engine"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
	appErrors "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/errors"
)

type historyRecorder interface {
	Record(ctx context.Context, branchID string, action models.VersionAction, description string, slots []models.SlotAssignment, score float64) (*models.TimetableVersion, error)
}

type generationMetrics interface {
	ObserveGeneration(outcome string, duration time.Duration)
	ObserveOptimizerGain(gain float64)
}

// GenerationConfig tunes the engine runs driven by this service.
type GenerationConfig struct {
	MaxIterations      int
	OptimizerPasses    int
	OptimizerPatience  int
	MaxDailyLectures   int
	TeacherDailyCap    int
	TeacherWeeklyCap   int
	TheorySlack        int
	MinWorkingDays     int
	OptimizerByDefault bool
}

// GenerationService orchestrates a full generation run: feasibility,
// per-cohort lab and theory scheduling, aggregate validation, optional
// optimization and the final acceptance gate.
type GenerationService struct {
	history   historyRecorder
	metrics   generationMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       GenerationConfig
	seed      func() int64
}

// NewGenerationService constructs a GenerationService. History and
// metrics are optional.
func NewGenerationService(history historyRecorder, metrics generationMetrics, validate *validator.Validate, logger *zap.Logger, cfg GenerationConfig) *GenerationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationService{
		history:   history,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		seed:      func() int64 { return time.Now().UnixNano() },
	}
}

type cohortRef struct {
	Year     string
	Division string
}

// cohortOutcome is what one cohort's isolated run hands back for the
// merge: its own slots, search statistics and, for the backtracking
// strategy, a failure report when the search exhausted.
type cohortOutcome struct {
	result     models.CohortResult
	slots      []models.SlotAssignment
	iterations int
	backtracks int
	failure    *models.FailureReport
}

func targetSet(targets []cohortRef) map[cohortRef]bool {
	set := make(map[cohortRef]bool, len(targets))
	for _, c := range targets {
		set[c] = true
	}
	return set
}

// Generate runs the full pipeline and always returns the best timetable
// it could produce; Success and Failure describe how far it got.
func (s *GenerationService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	start := time.Now()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	branch := req.Branch
	curriculum := req.Curriculum
	if err := branch.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch configuration")
	}

	if failure := engine.NewFeasibilityVerifier(&branch, &curriculum, s.cfg.TeacherWeeklyCap, s.logger).Verify(); failure != nil {
		s.observeGeneration("infeasible", start)
		return &dto.GenerateTimetableResponse{
			Timetable: dto.TimetableView{},
			Stats:     models.TimetableStats{},
			Failure:   failure,
		}, nil
	}

	targets := s.targetCohorts(req)
	preserved := s.preservedSlots(req, targets)

	// Each cohort runs against its own state seeded with the preserved
	// slots, so goroutines never share mutable data and cohort order
	// cannot change the result. The merged aggregate is re-validated
	// below.
	outcomes := make([]cohortOutcome, len(targets))
	var wg sync.WaitGroup
	for i, cohort := range targets {
		wg.Add(1)
		go func(i int, c cohortRef) {
			defer wg.Done()
			outcomes[i] = s.generateCohort(&branch, &curriculum, preserved, c, req.Strategy)
		}(i, cohort)
	}
	wg.Wait()

	stats := models.TimetableStats{PerCohort: make(map[string]models.CohortResult)}
	cohortFailures := 0
	targeted := targetSet(targets)
	slots := make([]models.SlotAssignment, 0, len(preserved))
	for _, a := range preserved {
		if !targeted[cohortRef{Year: a.Year, Division: a.Division}] {
			slots = append(slots, a)
		}
	}
	var searchFailure *models.FailureReport
	for i, c := range targets {
		out := outcomes[i]
		stats.PerCohort[models.CohortKey(c.Year, c.Division)] = out.result
		stats.Iterations += out.iterations
		stats.Backtracks += out.backtracks
		if !out.result.Success {
			cohortFailures++
		}
		if out.failure != nil && searchFailure == nil {
			searchFailure = out.failure
		}
		slots = append(slots, out.slots...)
	}

	if req.Strategy == dto.StrategyBacktracking && searchFailure != nil {
		s.observeGeneration("failed", start)
		return s.failedResponse(slots, &branch, &curriculum, stats, searchFailure), nil
	}

	engine.SortAssignments(&branch, slots)
	rules := constraints.NewEngine()
	rulesCtx := &constraints.Context{Branch: &branch, Curriculum: &curriculum}
	report := rules.Validate(slots, rulesCtx)

	optimize := s.cfg.OptimizerByDefault
	if req.Optimize != nil {
		optimize = *req.Optimize
	}
	if optimize && report.Valid {
		rng := rand.New(rand.NewSource(s.seed()))
		optimizer := engine.NewOptimizer(rules, rulesCtx, rng, s.cfg.OptimizerPasses, s.cfg.OptimizerPatience, s.logger)
		result := optimizer.Optimize(slots)
		if s.metrics != nil {
			s.metrics.ObserveOptimizerGain(result.FinalScore - result.InitialScore)
		}
		slots = result.Slots
		engine.SortAssignments(&branch, slots)
		report = rules.Validate(slots, rulesCtx)
	}

	response := &dto.GenerateTimetableResponse{
		Success:   cohortFailures < len(targets),
		Timetable: buildTimetableView(slots),
		Slots:     slots,
		Stats:     fillCounts(stats, slots),
		Quality: models.QualityReport{
			Score:     report.QualityScore,
			Grade:     models.GradeFor(report.QualityScore),
			Breakdown: report.Breakdown,
		},
		Valid: report.Valid,
	}

	postValidator := engine.NewPostValidator(&branch, &curriculum, s.cfg.MinWorkingDays, s.cfg.TheorySlack)
	if stageErr := postValidator.Validate(slots); stageErr != nil {
		response.Success = false
		response.Failure = &models.FailureReport{
			Stage:   stageErr.Stage,
			Reason:  stageErr.Reason,
			Details: stageErr.Details,
		}
	}

	if response.Success && s.history != nil {
		version, err := s.history.Record(ctx, branch.BranchID, models.VersionActionGenerated, req.Description, slots, report.QualityScore)
		if err != nil {
			s.logger.Warn("failed to record timetable version", zap.Error(err))
		} else {
			response.VersionID = version.ID
		}
	}

	outcome := "success"
	if !response.Success {
		outcome = "failed"
	}
	s.observeGeneration(outcome, start)
	s.logger.Info("generation finished",
		zap.Bool("success", response.Success),
		zap.Bool("valid", response.Valid),
		zap.Int("cohorts", len(targets)),
		zap.Int("cohort_failures", cohortFailures),
		zap.Int("slots", len(slots)),
		zap.Int("preserved", len(preserved)),
		zap.Float64("quality", report.QualityScore))
	return response, nil
}

// Optimize improves an existing timetable without regenerating it.
func (s *GenerationService) Optimize(ctx context.Context, req dto.OptimizeTimetableRequest) (*dto.OptimizeTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid optimization payload")
	}
	branch := req.Branch
	curriculum := req.Curriculum
	if err := branch.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch configuration")
	}

	passes := req.Iterations
	if passes <= 0 {
		passes = s.cfg.OptimizerPasses
	}
	rules := constraints.NewEngine()
	rulesCtx := &constraints.Context{Branch: &branch, Curriculum: &curriculum}
	rng := rand.New(rand.NewSource(s.seed()))
	optimizer := engine.NewOptimizer(rules, rulesCtx, rng, passes, s.cfg.OptimizerPatience, s.logger)
	result := optimizer.Optimize(req.Timetable)
	if s.metrics != nil {
		s.metrics.ObserveOptimizerGain(result.FinalScore - result.InitialScore)
	}

	slots := result.Slots
	engine.SortAssignments(&branch, slots)
	if s.history != nil && result.FinalScore > result.InitialScore {
		if _, err := s.history.Record(ctx, branch.BranchID, models.VersionActionOptimized, "optimizer run", slots, result.FinalScore); err != nil {
			s.logger.Warn("failed to record optimized version", zap.Error(err))
		}
	}
	return &dto.OptimizeTimetableResponse{
		Timetable:    buildTimetableView(slots),
		Slots:        slots,
		InitialScore: result.InitialScore,
		FinalScore:   result.FinalScore,
		Improvement:  result.FinalScore - result.InitialScore,
		Stats: dto.OptimizeStats{
			Iterations: result.Iterations,
			Accepted:   result.Accepted,
			Restarts:   result.Restarts,
		},
	}, nil
}

// EngineStatus describes capabilities for clients.
func (s *GenerationService) EngineStatus() dto.EngineStatusResponse {
	status := dto.EngineStatusResponse{
		Strategies:      []string{dto.StrategyConstructive, dto.StrategyBacktracking},
		MaxIterations:   s.cfg.MaxIterations,
		OptimizerActive: s.cfg.OptimizerByDefault,
	}
	for _, info := range constraints.NewEngine().Rules() {
		if info.Severity == constraints.SeverityHard {
			status.HardConstraints = append(status.HardConstraints, info.Name)
		} else {
			status.SoftConstraints = append(status.SoftConstraints, info.Name)
		}
	}
	return status
}

// generateCohort runs one cohort end to end on a fresh state. The
// state is seeded with every preserved slot so cross-cohort teacher
// and room commitments from earlier runs stay visible, then only the
// cohort's own slots are handed back for the merge.
func (s *GenerationService) generateCohort(branch *models.BranchConfig, curriculum *models.Curriculum, preserved []models.SlotAssignment, c cohortRef, strategy string) cohortOutcome {
	state := engine.NewState(branch, curriculum)
	state.Preload(preserved)

	out := cohortOutcome{result: s.scheduleCohort(state, c, strategy)}
	if strategy == dto.StrategyBacktracking && out.result.Success {
		backtracker := engine.NewBacktracker(state, s.cfg.MaxIterations, s.logger)
		solved, searchStats := backtracker.SolveRefs(s.cohortRefs(state, c))
		out.iterations = searchStats.Iterations
		out.backtracks = searchStats.Backtracks
		if !solved {
			out.result = models.CohortResult{Success: false, Reason: "backtracking search exhausted"}
			out.failure = backtracker.FailureReport()
		}
	}

	for _, a := range state.Assignments() {
		if a.Year == c.Year && a.Division == c.Division {
			out.slots = append(out.slots, a)
		}
	}
	return out
}

// scheduleCohort places one cohort's labs and, under the constructive
// strategy, its theory lectures. Backtracking leaves theory cells open
// for the search. A hard lab failure skips theory: a cohort without
// labs is rebuilt as a whole after the configuration is fixed.
func (s *GenerationService) scheduleCohort(state *engine.State, c cohortRef, strategy string) models.CohortResult {
	labReport, err := engine.NewLabScheduler(state, s.logger).ScheduleCohort(c.Year, c.Division)
	if err != nil {
		s.logger.Warn("cohort lab scheduling failed",
			zap.String("cohort", models.CohortKey(c.Year, c.Division)),
			zap.Error(err))
		return models.CohortResult{Success: false, Reason: err.Error()}
	}
	if strategy == dto.StrategyBacktracking {
		return models.CohortResult{Success: true, Labs: labReport.Placed}
	}
	theoryReport := engine.NewTheoryScheduler(state, s.cfg.MaxDailyLectures, s.cfg.TeacherDailyCap, s.logger).
		ScheduleCohort(c.Year, c.Division)
	return models.CohortResult{
		Success: true,
		Labs:    labReport.Placed,
		Theory:  theoryReport.Placed,
	}
}

func (s *GenerationService) targetCohorts(req dto.GenerateTimetableRequest) []cohortRef {
	if len(req.TargetCohorts) > 0 {
		out := make([]cohortRef, 0, len(req.TargetCohorts))
		for _, c := range req.TargetCohorts {
			out = append(out, cohortRef{Year: c.Year, Division: c.Division})
		}
		return out
	}
	var out []cohortRef
	for _, year := range req.Branch.AcademicYears {
		for _, division := range req.Branch.DivisionsFor(year) {
			out = append(out, cohortRef{Year: year, Division: division})
		}
	}
	return out
}

// preservedSlots collects existing slots that must survive this run:
// everything outside the target cohorts plus explicitly locked slots.
func (s *GenerationService) preservedSlots(req dto.GenerateTimetableRequest, targets []cohortRef) []models.SlotAssignment {
	if len(req.ExistingTimetable) == 0 {
		return nil
	}
	targeted := targetSet(targets)
	locked := make(map[string]bool, len(req.LockedSlotIDs))
	for _, id := range req.LockedSlotIDs {
		locked[id] = true
	}

	var kept []models.SlotAssignment
	for _, a := range req.ExistingTimetable {
		if targeted[cohortRef{Year: a.Year, Division: a.Division}] &&
			!locked[a.ID] && !locked[a.SlotID()] {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// cohortRefs narrows the open cells of a state to one cohort.
func (s *GenerationService) cohortRefs(state *engine.State, c cohortRef) []engine.SlotRef {
	var refs []engine.SlotRef
	for _, ref := range state.OpenRefs() {
		if ref.Year == c.Year && ref.Division == c.Division {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (s *GenerationService) failedResponse(slots []models.SlotAssignment, branch *models.BranchConfig, curriculum *models.Curriculum, stats models.TimetableStats, failure *models.FailureReport) *dto.GenerateTimetableResponse {
	engine.SortAssignments(branch, slots)
	rules := constraints.NewEngine()
	report := rules.Validate(slots, &constraints.Context{Branch: branch, Curriculum: curriculum})
	return &dto.GenerateTimetableResponse{
		Timetable: buildTimetableView(slots),
		Slots:     slots,
		Stats:     fillCounts(stats, slots),
		Quality: models.QualityReport{
			Score:     report.QualityScore,
			Grade:     models.GradeFor(report.QualityScore),
			Breakdown: report.Breakdown,
		},
		Valid:   report.Valid,
		Failure: failure,
	}
}

func (s *GenerationService) observeGeneration(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveGeneration(outcome, time.Since(start))
	}
}

func fillCounts(stats models.TimetableStats, slots []models.SlotAssignment) models.TimetableStats {
	for _, a := range slots {
		switch a.Kind {
		case models.SlotKindTheory:
			stats.TheoryCount++
		case models.SlotKindLab:
			stats.LabCount++
		}
	}
	stats.TotalSlots = len(slots)
	return stats
}

// buildTimetableView folds the flat slot list into the hierarchical
// year/division/day response shape.
func buildTimetableView(slots []models.SlotAssignment) dto.TimetableView {
	view := make(dto.TimetableView)
	for _, a := range slots {
		if view[a.Year] == nil {
			view[a.Year] = make(map[string]map[string][]models.SlotAssignment)
		}
		if view[a.Year][a.Division] == nil {
			view[a.Year][a.Division] = make(map[string][]models.SlotAssignment)
		}
		view[a.Year][a.Division][a.Day] = append(view[a.Year][a.Division][a.Day], a)
	}
	return view
}
