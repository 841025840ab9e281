package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/constraints"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
	appErrors "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/errors"
)

// maxEditSuggestions caps the alternative placements returned for a
// rejected edit.
const maxEditSuggestions = 5

// ValidationService answers constraint questions about timetables: full
// sweeps, single-edit checks and rule toggling. Toggles persist across
// requests, so they are guarded for concurrent handlers.
type ValidationService struct {
	validator *validator.Validate
	logger    *zap.Logger

	mu       sync.RWMutex
	disabled map[string]bool
}

// NewValidationService constructs a ValidationService.
func NewValidationService(validate *validator.Validate, logger *zap.Logger) *ValidationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationService{
		validator: validate,
		logger:    logger,
		disabled:  make(map[string]bool),
	}
}

// engine builds a fresh rule engine with the persisted toggles applied.
func (s *ValidationService) engine() *constraints.Engine {
	engine := constraints.NewEngine()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for name := range s.disabled {
		engine.SetEnabled(name, false)
	}
	return engine
}

// Validate runs the full constraint sweep over a timetable.
func (s *ValidationService) Validate(req dto.ValidateTimetableRequest) (*dto.ValidateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validation payload")
	}
	branch := req.Branch
	curriculum := req.Curriculum
	if err := branch.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch configuration")
	}

	report := s.engine().Validate(req.Timetable, &constraints.Context{Branch: &branch, Curriculum: &curriculum})
	return &dto.ValidateTimetableResponse{
		Valid:          report.Valid,
		HardViolations: report.HardViolations,
		SoftViolations: report.SoftViolations,
		Quality: models.QualityReport{
			Score:     report.QualityScore,
			Grade:     models.GradeFor(report.QualityScore),
			Breakdown: report.Breakdown,
		},
		Summary: report.Summary,
	}, nil
}

// ValidateEdit checks one proposed slot change without re-running
// generation. A rejected edit comes back with conflict-free alternative
// placements when any exist.
func (s *ValidationService) ValidateEdit(req dto.ValidateEditRequest) (*dto.ValidateEditResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid edit payload")
	}
	branch := req.Branch
	curriculum := req.Curriculum
	if err := branch.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branch configuration")
	}

	// An edit that moves an existing lecture carries its ID; drop the
	// old placement before checking the new one.
	existing := req.Timetable
	if req.NewSlot.ID != "" {
		existing = make([]models.SlotAssignment, 0, len(req.Timetable))
		for _, a := range req.Timetable {
			if a.ID == req.NewSlot.ID {
				continue
			}
			existing = append(existing, a)
		}
	}

	engine := s.engine()
	ctx := &constraints.Context{Branch: &branch, Curriculum: &curriculum}
	conflicts := engine.ValidateSlot(req.NewSlot, existing, ctx)
	resp := &dto.ValidateEditResponse{
		Valid:     len(conflicts) == 0,
		Conflicts: conflicts,
	}
	if !resp.Valid {
		resp.Suggestions = s.suggestions(engine, ctx, req.NewSlot, existing)
	}
	return resp, nil
}

// suggestions scans the week for placements where the edited lecture
// would not conflict.
func (s *ValidationService) suggestions(engine *constraints.Engine, ctx *constraints.Context, slot models.SlotAssignment, existing []models.SlotAssignment) []dto.EditSuggestion {
	var out []dto.EditSuggestion
	for _, day := range ctx.Branch.WorkingDays {
		for idx := 0; idx < ctx.Branch.SlotsPerDay; idx++ {
			if ctx.Branch.IsRecess(idx) {
				continue
			}
			if day == slot.Day && idx == slot.Slot {
				continue
			}
			if cohortCellTaken(existing, slot, day, idx) {
				continue
			}
			candidate := slot
			candidate.Day = day
			candidate.Slot = idx
			if len(engine.ValidateSlot(candidate, existing, ctx)) == 0 {
				out = append(out, dto.EditSuggestion{Day: day, Slot: idx})
				if len(out) == maxEditSuggestions {
					return out
				}
			}
		}
	}
	return out
}

func cohortCellTaken(existing []models.SlotAssignment, slot models.SlotAssignment, day string, idx int) bool {
	for _, a := range existing {
		if a.Day == day && a.Slot == idx &&
			a.Year == slot.Year && a.Division == slot.Division &&
			a.Subject != models.SubjectFree {
			return true
		}
	}
	return false
}

// Constraints lists every registered rule with its toggle state.
func (s *ValidationService) Constraints() []dto.ConstraintInfo {
	rules := s.engine().Rules()
	out := make([]dto.ConstraintInfo, 0, len(rules))
	for _, info := range rules {
		out = append(out, dto.ConstraintInfo{
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
		})
	}
	return out
}

// SetConstraintEnabled toggles one rule for all subsequent validations.
func (s *ValidationService) SetConstraintEnabled(name string, enabled bool) (dto.ConstraintInfo, error) {
	probe := constraints.NewEngine()
	if !probe.SetEnabled(name, enabled) {
		return dto.ConstraintInfo{}, appErrors.Clone(appErrors.ErrNotFound, "unknown constraint "+name)
	}

	s.mu.Lock()
	if enabled {
		delete(s.disabled, name)
	} else {
		s.disabled[name] = true
	}
	s.mu.Unlock()

	s.logger.Info("constraint toggled", zap.String("constraint", name), zap.Bool("enabled", enabled))
	for _, info := range s.engine().Rules() {
		if info.Name == name {
			return dto.ConstraintInfo{
				Name:        info.Name,
				Description: info.Description,
				Severity:    string(info.Severity),
				Enabled:     info.Enabled,
			}, nil
		}
	}
	return dto.ConstraintInfo{}, appErrors.Clone(appErrors.ErrNotFound, "unknown constraint "+name)
}
