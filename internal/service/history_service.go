package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
	appErrors "github.com/Om-Rajpure/Advance-Timetable-Generator/pkg/errors"
)

type versionRepository interface {
	CreateVersioned(ctx context.Context, version *models.TimetableVersion) error
	ListByBranch(ctx context.Context, branchID string) ([]models.TimetableVersion, error)
	FindByID(ctx context.Context, id string) (*models.TimetableVersion, error)
}

type historyCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
}

// HistoryService stores and restores timetable versions. The whole
// service is optional: when the repository is nil every call fails with
// ErrHistoryDisabled so the engine keeps working without a database.
type HistoryService struct {
	repo     versionRepository
	cache    historyCache
	metrics  cacheMetrics
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewHistoryService constructs a HistoryService. Cache and metrics are
// optional.
func NewHistoryService(repo versionRepository, cache historyCache, metrics cacheMetrics, logger *zap.Logger, cacheTTL time.Duration) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &HistoryService{
		repo:     repo,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Enabled reports whether versions can be persisted.
func (s *HistoryService) Enabled() bool {
	return s != nil && s.repo != nil
}

func (s *HistoryService) listCacheKey(branchID string) string {
	return fmt.Sprintf("history:%s:versions", branchID)
}

// Record persists a new timetable version for the branch.
func (s *HistoryService) Record(ctx context.Context, branchID string, action models.VersionAction, description string, slots []models.SlotAssignment, score float64) (*models.TimetableVersion, error) {
	if !s.Enabled() {
		return nil, appErrors.ErrHistoryDisabled
	}
	if branchID == "" {
		branchID = "default"
	}
	payload, err := json.Marshal(slots)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "marshal timetable payload")
	}

	version := &models.TimetableVersion{
		BranchID:     branchID,
		Action:       action,
		Description:  description,
		QualityScore: score,
		Payload:      payload,
	}
	if err := s.repo.CreateVersioned(ctx, version); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store timetable version")
	}
	s.invalidate(ctx, branchID)
	s.logger.Info("timetable version recorded",
		zap.String("branch_id", branchID),
		zap.Int("version", version.Version),
		zap.String("action", string(action)))
	return version, nil
}

// List returns the stored versions of a branch, newest first.
func (s *HistoryService) List(ctx context.Context, branchID string) (*dto.VersionListResponse, error) {
	if !s.Enabled() {
		return nil, appErrors.ErrHistoryDisabled
	}

	key := s.listCacheKey(branchID)
	if s.cache != nil {
		var cached dto.VersionListResponse
		start := time.Now()
		err := s.cache.Get(ctx, key, &cached)
		s.recordCache(err == nil, start)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("history cache lookup failed", zap.String("key", key), zap.Error(err))
		}
	}

	versions, err := s.repo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list timetable versions")
	}
	resp := &dto.VersionListResponse{
		BranchID: branchID,
		Versions: make([]models.TimetableVersionMeta, 0, len(versions)),
	}
	for _, version := range versions {
		resp.Versions = append(resp.Versions, version.Meta())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			s.logger.Warn("history cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
	return resp, nil
}

// Get loads one version with its full slot payload.
func (s *HistoryService) Get(ctx context.Context, id string) (*dto.VersionDetailResponse, error) {
	if !s.Enabled() {
		return nil, appErrors.ErrHistoryDisabled
	}
	version, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := decodeSlots(version.Payload)
	if err != nil {
		return nil, err
	}
	return &dto.VersionDetailResponse{Meta: version.Meta(), Slots: slots}, nil
}

// Restore makes a past version the new head by re-recording its payload.
func (s *HistoryService) Restore(ctx context.Context, id string) (*dto.RestoreVersionResponse, error) {
	if !s.Enabled() {
		return nil, appErrors.ErrHistoryDisabled
	}
	version, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := decodeSlots(version.Payload)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("restored from version %d", version.Version)
	head, err := s.Record(ctx, version.BranchID, models.VersionActionRestored, description, slots, version.QualityScore)
	if err != nil {
		return nil, err
	}
	return &dto.RestoreVersionResponse{
		RestoredFrom: version.ID,
		Head:         head.Meta(),
		Slots:        slots,
	}, nil
}

func (s *HistoryService) find(ctx context.Context, id string) (*models.TimetableVersion, error) {
	version, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable version not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load timetable version")
	}
	return version, nil
}

func (s *HistoryService) invalidate(ctx context.Context, branchID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, fmt.Sprintf("history:%s:*", branchID)); err != nil {
		s.logger.Warn("history cache invalidation failed", zap.String("branch_id", branchID), zap.Error(err))
	}
}

func (s *HistoryService) recordCache(hit bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
}

func decodeSlots(payload []byte) ([]models.SlotAssignment, error) {
	var slots []models.SlotAssignment
	if err := json.Unmarshal(payload, &slots); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode timetable payload")
	}
	return slots, nil
}
