package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

// VersionRepository persists timetable version snapshots.
type VersionRepository struct {
	db *sqlx.DB
}

// NewVersionRepository constructs repository.
func NewVersionRepository(db *sqlx.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// CreateVersioned inserts a snapshot assigning the next version number
// for the branch.
func (r *VersionRepository) CreateVersioned(ctx context.Context, version *models.TimetableVersion) error {
	if version == nil {
		return fmt.Errorf("version payload is nil")
	}
	if version.BranchID == "" {
		return fmt.Errorf("branch_id is required")
	}
	if version.ID == "" {
		version.ID = uuid.NewString()
	}
	if len(version.Payload) == 0 {
		version.Payload = types.JSONText(`[]`)
	}
	if version.CreatedAt.IsZero() {
		version.CreatedAt = time.Now().UTC()
	}

	const nextVersionQuery = `SELECT COALESCE(MAX(version), 0) + 1 FROM timetable_versions WHERE branch_id = $1`
	if err := r.db.GetContext(ctx, &version.Version, nextVersionQuery, version.BranchID); err != nil {
		return fmt.Errorf("compute next timetable version: %w", err)
	}

	const insertQuery = `
INSERT INTO timetable_versions (id, branch_id, version, action, description, quality_score, payload, created_at)
VALUES (:id, :branch_id, :version, :action, :description, :quality_score, :payload, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, insertQuery, version); err != nil {
		return fmt.Errorf("insert timetable version: %w", err)
	}
	return nil
}

// ListByBranch returns all versions for the branch, newest first.
func (r *VersionRepository) ListByBranch(ctx context.Context, branchID string) ([]models.TimetableVersion, error) {
	const query = `SELECT id, branch_id, version, action, description, quality_score, payload, created_at
FROM timetable_versions WHERE branch_id = $1 ORDER BY version DESC`
	var versions []models.TimetableVersion
	if err := r.db.SelectContext(ctx, &versions, query, branchID); err != nil {
		return nil, fmt.Errorf("list timetable versions: %w", err)
	}
	return versions, nil
}

// FindByID loads a version by its identifier.
func (r *VersionRepository) FindByID(ctx context.Context, id string) (*models.TimetableVersion, error) {
	const query = `SELECT id, branch_id, version, action, description, quality_score, payload, created_at FROM timetable_versions WHERE id = $1`
	var version models.TimetableVersion
	if err := r.db.GetContext(ctx, &version, query, id); err != nil {
		return nil, err
	}
	return &version, nil
}

// DeleteOlderThan prunes versions beyond the retention window, keeping
// at least the newest keep versions per branch.
func (r *VersionRepository) DeleteOlderThan(ctx context.Context, branchID string, cutoff time.Time, keep int) (int64, error) {
	const query = `DELETE FROM timetable_versions
WHERE branch_id = $1 AND created_at < $2 AND version NOT IN (
	SELECT version FROM timetable_versions WHERE branch_id = $1 ORDER BY version DESC LIMIT $3)`
	result, err := r.db.ExecContext(ctx, query, branchID, cutoff, keep)
	if err != nil {
		return 0, fmt.Errorf("prune timetable versions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("timetable versions rows affected: %w", err)
	}
	return affected, nil
}
