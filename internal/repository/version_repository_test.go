package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
)

func newVersionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestVersionRepositoryCreateVersioned(t *testing.T) {
	db, mock, cleanup := newVersionRepoMock(t)
	defer cleanup()
	repo := NewVersionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0) + 1 FROM timetable_versions WHERE branch_id = $1")).
		WithArgs("comp").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_versions")).
		WithArgs(sqlmock.AnyArg(), "comp", 3, string(models.VersionActionGenerated), "first run", 91.5, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	version := &models.TimetableVersion{
		BranchID:     "comp",
		Action:       models.VersionActionGenerated,
		Description:  "first run",
		QualityScore: 91.5,
		Payload:      types.JSONText(`[{"day":"Monday"}]`),
	}
	err := repo.CreateVersioned(context.Background(), version)
	require.NoError(t, err)
	assert.Equal(t, 3, version.Version)
	assert.NotEmpty(t, version.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepositoryCreateVersionedRequiresBranch(t *testing.T) {
	db, _, cleanup := newVersionRepoMock(t)
	defer cleanup()
	repo := NewVersionRepository(db)

	err := repo.CreateVersioned(context.Background(), &models.TimetableVersion{})
	require.Error(t, err)
}

func TestVersionRepositoryListByBranch(t *testing.T) {
	db, mock, cleanup := newVersionRepoMock(t)
	defer cleanup()
	repo := NewVersionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "branch_id", "version", "action", "description", "quality_score", "payload", "created_at"}).
		AddRow("ver-2", "comp", 2, string(models.VersionActionOptimized), "tuned", 93.0, types.JSONText(`[]`), time.Now()).
		AddRow("ver-1", "comp", 1, string(models.VersionActionGenerated), "", 90.0, types.JSONText(`[]`), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, branch_id, version, action, description, quality_score, payload, created_at")).
		WithArgs("comp").
		WillReturnRows(rows)

	list, err := repo.ListByBranch(context.Background(), "comp")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newVersionRepoMock(t)
	defer cleanup()
	repo := NewVersionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "branch_id", "version", "action", "description", "quality_score", "payload", "created_at"}).
		AddRow("ver-1", "comp", 1, string(models.VersionActionGenerated), "", 88.0, types.JSONText(`[{"day":"Monday"}]`), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_versions WHERE id = $1")).
		WithArgs("ver-1").
		WillReturnRows(rows)

	version, err := repo.FindByID(context.Background(), "ver-1")
	require.NoError(t, err)
	assert.Equal(t, "comp", version.BranchID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newVersionRepoMock(t)
	defer cleanup()
	repo := NewVersionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_versions WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionRepositoryDeleteOlderThan(t *testing.T) {
	db, mock, cleanup := newVersionRepoMock(t)
	defer cleanup()
	repo := NewVersionRepository(db)

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_versions")).
		WithArgs("comp", cutoff, 5).
		WillReturnResult(sqlmock.NewResult(0, 4))

	pruned, err := repo.DeleteOlderThan(context.Background(), "comp", cutoff, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pruned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
