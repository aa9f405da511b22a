package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"schedview-snapshot/internal/models"
)

func sampleSnapshot() *models.ScheduleSnapshot {
	return &models.ScheduleSnapshot{
		Metadata: models.SnapshotMetadata{
			CompanyName: "Sparkle Group",
			LastUpdated: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			DataFormat:  models.FormatGrouped,
			DataRange:   models.DataRange{StartDate: "2025-02-01", EndDate: "2025-02-03"},
			Stats:       models.SnapshotStats{TotalJobs: 2, TotalTeams: 1, TotalEmployees: 1},
		},
	}
}

func TestSnapshotRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSnapshotRepository(db, zap.NewNop())
	snapshot := sampleSnapshot()

	mock.ExpectExec(`INSERT INTO schedule_uploads`).
		WithArgs(
			"upload-1",
			"Sparkle Group",
			models.FormatGrouped,
			snapshot.Metadata.LastUpdated,
			"2025-02-01",
			"2025-02-03",
			2,
			1,
			1,
			sqlmock.AnyArg(), // snapshot JSONB
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Insert("upload-1", snapshot)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_GetLatestSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSnapshotRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT snapshot\s+FROM schedule_uploads`).
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}).
			AddRow([]byte(`{"metadata":{"companyName":"Sparkle Group","dataFormat":"grouped"}}`)))

	snapshot, err := repo.GetLatestSnapshot()

	require.NoError(t, err)
	assert.Equal(t, "Sparkle Group", snapshot.Metadata.CompanyName)
	assert.Equal(t, models.FormatGrouped, snapshot.Metadata.DataFormat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_GetLatestSnapshot_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSnapshotRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT snapshot\s+FROM schedule_uploads`).
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}))

	_, err = repo.GetLatestSnapshot()

	assert.ErrorIs(t, err, models.ErrSnapshotNotFound)
}

func TestSnapshotRepository_ListUploads(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSnapshotRepository(db, zap.NewNop())
	uploadedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT\s+upload_id`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{
			"upload_id", "company_name", "data_format", "uploaded_at",
			"start_date", "end_date", "total_jobs", "total_teams", "total_employees",
		}).AddRow(
			"upload-1", "Sparkle Group", "grouped", uploadedAt,
			"2025-02-01", "2025-02-03", 2, 1, 1,
		))

	records, err := repo.ListUploads(10)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "upload-1", records[0].UploadID)
	assert.Equal(t, 2, records[0].TotalJobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ListUploads_DefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSnapshotRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT\s+upload_id`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{
			"upload_id", "company_name", "data_format", "uploaded_at",
			"start_date", "end_date", "total_jobs", "total_teams", "total_employees",
		}))

	records, err := repo.ListUploads(0)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
