package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/researchcollab/research-collab-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	// Preload queries are not emitted in a fixed order
	mock.MatchExpectationsInOrder(false)

	return db, mock
}

func TestGormApplicationRepository_List_FiltersByCallAndStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `co_author_applications` WHERE call_id = ? AND status = ? ORDER BY created_at DESC")).
		WithArgs(uint64(7), string(models.ApplicationStatusPending)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "call_id", "user_id", "roles", "motivation", "orcid_id", "status", "created_at", "updated_at",
		}).AddRow(3, 7, 42, []byte(`["software"]`), "I built the library.", "", "pending", now, now))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `users` WHERE `users`.`id` = ? AND `users`.`deleted_at` IS NULL")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "discord_id", "username", "email"}).
			AddRow(42, "discord-42", "applicant", "applicant@example.org"))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `research_calls` WHERE `research_calls`.`id` = ? AND `research_calls`.`deleted_at` IS NULL")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "status", "lead_author_id"}).
			AddRow(7, "Graph NN", "graph-nn-12", "open", 1))

	callID := uint64(7)
	status := models.ApplicationStatusPending
	apps, err := repo.List(ApplicationFilter{CallID: &callID, Status: &status})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, uint64(42), apps[0].UserID)
	require.Equal(t, models.StringList{"software"}, apps[0].Roles)
	require.Equal(t, "applicant", apps[0].User.Username)
	require.Equal(t, "Graph NN", apps[0].Call.Title)

	require.NoError(t, mock.ExpectationsWereMet())
}
