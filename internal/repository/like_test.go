package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestLikeRepository_Toggle_Insert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	liked, err := repo.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Toggle_DeleteWhenPresent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	// Conflict: the row already exists, so the insert affects nothing.
	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes"`).
		WithArgs(uint(1), uint(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := repo.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes"`).
		WithArgs(uint(1), uint(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := repo.IsLiked(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
