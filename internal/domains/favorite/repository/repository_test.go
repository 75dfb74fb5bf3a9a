package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/infras/otel/mocks"
	"roomly/infras/postgres"
	"roomly/internal/domains/favorite/model"
	"roomly/internal/domains/favorite/repository"
	gDto "roomly/shared/dto"
)

const existQuery = "SELECT EXISTS(SELECT 1 FROM favorites WHERE (favorites.user_id = $1 AND favorites.room_id = $2))"

func newRepo(t *testing.T) (repository.Favorite, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func favorite() model.Favorite {
	return model.Favorite{UserID: 2, RoomID: 3, CreatedAt: time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)}
}

func TestFavoriteRepository_Toggle(t *testing.T) {
	t.Run("adds a missing favorite", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectPrepare(regexp.QuoteMeta(existQuery)).
			ExpectQuery().
			WithArgs(2, 3).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites (user_id, room_id, created_at)")).
			WithArgs(2, 3, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		isFavorite, err := repo.Toggle(context.Background(), favorite())
		require.NoError(t, err)
		assert.True(t, isFavorite)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("removes an existing favorite", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectPrepare(regexp.QuoteMeta(existQuery)).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites")).
			WithArgs(2, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		isFavorite, err := repo.Toggle(context.Background(), favorite())
		require.NoError(t, err)
		assert.False(t, isFavorite)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent insert keeps the favorite", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectPrepare(regexp.QuoteMeta(existQuery)).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites")).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		isFavorite, err := repo.Toggle(context.Background(), favorite())
		require.NoError(t, err)
		assert.True(t, isFavorite)
	})
}

func TestFavoriteRepository_GetAllDetailJoins(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("JOIN rooms ON rooms.id = favorites.room_id JOIN locations ON locations.id = rooms.location_id")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "room_id", "room_name", "location_name"}).
			AddRow(1, 2, 3, "Sea view", "Nha Trang"))

	details, err := repo.GetAllDetail(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "favorites.created_at", SortDir: gDto.SortDirDesc}, model.ByUser(2, nil))
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Sea view", details[0].RoomName)
	assert.Equal(t, "Nha Trang", details[0].LocationName)
}
