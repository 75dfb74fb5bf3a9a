package repository_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/infras/otel/mocks"
	"roomly/infras/postgres"
	"roomly/shared"
	"roomly/shared/dto"
	"roomly/shared/repository"
)

type testRoom struct {
	ID    int64  `db:"id"        auto:"true"`
	Name  string `db:"room_name"`
	Price int64  `db:"price"`
}

type testRoomWithLocation struct {
	ID           int64  `db:"id"            auto:"true"`
	LocationID   int64  `db:"location_id"`
	LocationName string `db:"location_name" table:"locations" column:"name"`
}

func (testRoomWithLocation) JoinQuery() string {
	return "JOIN locations ON locations.id = rooms.location_id"
}

func newRepo(t *testing.T) (repository.Repository[testRoom], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[testRoom]("room", "rooms", "id", conn, mocks.NewOtel()), mock
}

func TestNewRepository_Columns(t *testing.T) {
	repo := repository.NewRepository[testRoom]("room", "rooms", "id", nil, mocks.NewOtel())
	assert.Equal(t, []string{"room_name", "price"}, repo.InsertColumns())

	joined := repository.NewRepository[testRoomWithLocation]("room", "rooms", "id", nil, mocks.NewOtel())
	assert.Equal(t, []string{"location_id"}, joined.InsertColumns())
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rooms (room_name, price) VALUES ($1, $2)")).
		WithArgs("Sea view", 100).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), testRoom{Name: "Sea view", Price: 100})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertReturningID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rooms (room_name, price) VALUES ($1, $2) RETURNING id")).
		WithArgs("Sea view", 100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.InsertReturningID(context.Background(), testRoom{Name: "Sea view", Price: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertReturningIDError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rooms")).
		WillReturnError(&pq.Error{Code: "23P01"})

	_, err := repo.InsertReturningID(context.Background(), testRoom{Name: "Sea view", Price: 100})
	require.Error(t, err)
	assert.True(t, repository.IsPqErrorCode(err, "23P01"))
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT rooms.id, rooms.room_name, rooms.price FROM rooms")).
		ExpectQuery().
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_name", "price"}).AddRow(1, "Sea view", 100))

	room, err := repo.Get(context.Background(), shared.FilterByID(1, "id", "rooms"))
	require.NoError(t, err)
	assert.Equal(t, testRoom{ID: 1, Name: "Sea view", Price: 100}, room)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNoRows(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("WHERE (rooms.id = $1)")).
		ExpectQuery().
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_name", "price"}))

	room, err := repo.Get(context.Background(), shared.FilterByID(404, "id", "rooms"))
	require.NoError(t, err)
	assert.Zero(t, room.ID)
}

func TestRepository_Exist(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM rooms")).
		ExpectQuery().
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), shared.FilterByID(1, "id", "rooms"))
	require.NoError(t, err)
	assert.True(t, exist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistRequiresFilter(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.Exist(context.Background(), dto.FilterGroup{})
	assert.Error(t, err)
}

func TestRepository_GetAllSorting(t *testing.T) {
	tests := []struct {
		name    string
		params  dto.QueryParams
		pattern string
	}{
		{
			name:    "known column is ordered",
			params:  dto.QueryParams{Page: 2, Limit: 10, SortBy: "price", SortDir: dto.SortDirAsc},
			pattern: `FROM rooms\s+ORDER BY price ASC\s+LIMIT \$1 OFFSET \$2`,
		},
		{
			name:    "direction defaults to ascending",
			params:  dto.QueryParams{Page: 2, Limit: 10, SortBy: "rooms.price"},
			pattern: `FROM rooms\s+ORDER BY rooms\.price ASC\s+LIMIT \$1 OFFSET \$2`,
		},
		{
			name:    "descending",
			params:  dto.QueryParams{Page: 2, Limit: 10, SortBy: "price", SortDir: "desc"},
			pattern: `FROM rooms\s+ORDER BY price DESC\s+LIMIT \$1 OFFSET \$2`,
		},
		{
			name:    "unknown column is ignored",
			params:  dto.QueryParams{Page: 2, Limit: 10, SortBy: "price; DROP TABLE rooms", SortDir: dto.SortDirAsc},
			pattern: `FROM rooms\s+LIMIT \$1 OFFSET \$2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			mock.ExpectPrepare(tt.pattern).
				ExpectQuery().
				WithArgs(10, 10).
				WillReturnRows(sqlmock.NewRows([]string{"id", "room_name", "price"}).AddRow(11, "Loft", 80))

			rooms, err := repo.GetAll(context.Background(), tt.params, dto.FilterGroup{})
			require.NoError(t, err)
			assert.Len(t, rooms, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(rooms.id) FROM rooms")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE rooms SET price = \$1\s+WHERE \(rooms\.id = \$2\)`).
		WithArgs(200, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"price": 200}, shared.FilterByID(1, "id", "rooms"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepo(t)

	assert.Error(t, repo.Delete(context.Background(), dto.FilterGroup{}))

	mock.ExpectExec(`DELETE FROM rooms\s+WHERE \(rooms\.id = \$1\)`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), shared.FilterByID(1, "id", "rooms")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithTx(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rooms")).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.WithTx(context.Background(), func(sqltx *sqlx.Tx) error {
			return repo.InsertTx(context.Background(), sqltx, testRoom{Name: "Loft", Price: 80})
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		repo, mock := newRepo(t)
		errAbort := errors.New("abort")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := repo.WithTx(context.Background(), func(_ *sqlx.Tx) error {
			return errAbort
		})
		assert.ErrorIs(t, err, errAbort)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsPqErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})

	assert.True(t, repository.IsPqErrorCode(wrapped, "23505"))
	assert.False(t, repository.IsPqErrorCode(wrapped, "23P01"))
	assert.False(t, repository.IsPqErrorCode(errors.New("plain"), "23505"))
}

func TestRepository_UpdateRequiresFilter(t *testing.T) {
	repo, _ := newRepo(t)

	err := repo.Update(context.Background(), map[string]any{"price": 1}, dto.FilterGroup{})
	assert.Error(t, err)
}

func TestRepository_UpdateColumnSharedWithFilter(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE rooms SET price = \$1, room_name = \$2\s+WHERE \(rooms\.price = \$3\)`).
		WithArgs(120, "Loft", 100).
		WillReturnResult(sqlmock.NewResult(0, 2))

	filter := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "price", Table: "rooms", Operator: dto.FilterOperatorEq, Value: 100},
	}}

	err := repo.Update(context.Background(), map[string]any{"room_name": "Loft", "price": 120}, filter)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetJoined(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := repository.NewRepository[testRoomWithLocation]("room", "rooms", "id", &postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel())

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT rooms.id, rooms.location_id, locations.name AS location_name FROM rooms JOIN locations ON locations.id = rooms.location_id WHERE (rooms.id = $1)")).
		ExpectQuery().
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "location_id", "location_name"}).AddRow(2, 1, "Da Lat"))

	room, err := repo.Get(context.Background(), shared.FilterByID(2, "id", "rooms"))
	require.NoError(t, err)
	assert.Equal(t, "Da Lat", room.LocationName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
