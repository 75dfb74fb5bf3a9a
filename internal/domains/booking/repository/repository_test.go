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
	"roomly/internal/domains/booking/model"
	"roomly/internal/domains/booking/repository"
)

func newRepo(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func pendingBooking() model.Booking {
	return model.Booking{
		UserID:        2,
		RoomID:        3,
		CheckIn:       time.Date(2025, 10, 20, 14, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2025, 10, 23, 12, 0, 0, 0, time.UTC),
		GuestQuantity: 1,
		TotalPrice:    1500000,
		Status:        model.StatusPending,
	}
}

func TestBookingRepository_CreateWithoutOverlap(t *testing.T) {
	booking := pendingBooking()

	t.Run("locks the room, checks the interval and inserts", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings")).
			ExpectQuery().
			WithArgs(3, "PENDING", "CONFIRMED", booking.CheckOut, booking.CheckIn).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectCommit()

		id, err := repo.CreateWithoutOverlap(context.Background(), booking)
		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlap rolls back", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings")).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.CreateWithoutOverlap(context.Background(), booking)
		assert.ErrorIs(t, err, repository.ErrOverlap)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exclusion violation is an overlap", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings")).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
			WillReturnError(&pq.Error{Code: "23P01"})
		mock.ExpectRollback()

		_, err := repo.CreateWithoutOverlap(context.Background(), booking)
		assert.ErrorIs(t, err, repository.ErrOverlap)
	})
}

func TestBookingRepository_Remove(t *testing.T) {
	flags := map[string]any{model.FieldIsDeletedUser: true}

	t.Run("one side only keeps the row", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE bookings SET is_deleted_user = \$1\s+WHERE \(bookings\.id = \$2\)`).
			WithArgs(true, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare(regexp.QuoteMeta("SELECT bookings.id, bookings.is_deleted_user, bookings.is_deleted_admin FROM bookings")).
			ExpectQuery().
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_deleted_user", "is_deleted_admin"}).AddRow(5, true, false))
		mock.ExpectCommit()

		erased, err := repo.Remove(context.Background(), 5, flags)
		require.NoError(t, err)
		assert.False(t, erased)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("both sides erase the row", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE bookings SET is_deleted_user = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare(regexp.QuoteMeta("SELECT bookings.id, bookings.is_deleted_user, bookings.is_deleted_admin FROM bookings")).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_deleted_user", "is_deleted_admin"}).AddRow(5, true, true))
		mock.ExpectExec(`DELETE FROM bookings\s+WHERE \(bookings\.id = \$1\)`).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		erased, err := repo.Remove(context.Background(), 5, flags)
		require.NoError(t, err)
		assert.True(t, erased)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_GetDetailJoins(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("users.name AS user_name")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "user_name", "location_name"}).AddRow(5, 3, "Linh", "Da Lat"))

	detail, err := repo.GetDetail(context.Background(), model.Visibility("admin", 1))
	require.NoError(t, err)
	assert.Equal(t, "Linh", detail.UserName)
	assert.Equal(t, "Da Lat", detail.LocationName)
}
