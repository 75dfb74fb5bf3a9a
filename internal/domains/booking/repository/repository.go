package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"roomly/infras/otel"
	"roomly/infras/postgres"
	"roomly/internal/domains/booking/model"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/logger"
	gRepo "roomly/shared/repository"

	"github.com/jmoiron/sqlx"
)

const lockRoomQuery = "SELECT pg_advisory_xact_lock($1)"

// ErrOverlap is returned when the requested interval is already held on the room.
var ErrOverlap = errors.New("booking overlaps an active booking")

type Booking interface {
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CreateWithoutOverlap(ctx context.Context, booking model.Booking) (int64, error)
	Remove(ctx context.Context, id int64, flags map[string]any) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	details gRepo.Repository[model.BookingDetail]
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.BookingDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error) {
	return r.details.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error) {
	return r.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.details.Count(ctx, filter) //nolint:wrapcheck
}

// CreateWithoutOverlap serialises creates per room with a transaction-scoped
// advisory lock, re-checks the interval and inserts. The exclusion constraint
// on bookings backs this up if a writer bypasses the lock.
func (r *repositoryImpl) CreateWithoutOverlap(ctx context.Context, booking model.Booking) (id int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateWithoutOverlap")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = r.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		if _, lockErr := sqltx.ExecContext(ctx, lockRoomQuery, booking.RoomID); lockErr != nil {
			logger.ErrorWithStack(lockErr)

			return fmt.Errorf("failed to lock room %d: %w", booking.RoomID, lockErr)
		}

		overlaps, existErr := r.ExistTx(ctx, sqltx, model.Overlap(booking.RoomID, booking.CheckIn, booking.CheckOut))
		if existErr != nil {
			return existErr
		}

		if overlaps {
			return ErrOverlap
		}

		var insertErr error

		id, insertErr = r.InsertReturningIDTx(ctx, sqltx, booking)

		return insertErr
	})

	if gRepo.IsPqErrorCode(err, constant.PqErrorCodeExclusionViolation) {
		return 0, ErrOverlap
	}

	if err != nil {
		return 0, err
	}

	return id, nil
}

// Remove applies one side's soft-delete flags and erases the row once both
// sides have removed it. It reports whether the row was erased.
func (r *repositoryImpl) Remove(ctx context.Context, id int64, flags map[string]any) (erased bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = r.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		if updateErr := r.UpdateTx(ctx, sqltx, flags, filter); updateErr != nil {
			return updateErr
		}

		booking, getErr := r.GetTx(ctx, sqltx, filter, model.FieldID, model.FieldIsDeletedUser, model.FieldIsDeletedAdmin)
		if getErr != nil {
			return getErr
		}

		if !booking.IsDeletedUser || !booking.IsDeletedAdmin {
			return nil
		}

		erased = true

		return r.DeleteTx(ctx, sqltx, filter)
	})
	if err != nil {
		return false, err
	}

	return erased, nil
}
