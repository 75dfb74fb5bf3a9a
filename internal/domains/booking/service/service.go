package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"roomly/config"
	"roomly/infras/kafka"
	"roomly/infras/otel"
	"roomly/internal/domains/booking/model"
	"roomly/internal/domains/booking/model/dto"
	"roomly/internal/domains/booking/repository"
	roomModel "roomly/internal/domains/room/model"
	roomRepo "roomly/internal/domains/room/repository"
	userModel "roomly/internal/domains/user/model"
	userRepo "roomly/internal/domains/user/repository"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	"roomly/shared/metrics"
	"roomly/shared/timezone"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	msgInvalidRole      = "Invalid role"
	msgNotFound         = "Booking not found"
	msgOverlap          = "This room is already booked in this period"
	msgInvalidInterval  = "Check-out must be after check-in"
	msgInvalidPrice     = "total_price must be provided and positive"
	msgNotPending       = "Booking is not pending"
	msgCancelWindow     = "Cannot cancel on or after check-in date"
	msgCancelForeign    = "You cannot cancel bookings of other users"
	msgAlreadyCancelled = "Booking already canceled"
	msgRemovePending    = "Pending booking must be confirmed or cancelled before deletion"
	msgErased           = "Booking permanently deleted (both sides deleted)"
)

type Booking interface {
	Create(ctx context.Context, actor dto.Actor, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, actor dto.Actor, params gDto.QueryParams, query dto.ListBookingsQuery) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, actor dto.Actor, id int64) (dto.BookingResponse, error)
	Confirm(ctx context.Context, actor dto.Actor, id int64) (dto.BookingResponse, error)
	Cancel(ctx context.Context, actor dto.Actor, id int64, req dto.CancelBookingRequest) (dto.BookingResponse, error)
	Remove(ctx context.Context, actor dto.Actor, id int64) (dto.RemoveBookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	userRepo userRepo.User
	roomRepo roomRepo.Room
	cfg      *config.Config
	otel     otel.Otel
	producer kafka.Producer
	clock    timezone.Clock
	location *time.Location
}

func New(
	repo repository.Booking,
	userRepo userRepo.User,
	roomRepo roomRepo.Room,
	cfg *config.Config,
	otel otel.Otel,
	producer kafka.Producer,
	clock timezone.Clock,
) Booking {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		roomRepo: roomRepo,
		cfg:      cfg,
		otel:     otel,
		producer: producer,
		clock:    clock,
		location: timezone.LoadLocation(cfg.Booking.Timezone),
	}
}

func authorize(actor dto.Actor) error {
	if !model.IsKnownRole(actor.Role) {
		return failure.Forbidden(msgInvalidRole)
	}

	return nil
}

func visibleByID(id int64, role string, userID int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			shared.FilterByID(id, model.FieldID, model.TableName),
			model.Visibility(role, userID),
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, actor dto.Actor, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = authorize(actor); err != nil {
		return res, err
	}

	bookerID := req.BookerID(actor)

	user, err := s.userRepo.Get(ctx, shared.FilterActiveByID(bookerID, userModel.FieldID, userModel.TableName),
		userModel.FieldID, userModel.FieldName, userModel.FieldEmail, userModel.FieldAvatar)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("User with id %d not found", bookerID))
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterActiveByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("Room with id %d not found", req.RoomID))
	}

	checkIn, err := dto.ParseBookingTime(req.CheckIn, s.location)
	if err != nil {
		return res, failure.BadRequestFromString("check_in must be an ISO 8601 date")
	}

	checkOut, err := dto.ParseBookingTime(req.CheckOut, s.location)
	if err != nil {
		return res, failure.BadRequestFromString("check_out must be an ISO 8601 date")
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString(msgInvalidInterval)
	}

	overlaps, err := s.repo.Exist(ctx, model.Overlap(room.ID, checkIn, checkOut))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return res, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlaps {
		metrics.RecordBookingConflict()

		return res, failure.Conflict(msgOverlap)
	}

	if req.TotalPrice == nil || *req.TotalPrice <= 0 {
		return res, failure.BadRequestFromString(msgInvalidPrice)
	}

	booking := req.ToModel(user.ID, checkIn, checkOut, s.clock.Now())

	booking.ID, err = s.repo.CreateWithoutOverlap(ctx, booking)
	if errors.Is(err, repository.ErrOverlap) {
		metrics.RecordBookingConflict()

		return res, failure.Conflict(msgOverlap)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(model.BookingDetail{
		Booking:      booking,
		UserName:     user.Name,
		UserEmail:    user.Email,
		UserAvatar:   user.Avatar,
		RoomName:     room.RoomName,
		RoomPrice:    room.Price,
		RoomImage:    room.Image,
		LocationID:   room.LocationID,
		LocationName: room.LocationName,
		Province:     room.Province,
	})

	s.record(ctx, dto.EventCreated, metrics.BookingActionCreated, booking, actor)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, actor dto.Actor, params gDto.QueryParams, query dto.ListBookingsQuery) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = authorize(actor); err != nil {
		return res, err
	}

	if params.SortBy == "" {
		params.SortBy = model.TableName + "." + constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	filter := query.ToFilter(actor)

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, actor dto.Actor, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = authorize(actor); err != nil {
		return res, err
	}

	detail, err := s.getDetail(ctx, visibleByID(id, actor.Role, actor.UserID))
	if err != nil {
		return res, err
	}

	if detail.ID == 0 {
		return res, failure.NotFound(msgNotFound)
	}

	res.FromModel(detail)

	return res, nil
}

// Confirm is admin-only; the route guard enforces the role, so the lookup
// always uses the admin view.
func (s *serviceImpl) Confirm(ctx context.Context, actor dto.Actor, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.getDetail(ctx, visibleByID(id, constant.RoleAdmin, actor.UserID))
	if err != nil {
		return res, err
	}

	if detail.ID == 0 {
		return res, failure.NotFound(msgNotFound)
	}

	if detail.Status != model.StatusPending {
		return res, failure.BadRequestFromString(msgNotPending)
	}

	now := s.clock.Now()

	fields := map[string]any{
		model.FieldStatus:       string(model.StatusConfirmed),
		model.FieldConfirmedAt:  now,
		constant.FieldUpdatedAt: now,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to confirm booking")

		return res, fmt.Errorf("failed to confirm booking: %w", err)
	}

	detail.Status = model.StatusConfirmed
	detail.ConfirmedAt = &now
	detail.UpdatedAt = now

	res.FromModel(detail)

	s.record(ctx, dto.EventConfirmed, metrics.BookingActionConfirmed, detail.Booking, actor)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, actor dto.Actor, id int64, req dto.CancelBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = authorize(actor); err != nil {
		return res, err
	}

	detail, err := s.getDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	if detail.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("Booking with id %d not found", id))
	}

	now := s.clock.Now()

	today := timezone.StartOfDay(now, s.location)
	checkInDay := timezone.StartOfDay(detail.CheckIn, s.location)

	if !today.Before(checkInDay) {
		return res, failure.BadRequestFromString(msgCancelWindow)
	}

	if actor.Role == constant.RoleUser && detail.UserID != actor.UserID {
		return res, failure.Forbidden(msgCancelForeign)
	}

	if detail.Status == model.StatusCancelled {
		return res, failure.BadRequestFromString(msgAlreadyCancelled)
	}

	reason := shared.StringOrNil(req.Reason)
	role := actor.Role

	fields := map[string]any{
		model.FieldStatus:       string(model.StatusCancelled),
		model.FieldCancelReason: reason,
		model.FieldCancelledBy:  role,
		model.FieldCancelledAt:  now,
		constant.FieldUpdatedAt: now,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	detail.Status = model.StatusCancelled
	detail.CancelReason = reason
	detail.CancelledBy = &role
	detail.CancelledAt = &now
	detail.UpdatedAt = now

	res.FromModel(detail)

	s.record(ctx, dto.EventCancelled, metrics.BookingActionCancelled, detail.Booking, actor)

	return res, nil
}

func (s *serviceImpl) Remove(ctx context.Context, actor dto.Actor, id int64) (res dto.RemoveBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = authorize(actor); err != nil {
		return res, err
	}

	detail, err := s.getDetail(ctx, visibleByID(id, actor.Role, actor.UserID))
	if err != nil {
		return res, err
	}

	if detail.ID == 0 {
		return res, failure.NotFound(msgNotFound)
	}

	if detail.Status == model.StatusPending {
		return res, failure.BadRequestFromString(msgRemovePending)
	}

	now := s.clock.Now()
	flags := map[string]any{constant.FieldUpdatedAt: now}

	if actor.IsAdmin() {
		flags[model.FieldIsDeletedAdmin] = true
		flags[model.FieldDeletedBy] = actor.UserID
		flags[model.FieldDeletedAt] = now
	} else {
		flags[model.FieldIsDeletedUser] = true
	}

	erased, err := s.repo.Remove(ctx, id, flags)
	if err != nil {
		log.Error().Err(err).Msg("failed to remove booking")

		return res, fmt.Errorf("failed to remove booking: %w", err)
	}

	if erased {
		s.record(ctx, dto.EventErased, metrics.BookingActionErased, detail.Booking, actor)

		return dto.RemoveBookingResponse{Erased: true, Message: msgErased}, nil
	}

	s.record(ctx, dto.EventRemoved, metrics.BookingActionRemoved, detail.Booking, actor)

	return dto.RemoveBookingResponse{Message: "Booking deleted by " + actor.Role}, nil
}

func (s *serviceImpl) getDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error) {
	detail, err := s.repo.GetDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return detail, fmt.Errorf("failed to get booking: %w", err)
	}

	return detail, nil
}

// record counts the transition and publishes it keyed by room so consumers
// see each room's events in order. Publish failures are logged only.
func (s *serviceImpl) record(ctx context.Context, eventType, action string, booking model.Booking, actor dto.Actor) {
	metrics.RecordBookingTransition(action, actor.Role)

	message := kafka.Message{
		Key:   strconv.FormatInt(booking.RoomID, 10),
		Value: dto.NewBookingEvent(eventType, booking, actor, s.clock.Now()),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.producer.Publish(c, s.cfg.Kafka.Topic.Booking, message); err != nil {
			log.Error().Err(err).Int64("bookingId", booking.ID).Str("event", eventType).Msg("failed to publish booking event")
		}
	}()
}
