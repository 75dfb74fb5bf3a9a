package booking

import (
	"context"
	"fmt"
	"net/http"
	"roomly/infras/otel"
	"roomly/internal/domains/booking/model/dto"
	"roomly/internal/domains/booking/service"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/validator"
	"roomly/transport/http/request"
	"roomly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/confirm", handler.ConfirmBooking)
		routerGroup.Patch("/{id}/cancel", handler.CancelBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

func actorFrom(ctx context.Context) dto.Actor {
	userID, role := shared.ActorFromContext(ctx)

	return dto.Actor{UserID: userID, Role: role}
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book a room for a period. Admins may book on behalf of another user.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Envelope[dto.BookingResponse] "Create booking successfully"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 409 {object} response.Message
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	actor := actorFrom(ctx)

	booking, err := handler.service.Create(ctx, actor, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent(fmt.Sprintf("Booking %d created by user %d", booking.ID, actor.UserID))

	response.WithJSON(w, http.StatusCreated, "Create booking successfully", booking)
}

// GetBookings lists the bookings visible to the caller.
// @Summary Get bookings
// @Description Admins see every booking they have not removed; users see only their own.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "PENDING, CONFIRMED or CANCELLED"
// @Param keyword query string false "Matches room name or location name"
// @Param user_id query integer false "Admin only: narrow to one user"
// @Success 200 {object} response.Envelope[dto.GetBookingsResponse] "Get bookings successfully"
// @Failure 400 {object} response.Message
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	query := dto.ListBookingsQuery{}
	if err := query.FromRequest(r); err != nil {
		response.WithError(w, err)

		return
	}

	if err := validator.ValidateStruct(&query); err != nil {
		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, actorFrom(ctx), params, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Get bookings successfully", bookings)
}

// GetBookingByID retrieves one booking visible to the caller.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Envelope[dto.BookingResponse]
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Get(ctx, actorFrom(ctx), id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, fmt.Sprintf("Get booking #%d successfully", id), booking)
}

// ConfirmBooking moves a pending booking to confirmed.
// @Summary Confirm a booking
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Envelope[dto.BookingResponse] "Booking confirmed"
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id}/confirm [patch]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Confirm(ctx, actorFrom(ctx), id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Booking confirmed", booking)
}

// CancelBooking cancels a pending or confirmed booking before check-in day.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.CancelBookingRequest false "Optional reason"
// @Success 200 {object} response.Envelope[dto.BookingResponse] "Booking canceled successfully"
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CancelBookingRequest{}

	// the body is optional
	if r.ContentLength != 0 {
		if err = validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	booking, err := handler.service.Cancel(ctx, actorFrom(ctx), id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Booking canceled successfully", booking)
}

// DeleteBooking hides a finished booking from the caller's side.
// @Summary Delete a booking
// @Description Sets the caller role's delete flag. Once both sides have deleted, the booking is erased.
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Envelope[dto.RemoveBookingResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Remove(ctx, actorFrom(ctx), id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res.Message, res)
}
