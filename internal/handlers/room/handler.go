package room

import (
	"net/http"
	"roomly/infras/otel"
	"roomly/internal/domains/room/model/dto"
	"roomly/internal/domains/room/service"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/validator"
	"roomly/transport/http/request"
	"roomly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room in an existing location. Amenities are booleans.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param room_name formData string true "Room name"
// @Param location_id formData integer true "Location ID"
// @Param guest_count formData integer false "Guest capacity"
// @Param bedroom_count formData integer false "Bedrooms"
// @Param bed_count formData integer false "Beds"
// @Param bathroom_count formData integer false "Bathrooms"
// @Param price formData integer false "Price per night"
// @Param description formData string false "Description"
// @Param wifi formData boolean false "Wifi"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Envelope[dto.RoomResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := request.MultipartForm(r); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRoomRequest{}

	if err := req.FromForm(r); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created")

	response.WithJSON(writer, http.StatusCreated, "Create room successfully", room)
}

// GetRooms lists rooms with optional filters.
// @Summary Get all rooms
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param keyword query string false "Matches room name or description"
// @Param location_id query integer false "Filter by location"
// @Param guest_count query integer false "Minimum guest capacity"
// @Success 200 {object} response.Envelope[dto.GetRoomsResponse]
// @Failure 400 {object} response.Message
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	query := dto.ListRoomsQuery{}
	if err := query.FromRequest(r); err != nil {
		response.WithError(writer, err)

		return
	}

	rooms, err := handler.service.GetAll(ctx, params, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, "Get rooms successfully", rooms)
}

// GetRoomByID retrieves a room with its location.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Envelope[dto.RoomResponse]
// @Failure 404 {object} response.Message
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, "Get room successfully", room)
}

// UpdateRoom changes the fields that were sent.
// @Summary Update a room
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Room ID"
// @Param room_name formData string false "Room name"
// @Param location_id formData integer false "Location ID"
// @Param price formData integer false "Price per night"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Envelope[dto.RoomResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err = request.MultipartForm(r); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateRoomRequest{}

	if err = req.FromForm(r); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, "Update room successfully", room)
}

// DeleteRoom soft deletes a room.
// @Summary Delete a room
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Delete room successfully")
}
