package location

import (
	"net/http"
	"roomly/infras/otel"
	"roomly/internal/domains/location/model/dto"
	"roomly/internal/domains/location/service"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/validator"
	"roomly/transport/http/request"
	"roomly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Location
	otel    otel.Otel
}

func New(service service.Location, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/locations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLocation)
		routerGroup.Get("/", handler.GetLocations)
		routerGroup.Get("/{id}", handler.GetLocationByID)
		routerGroup.Patch("/{id}", handler.UpdateLocation)
		routerGroup.Delete("/{id}", handler.DeleteLocation)
	})
}

// CreateLocation handles the creation of a new location.
// @Summary Create a location
// @Tags Location
// @Accept multipart/form-data
// @Produce json
// @Param location_name formData string true "Location name"
// @Param province formData string false "Province"
// @Param country formData string false "Country"
// @Param image formData file false "Location image"
// @Success 201 {object} response.Envelope[dto.LocationResponse]
// @Failure 400 {object} response.Message
// @Router /v1/locations [post]
// @Security BearerAuth
func (handler *Handler) CreateLocation(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLocation")
	defer scope.End()

	if err := request.MultipartForm(r); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateLocationRequest{}
	req.FromForm(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	location, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create location")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, "Create location successfully", location)
}

// GetLocations lists locations, newest first.
// @Summary Get locations
// @Tags Location
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param keyword query string false "Matches name, province or country"
// @Success 200 {object} response.Envelope[dto.GetLocationsResponse]
// @Router /v1/locations [get]
func (handler *Handler) GetLocations(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocations")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	query := dto.ListLocationsQuery{}
	query.FromRequest(r)

	locations, err := handler.service.GetAll(ctx, params, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get locations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, "Get locations successfully", locations)
}

// GetLocationByID retrieves a location.
// @Summary Get a location by ID
// @Tags Location
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} response.Envelope[dto.LocationResponse]
// @Failure 404 {object} response.Message
// @Router /v1/locations/{id} [get]
func (handler *Handler) GetLocationByID(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocationByID")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	location, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get location")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, "Get location successfully", location)
}

// UpdateLocation changes the fields that were sent.
// @Summary Update a location
// @Tags Location
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Location ID"
// @Param location_name formData string false "Location name"
// @Param province formData string false "Province"
// @Param country formData string false "Country"
// @Param image formData file false "Location image"
// @Success 200 {object} response.Envelope[dto.LocationResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/locations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateLocation(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLocation")
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

	req := dto.UpdateLocationRequest{}
	req.FromForm(r)

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	location, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update location")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, "Update location successfully", location)
}

// DeleteLocation soft deletes a location.
// @Summary Delete a location
// @Tags Location
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/locations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLocation(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLocation")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete location")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Delete location successfully")
}
