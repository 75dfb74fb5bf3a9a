package favorite

import (
	"net/http"
	"roomly/infras/otel"
	"roomly/internal/domains/favorite/model/dto"
	"roomly/internal/domains/favorite/service"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/validator"
	"roomly/transport/http/request"
	"roomly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Favorite
	otel    otel.Otel
}

func New(service service.Favorite, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/favorites", func(routerGroup chi.Router) {
		routerGroup.Post("/toggle", handler.ToggleFavorite)
		routerGroup.Get("/user/{userId}", handler.GetFavoritesByUser)
		routerGroup.Get("/user/{userId}/room/{roomId}", handler.GetFavoriteStatus)
	})
}

// ToggleFavorite adds the room to favorites, or removes it if already there.
// @Summary Toggle a favorite room
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body dto.ToggleFavoriteRequest true "Toggle Favorite Request"
// @Success 200 {object} response.Envelope[dto.ToggleFavoriteResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/favorites/toggle [post]
// @Security BearerAuth
func (handler *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleFavorite")
	defer scope.End()

	req := dto.ToggleFavoriteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Toggle(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle favorite")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res.Message, res)
}

// GetFavoritesByUser lists a user's favorite rooms.
// @Summary Get favorites of a user
// @Tags Favorite
// @Produce json
// @Param userId path int true "User ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[dto.GetFavoritesResponse]
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/favorites/user/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetFavoritesByUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavoritesByUser")
	defer scope.End()

	userID, err := request.ID(r, constant.RequestParamUserID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	favorites, err := handler.service.GetByUser(ctx, userID, params)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Get favorites successfully", favorites)
}

// GetFavoriteStatus tells whether a room is in the user's favorites.
// @Summary Check a favorite
// @Tags Favorite
// @Produce json
// @Param userId path int true "User ID"
// @Param roomId path int true "Room ID"
// @Success 200 {object} response.Envelope[dto.FavoriteStatusResponse]
// @Failure 403 {object} response.Message
// @Router /v1/favorites/user/{userId}/room/{roomId} [get]
// @Security BearerAuth
func (handler *Handler) GetFavoriteStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavoriteStatus")
	defer scope.End()

	userID, err := request.ID(r, constant.RequestParamUserID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	roomID, err := request.ID(r, constant.RequestParamRoomID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	status, err := handler.service.GetByUserAndRoom(ctx, userID, roomID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorite status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Get favorite status successfully", status)
}
