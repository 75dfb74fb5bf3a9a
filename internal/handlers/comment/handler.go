package comment

import (
	"net/http"
	"roomly/infras/otel"
	"roomly/internal/domains/comment/model/dto"
	"roomly/internal/domains/comment/service"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/validator"
	"roomly/transport/http/request"
	"roomly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Comment
	otel    otel.Otel
}

func New(service service.Comment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/comments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateComment)
		routerGroup.Get("/", handler.GetComments)
		routerGroup.Get("/room/{roomId}", handler.GetCommentsByRoom)
		routerGroup.Patch("/{id}", handler.UpdateComment)
		routerGroup.Delete("/{id}", handler.DeleteComment)
	})
}

// CreateComment handles posting a review on a room.
// @Summary Create a comment
// @Description Users comment as themselves; admins may set user_id.
// @Tags Comment
// @Accept json
// @Produce json
// @Param request body dto.CreateCommentRequest true "Create Comment Request"
// @Success 201 {object} response.Envelope[dto.CommentResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/comments [post]
// @Security BearerAuth
func (handler *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateComment")
	defer scope.End()

	req := dto.CreateCommentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	comment, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create comment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, "Create comment successfully", comment)
}

// GetComments lists comments.
// @Summary Get comments
// @Tags Comment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param keyword query string false "Matches comment content"
// @Param room_id query integer false "Filter by room"
// @Param user_id query integer false "Filter by author"
// @Success 200 {object} response.Envelope[dto.GetCommentsResponse]
// @Failure 400 {object} response.Message
// @Router /v1/comments [get]
func (handler *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComments")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	query := dto.ListCommentsQuery{}
	if err := query.FromRequest(r); err != nil {
		response.WithError(w, err)

		return
	}

	comments, err := handler.service.GetAll(ctx, params, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get comments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Get comments successfully", comments)
}

// GetCommentsByRoom returns every comment on a room, newest first.
// @Summary Get comments of a room
// @Tags Comment
// @Produce json
// @Param roomId path int true "Room ID"
// @Success 200 {object} response.Envelope[[]dto.RoomCommentResponse]
// @Failure 400 {object} response.Message
// @Router /v1/comments/room/{roomId} [get]
func (handler *Handler) GetCommentsByRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCommentsByRoom")
	defer scope.End()

	roomID, err := request.ID(r, constant.RequestParamRoomID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	comments, err := handler.service.GetByRoom(ctx, roomID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room comments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Get comments successfully", comments)
}

// UpdateComment edits a comment. Only the author or an admin may do this.
// @Summary Update a comment
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body dto.UpdateCommentRequest true "Update Comment Request"
// @Success 200 {object} response.Envelope[dto.CommentResponse]
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/comments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateComment")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateCommentRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	comment, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update comment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Update comment successfully", comment)
}

// DeleteComment removes a comment. Only the author or an admin may do this.
// @Summary Delete a comment
// @Tags Comment
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/comments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteComment")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete comment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Delete comment successfully")
}
