package user

import (
	"net/http"
	"roomly/infras/otel"
	"roomly/internal/domains/user/model/dto"
	"roomly/internal/domains/user/service"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/validator"
	"roomly/transport/http/request"
	"roomly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", handler.CreateUser)
		r.Get("/", handler.GetUsers)
		r.Get("/{id}", handler.GetUserByID)
		r.Patch("/{id}", handler.UpdateUser)
		r.Delete("/{id}", handler.DeleteUser)
		r.Post("/{id}/avatar", handler.UploadAvatar)
	})
}

// CreateUser creates a user account.
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Envelope[dto.UserResponse]
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	req := dto.CreateUserRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, "Create user successfully", user)
}

// GetUsers lists users ordered by id.
// @Summary Get users
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param keyword query string false "Matches name, email or phone"
// @Success 200 {object} response.Envelope[dto.GetUsersResponse]
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	query := dto.ListUsersQuery{}
	query.FromRequest(r)

	users, err := handler.service.GetAll(ctx, params, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Get users successfully", users)
}

// GetUserByID retrieves a user by their ID.
// @Summary Get a user by ID
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope[dto.UserResponse]
// @Failure 404 {object} response.Message
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	user, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Get user successfully", user)
}

// UpdateUser updates an existing user by their ID.
// @Summary Update a user by ID
// @Description Email cannot be changed. A new password is re-hashed.
// @Tags User
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Success 200 {object} response.Envelope[dto.UserResponse]
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateUserRequest{}
	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Update user successfully", user)
}

// DeleteUser soft deletes a user by their ID.
// @Summary Delete a user by ID
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User deleted successfully")

	response.WithMessage(w, http.StatusOK, "Delete user successfully")
}

// UploadAvatar stores a new avatar image for the user.
// @Summary Upload avatar
// @Tags User
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UploadAvatarRequest true "Avatar as a base64 data URI"
// @Success 200 {object} response.Envelope[dto.UserResponse]
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Router /v1/users/{id}/avatar [post]
// @Security BearerAuth
func (handler *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadAvatar")
	defer scope.End()

	id, err := request.ID(r, constant.RequestParamID)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UploadAvatarRequest{}
	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.UploadAvatar(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload avatar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, "Upload avatar successfully", user)
}
