package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roomly/infras/otel"
	"roomly/infras/s3"
	"roomly/internal/domains/user/model"
	"roomly/internal/domains/user/model/dto"
	"roomly/internal/domains/user/repository"
	"roomly/shared"
	"roomly/shared/base64"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	"roomly/shared/password"
	"roomly/shared/timezone"

	"github.com/rs/zerolog/log"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListUsersQuery) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id int64) (dto.UserResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateUserRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, id int64) error
	UploadAvatar(ctx context.Context, id int64, req dto.UploadAvatarRequest) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo repository.User
	otel otel.Otel
	s3   s3.S3
}

func New(repo repository.User, otel otel.Otel, s3 s3.S3) User {
	return &serviceImpl{
		repo: repo,
		otel: otel,
		s3:   s3,
	}
}

func notFound(id int64) error {
	return failure.NotFound(fmt.Sprintf("User with id %d not found", id))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	emailFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Email,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if email exists")

		return res, fmt.Errorf("failed to check if email exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("Email already exists")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(hashedPassword)

	user.ID, err = s.repo.InsertReturningID(ctx, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListUsersQuery) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if params.SortBy == "" {
		params.SortBy = model.FieldID
		params.SortDir = gDto.SortDirAsc
	}

	filter := query.ToFilter()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, params)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateUserRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Email != nil && *req.Email != current.Email {
		return res, failure.BadRequestFromString("Email cannot be updated")
	}

	if req.Password != nil {
		hashedPassword, err := password.Hash(*req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		req.Password = &hashedPassword
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterActiveByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return notFound(id)
	}

	actorID, _ := shared.ActorFromContext(ctx)
	now := timezone.Now()

	softDelete := map[string]any{
		constant.FieldIsDeleted: true,
		constant.FieldDeletedBy: actorID,
		constant.FieldDeletedAt: now,
		constant.FieldUpdatedAt: now,
	}

	if err = s.repo.Update(ctx, softDelete, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *serviceImpl) UploadAvatar(ctx context.Context, id int64, req dto.UploadAvatarRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadAvatar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actorID, role := shared.ActorFromContext(ctx)
	if role != constant.RoleAdmin && actorID != id {
		return res, failure.Forbidden("You cannot change the avatar of other users")
	}

	current, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	contentType, data, err := base64.Decode(req.Avatar)
	if err != nil {
		return res, failure.BadRequestFromString("avatar must be a base64 data uri")
	}

	url, err := s.s3.UploadFileBytes(ctx, s3.DirectoryAvatars, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload avatar")

		return res, fmt.Errorf("failed to upload avatar: %w", err)
	}

	updated := map[string]any{
		model.FieldAvatar:       url,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save avatar")

		if delErr := s.s3.DeleteFileByURL(ctx, url); delErr != nil {
			log.Error().Err(delErr).Msg("failed to remove orphaned avatar")
		}

		return res, fmt.Errorf("failed to save avatar: %w", err)
	}

	if current.Avatar != nil && *current.Avatar != "" {
		if delErr := s.s3.DeleteFileByURL(ctx, *current.Avatar); delErr != nil {
			log.Error().Err(delErr).Msg("failed to remove previous avatar")
		}
	}

	current.Avatar = &url
	res.FromModel(current)

	return res, nil
}

func (s *serviceImpl) getActive(ctx context.Context, id int64) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterActiveByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return user, notFound(id)
	}

	return user, nil
}
