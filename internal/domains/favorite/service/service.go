package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roomly/infras/otel"
	"roomly/internal/domains/favorite/model"
	"roomly/internal/domains/favorite/model/dto"
	"roomly/internal/domains/favorite/repository"
	roomModel "roomly/internal/domains/room/model"
	roomRepo "roomly/internal/domains/room/repository"
	userModel "roomly/internal/domains/user/model"
	userRepo "roomly/internal/domains/user/repository"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	"roomly/shared/timezone"

	"github.com/rs/zerolog/log"
)

const msgOtherUser = "You cannot access favorites of other users"

type Favorite interface {
	Toggle(ctx context.Context, req dto.ToggleFavoriteRequest) (dto.ToggleFavoriteResponse, error)
	GetByUser(ctx context.Context, userID int64, params gDto.QueryParams) (dto.GetFavoritesResponse, error)
	GetByUserAndRoom(ctx context.Context, userID, roomID int64) (dto.FavoriteStatusResponse, error)
}

type serviceImpl struct {
	repo     repository.Favorite
	userRepo userRepo.User
	roomRepo roomRepo.Room
	otel     otel.Otel
	clock    timezone.Clock
}

func New(repo repository.Favorite, userRepo userRepo.User, roomRepo roomRepo.Room, otel otel.Otel, clock timezone.Clock) Favorite {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		roomRepo: roomRepo,
		otel:     otel,
		clock:    clock,
	}
}

func (s *serviceImpl) Toggle(ctx context.Context, req dto.ToggleFavoriteRequest) (res dto.ToggleFavoriteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Toggle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actorID, role := shared.ActorFromContext(ctx)
	userID := req.OwnerID(actorID, role)

	if err = s.ensureUser(ctx, userID); err != nil {
		return res, err
	}

	if err = s.ensureRoom(ctx, req.RoomID); err != nil {
		return res, err
	}

	isFavorite, err := s.repo.Toggle(ctx, req.ToModel(userID, s.clock.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to toggle favorite")

		return res, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return dto.NewToggleFavoriteResponse(isFavorite), nil
}

func (s *serviceImpl) GetByUser(ctx context.Context, userID int64, params gDto.QueryParams) (res dto.GetFavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = authorize(ctx, userID); err != nil {
		return res, err
	}

	if err = s.ensureUser(ctx, userID); err != nil {
		return res, err
	}

	params.SortBy = model.TableName + "." + model.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc

	filter := model.ByUser(userID, nil)

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count favorites")

		return res, fmt.Errorf("failed to count favorites: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorites")

		return res, fmt.Errorf("failed to get favorites: %w", err)
	}

	res.FromModels(models, total, params)

	return res, nil
}

func (s *serviceImpl) GetByUserAndRoom(ctx context.Context, userID, roomID int64) (res dto.FavoriteStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUserAndRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = authorize(ctx, userID); err != nil {
		return res, err
	}

	if err = s.ensureUser(ctx, userID); err != nil {
		return res, err
	}

	if err = s.ensureRoom(ctx, roomID); err != nil {
		return res, err
	}

	isFavorite, err := s.repo.Exist(ctx, model.ByUser(userID, &roomID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check favorite")

		return res, fmt.Errorf("failed to check favorite: %w", err)
	}

	return dto.FavoriteStatusResponse{UserID: userID, RoomID: roomID, IsFavorite: isFavorite}, nil
}

func authorize(ctx context.Context, userID int64) error {
	actorID, role := shared.ActorFromContext(ctx)
	if role != constant.RoleAdmin && actorID != userID {
		return failure.Forbidden(msgOtherUser)
	}

	return nil
}

func (s *serviceImpl) ensureUser(ctx context.Context, id int64) error {
	exist, err := s.userRepo.Exist(ctx, shared.FilterActiveByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound(fmt.Sprintf("User with id %d not found", id))
	}

	return nil
}

func (s *serviceImpl) ensureRoom(ctx context.Context, id int64) error {
	exist, err := s.roomRepo.Exist(ctx, shared.FilterActiveByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound(fmt.Sprintf("Room with id %d not found", id))
	}

	return nil
}
