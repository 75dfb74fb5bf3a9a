package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"

	"roomly/config"
	"roomly/infras/otel"
	"roomly/infras/s3"
	locationModel "roomly/internal/domains/location/model"
	locationRepo "roomly/internal/domains/location/repository"
	"roomly/internal/domains/room/model"
	"roomly/internal/domains/room/model/dto"
	"roomly/internal/domains/room/repository"
	"roomly/shared"
	"roomly/shared/cache"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	"roomly/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListRoomsQuery) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo         repository.Room
	locationRepo locationRepo.Location
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	s3           s3.S3
}

func New(repo repository.Room, locationRepo locationRepo.Location, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:         repo,
		locationRepo: locationRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		s3:           s3,
	}
}

func notFound(id int64) error {
	return failure.NotFound(fmt.Sprintf("Room with ID %d not found", id))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLocation(ctx, req.LocationID); err != nil {
		return res, err
	}

	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return res, err
	}

	id, err := s.repo.InsertReturningID(ctx, req.ToModel(imageURL))
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")
		s.discardImage(ctx, imageURL)

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CacheRoomGetAll)
		shared.InvalidateCaches(c, s.cache, constant.CacheRoomCount)
	}()

	room, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListRoomsQuery) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if params.SortBy == "" {
		params.SortBy = model.TableName + "." + model.FieldID
		params.SortDir = gDto.SortDirAsc
	}

	filter := query.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheRoomGetAll, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, params)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheRoomCount, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheRoomGet, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	if req.LocationID != nil && *req.LocationID != current.LocationID {
		if err = s.ensureLocation(ctx, *req.LocationID); err != nil {
			return res, err
		}
	}

	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return res, err
	}

	updatedFields := req.UpdatedFields()
	if imageURL != nil {
		updatedFields[model.FieldImage] = *imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")
		s.discardImage(ctx, imageURL)

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	if imageURL != nil {
		s.discardImage(ctx, current.Image)
	}

	s.invalidate(ctx, id)

	room, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterActiveByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
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
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ensureLocation(ctx context.Context, locationID int64) error {
	exist, err := s.locationRepo.Exist(ctx, shared.FilterActiveByID(locationID, locationModel.FieldID, locationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if location exists")

		return fmt.Errorf("failed to check if location exists: %w", err)
	}

	if !exist {
		return failure.NotFound(fmt.Sprintf("Location with ID %d not found", locationID))
	}

	return nil
}

func (s *serviceImpl) getActive(ctx context.Context, id int64) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterActiveByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return room, notFound(id)
	}

	return room, nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, image *multipart.FileHeader) (*string, error) {
	if image == nil {
		return nil, nil
	}

	url, err := s.s3.UploadFile(ctx, s3.DirectoryRooms, image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &url, nil
}

func (s *serviceImpl) discardImage(ctx context.Context, url *string) {
	if url == nil || *url == "" {
		return
	}

	if err := s.s3.DeleteFileByURL(ctx, *url); err != nil {
		log.Error().Err(err).Str("url", *url).Msg("failed to delete room image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheRoomGet, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheRoomGetAll)
		shared.InvalidateCaches(c, s.cache, constant.CacheRoomCount)
	}()
}
