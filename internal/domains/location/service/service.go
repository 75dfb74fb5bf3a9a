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
	"roomly/internal/domains/location/model"
	"roomly/internal/domains/location/model/dto"
	"roomly/internal/domains/location/repository"
	"roomly/shared"
	"roomly/shared/cache"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	"roomly/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Location interface {
	Create(ctx context.Context, req dto.CreateLocationRequest) (dto.LocationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListLocationsQuery) (dto.GetLocationsResponse, error)
	Get(ctx context.Context, id int64) (dto.LocationResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateLocationRequest) (dto.LocationResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Location
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Location, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Location {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func notFound(id int64) error {
	return failure.NotFound(fmt.Sprintf("Location with ID %d not found", id))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLocationRequest) (res dto.LocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return res, err
	}

	location := req.ToModel(imageURL)

	location.ID, err = s.repo.InsertReturningID(ctx, location)
	if err != nil {
		log.Error().Err(err).Msg("failed to create location")
		s.discardImage(ctx, imageURL)

		return res, fmt.Errorf("failed to create location: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CacheLocationGetAll)
		shared.InvalidateCaches(c, s.cache, constant.CacheLocationCount)
	}()

	res.FromModel(location)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListLocationsQuery) (res dto.GetLocationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if params.SortBy == "" {
		params.SortBy = model.TableName + "." + constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	filter := query.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheLocationGetAll, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for locations")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count locations")

		return res, fmt.Errorf("failed to count locations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get locations")

		return res, fmt.Errorf("failed to get locations: %w", err)
	}

	res.FromModels(models, total, params)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save locations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheLocationCount, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for location count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count locations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save location count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.LocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheLocationGet, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for location")

		return res, nil
	}

	location, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(location)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save location to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateLocationRequest) (res dto.LocationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req)
	if imageURL != nil {
		updatedFields[model.FieldImage] = *imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update location")
		s.discardImage(ctx, imageURL)

		return res, fmt.Errorf("failed to update location: %w", err)
	}

	if imageURL != nil {
		s.discardImage(ctx, current.Image)
	}

	s.invalidate(ctx, id)

	updated, err := s.getActive(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterActiveByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if location exists")

		return fmt.Errorf("failed to check if location exists: %w", err)
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
		log.Error().Err(err).Msg("failed to delete location")

		return fmt.Errorf("failed to delete location: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) getActive(ctx context.Context, id int64) (model.Location, error) {
	location, err := s.repo.Get(ctx, shared.FilterActiveByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get location")

		return location, fmt.Errorf("failed to get location: %w", err)
	}

	if location.ID == 0 {
		return location, notFound(id)
	}

	return location, nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, image *multipart.FileHeader) (*string, error) {
	if image == nil {
		return nil, nil
	}

	url, err := s.s3.UploadFile(ctx, s3.DirectoryLocations, image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload location image")

		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &url, nil
}

func (s *serviceImpl) discardImage(ctx context.Context, url *string) {
	if url == nil || *url == "" {
		return
	}

	if err := s.s3.DeleteFileByURL(ctx, *url); err != nil {
		log.Error().Err(err).Str("url", *url).Msg("failed to delete location image")
	}
}

// invalidate also drops room caches because room responses embed the location.
func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheLocationGet, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete location from cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheLocationGetAll)
		shared.InvalidateCaches(c, s.cache, constant.CacheLocationCount)
		shared.InvalidateCaches(c, s.cache, constant.CacheRoomGet)
		shared.InvalidateCaches(c, s.cache, constant.CacheRoomGetAll)
	}()
}
