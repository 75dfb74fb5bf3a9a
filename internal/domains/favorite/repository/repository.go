package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"roomly/infras/otel"
	"roomly/infras/postgres"
	"roomly/internal/domains/favorite/model"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	gRepo "roomly/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Favorite interface {
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.FavoriteDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Toggle(ctx context.Context, favorite model.Favorite) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Favorite]
	details gRepo.Repository[model.FavoriteDetail]
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Favorite {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Favorite](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.FavoriteDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.FavoriteDetail, error) {
	return r.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.details.Count(ctx, filter) //nolint:wrapcheck
}

// Toggle removes the pair when it is already a favorite and adds it otherwise.
// It reports whether the room is a favorite afterwards.
func (r *repositoryImpl) Toggle(ctx context.Context, favorite model.Favorite) (isFavorite bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".favorite.Toggle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := model.ByUser(favorite.UserID, &favorite.RoomID)

	err = r.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		exist, existErr := r.ExistTx(ctx, sqltx, filter)
		if existErr != nil {
			return existErr
		}

		if exist {
			return r.DeleteTx(ctx, sqltx, filter)
		}

		isFavorite = true

		return r.InsertTx(ctx, sqltx, favorite)
	})

	// A concurrent toggle inserted the same pair first.
	if gRepo.IsPqErrorCode(err, constant.PqErrorCodeUniqueViolation) {
		return true, nil
	}

	if err != nil {
		return false, err
	}

	return isFavorite, nil
}
