package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"roomly/infras/otel"
	"roomly/infras/postgres"
	"roomly/internal/domains/location/model"
	gDto "roomly/shared/dto"
	gRepo "roomly/shared/repository"
)

type Location interface {
	InsertReturningID(ctx context.Context, location model.Location) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Location, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Location, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Location]
}

func New(db *postgres.Connection, otel otel.Otel) Location {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Location](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
