package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"roomly/infras/otel"
	"roomly/infras/postgres"
	"roomly/internal/domains/comment/model"
	gDto "roomly/shared/dto"
	gRepo "roomly/shared/repository"
)

type Comment interface {
	InsertReturningID(ctx context.Context, comment model.Comment) (int64, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Comment, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.CommentDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.CommentDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Comment]
	details gRepo.Repository[model.CommentDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Comment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Comment](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.CommentDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.CommentDetail, error) {
	return r.details.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.CommentDetail, error) {
	return r.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.details.Count(ctx, filter) //nolint:wrapcheck
}
