package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roomly/infras/otel"
	"roomly/internal/domains/comment/model"
	"roomly/internal/domains/comment/model/dto"
	"roomly/internal/domains/comment/repository"
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

const msgNotOwner = "You cannot modify comments of other users"

type Comment interface {
	Create(ctx context.Context, req dto.CreateCommentRequest) (dto.CommentResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListCommentsQuery) (dto.GetCommentsResponse, error)
	GetByRoom(ctx context.Context, roomID int64) ([]dto.RoomCommentResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateCommentRequest) (dto.CommentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo     repository.Comment
	userRepo userRepo.User
	roomRepo roomRepo.Room
	otel     otel.Otel
	clock    timezone.Clock
}

func New(repo repository.Comment, userRepo userRepo.User, roomRepo roomRepo.Room, otel otel.Otel, clock timezone.Clock) Comment {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		roomRepo: roomRepo,
		otel:     otel,
		clock:    clock,
	}
}

func notFound(id int64) error {
	return failure.NotFound(fmt.Sprintf("Comment with ID %d not found", id))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCommentRequest) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actorID, role := shared.ActorFromContext(ctx)
	authorID := req.AuthorID(actorID, role)

	user, err := s.userRepo.Get(ctx, shared.FilterActiveByID(authorID, userModel.FieldID, userModel.TableName),
		userModel.FieldID, userModel.FieldName, userModel.FieldAvatar)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comment author")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("User with id %d not found", authorID))
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterActiveByID(req.RoomID, roomModel.FieldID, roomModel.TableName),
		roomModel.FieldID, roomModel.FieldRoomName, roomModel.FieldImage)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comment room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("Room with id %d not found", req.RoomID))
	}

	comment, err := req.ToModel(user.ID, s.clock.Now())
	if err != nil {
		return res, err
	}

	comment.ID, err = s.repo.InsertReturningID(ctx, comment)
	if err != nil {
		log.Error().Err(err).Msg("failed to create comment")

		return res, fmt.Errorf("failed to create comment: %w", err)
	}

	res.FromModel(model.CommentDetail{
		Comment:    comment,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		RoomName:   room.RoomName,
		RoomImage:  room.Image,
	})

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, query dto.ListCommentsQuery) (res dto.GetCommentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if params.SortBy == "" {
		params.SortBy = model.TableName + "." + constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	filter := query.ToFilter()

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count comments")

		return res, fmt.Errorf("failed to count comments: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comments")

		return res, fmt.Errorf("failed to get comments: %w", err)
	}

	res.FromModels(models, total, params)

	return res, nil
}

func (s *serviceImpl) GetByRoom(ctx context.Context, roomID int64) (res []dto.RoomCommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.roomRepo.Exist(ctx, shared.FilterActiveByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(fmt.Sprintf("Room with ID %d not found", roomID))
	}

	newest := gDto.QueryParams{
		SortBy:  model.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	models, err := s.repo.GetAllDetail(ctx, newest, dto.ByRoom(roomID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room comments")

		return res, fmt.Errorf("failed to get room comments: %w", err)
	}

	return dto.RoomCommentsFromModels(models), nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateCommentRequest) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureOwned(ctx, id, filter); err != nil {
		return res, err
	}

	fields, err := req.UpdatedFields(s.clock.Now())
	if err != nil {
		return res, err
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update comment")

		return res, fmt.Errorf("failed to update comment: %w", err)
	}

	detail, err := s.repo.GetDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comment")

		return res, fmt.Errorf("failed to get comment: %w", err)
	}

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureOwned(ctx, id, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete comment")

		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// ensureOwned lets admins touch any comment and users only their own.
func (s *serviceImpl) ensureOwned(ctx context.Context, id int64, filter gDto.FilterGroup) error {
	comment, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldUserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comment")

		return fmt.Errorf("failed to get comment: %w", err)
	}

	if comment.ID == 0 {
		return notFound(id)
	}

	actorID, role := shared.ActorFromContext(ctx)
	if role != constant.RoleAdmin && comment.UserID != actorID {
		return failure.Forbidden(msgNotOwner)
	}

	return nil
}
