package dto

import (
	"errors"
	"net/http"
	"roomly/internal/domains/comment/model"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	gModel "roomly/shared/model"
	"roomly/shared/timezone"
	"strings"
	"time"
)

const (
	RequestParamRoomID = "room_id"
	RequestParamUserID = "user_id"

	unknownAuthor = "Unknown"
)

var errInvalidCommentDate = errors.New("comment_date must be an RFC 3339 timestamp")

func parseCommentDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*value))
	if err != nil {
		return nil, errInvalidCommentDate
	}

	return &parsed, nil
}

type CreateCommentRequest struct {
	Content     string  `json:"content"                validate:"required,max=2000"`
	Rating      int     `json:"rating"                 validate:"required,min=1,max=5"`
	UserID      *int64  `json:"user_id,omitempty"      validate:"omitempty,gt=0"`
	RoomID      int64   `json:"room_id"                validate:"required,gt=0"`
	CommentDate *string `json:"comment_date,omitempty"`
}

// AuthorID resolves who the comment is written as. Users always write as
// themselves; admins may write on behalf of another user.
func (r *CreateCommentRequest) AuthorID(actorID int64, role string) int64 {
	if role == constant.RoleAdmin && r.UserID != nil {
		return *r.UserID
	}

	return actorID
}

// ToModel defaults comment_date to now.
func (r *CreateCommentRequest) ToModel(userID int64, now time.Time) (model.Comment, error) {
	commentDate, err := parseCommentDate(r.CommentDate)
	if err != nil {
		return model.Comment{}, failure.BadRequest(err)
	}

	if commentDate == nil {
		commentDate = &now
	}

	return model.Comment{
		UserID:      userID,
		RoomID:      r.RoomID,
		CommentDate: *commentDate,
		Content:     strings.TrimSpace(r.Content),
		Rating:      r.Rating,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

type UpdateCommentRequest struct {
	Content     *string `json:"content,omitempty"      validate:"omitempty,min=1,max=2000"`
	Rating      *int    `json:"rating,omitempty"       validate:"omitempty,min=1,max=5"`
	CommentDate *string `json:"comment_date,omitempty"`
}

func (r *UpdateCommentRequest) IsEmpty() bool {
	return r.Content == nil && r.Rating == nil && r.CommentDate == nil
}

func (r *UpdateCommentRequest) UpdatedFields(now time.Time) (map[string]any, error) {
	fields := map[string]any{constant.FieldUpdatedAt: now}

	if r.Content != nil {
		fields[model.FieldContent] = strings.TrimSpace(*r.Content)
	}

	if r.Rating != nil {
		fields[model.FieldRating] = *r.Rating
	}

	commentDate, err := parseCommentDate(r.CommentDate)
	if err != nil {
		return nil, failure.BadRequest(err)
	}

	if commentDate != nil {
		fields[model.FieldCommentDate] = *commentDate
	}

	return fields, nil
}

type CommentUser struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

type CommentRoom struct {
	ID       int64   `json:"id"`
	RoomName string  `json:"room_name"`
	Image    *string `json:"image"`
}

type CommentResponse struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	RoomID      int64       `json:"room_id"`
	CommentDate string      `json:"comment_date"`
	Content     string      `json:"content"`
	Rating      int         `json:"rating"`
	CreatedAt   string      `json:"created_at"`
	User        CommentUser `json:"user"`
	Room        CommentRoom `json:"room"`
}

func (r *CommentResponse) FromModel(detail model.CommentDetail) {
	r.ID = detail.ID
	r.UserID = detail.UserID
	r.RoomID = detail.RoomID
	r.CommentDate = timezone.Format(detail.CommentDate, constant.DateFormat)
	r.Content = detail.Content
	r.Rating = detail.Rating
	r.CreatedAt = timezone.Format(detail.CreatedAt, constant.DateFormat)
	r.User = CommentUser{ID: detail.UserID, Name: detail.UserName, Avatar: detail.UserAvatar}
	r.Room = CommentRoom{ID: detail.RoomID, RoomName: detail.RoomName, Image: detail.RoomImage}
}

type GetCommentsResponse struct {
	gDto.Pagination
	Items []CommentResponse `json:"items"`
}

func (r *GetCommentsResponse) FromModels(models []model.CommentDetail, total int, params gDto.QueryParams) {
	r.Page = params.Page
	r.PageSize = params.Limit
	r.TotalItem = total
	r.TotalPage = shared.CalculateTotalPage(total, params.Limit)

	r.Items = make([]CommentResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

// RoomCommentResponse is the compact shape shown under a room listing.
type RoomCommentResponse struct {
	ID          int64   `json:"id"`
	CommentDate string  `json:"comment_date"`
	Content     string  `json:"content"`
	Rating      int     `json:"rating"`
	UserComment string  `json:"user_comment"`
	Avatar      *string `json:"avatar"`
}

func (r *RoomCommentResponse) FromModel(detail model.CommentDetail) {
	r.ID = detail.ID
	r.CommentDate = timezone.Format(detail.CommentDate, constant.DateFormat)
	r.Content = detail.Content
	r.Rating = detail.Rating
	r.UserComment = detail.UserName
	r.Avatar = detail.UserAvatar

	if r.UserComment == "" {
		r.UserComment = unknownAuthor
	}
}

func RoomCommentsFromModels(models []model.CommentDetail) []RoomCommentResponse {
	res := make([]RoomCommentResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type ListCommentsQuery struct {
	Keyword string
	RoomID  *int64
	UserID  *int64
}

func (q *ListCommentsQuery) FromRequest(request *http.Request) error {
	query := request.URL.Query()
	q.Keyword = strings.TrimSpace(query.Get(constant.RequestParamKeyword))

	var err error

	if q.RoomID, err = optionalID(query.Get(RequestParamRoomID), RequestParamRoomID); err != nil {
		return err
	}

	q.UserID, err = optionalID(query.Get(RequestParamUserID), RequestParamUserID)

	return err
}

func optionalID(raw, param string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := shared.ConvertStringToID(raw)
	if err != nil {
		return nil, failure.BadRequestFromString(param + " must be a positive number")
	}

	return &id, nil
}

func (q *ListCommentsQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Keyword != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "keyword_content",
			Field:    model.FieldContent,
			Operator: gDto.FilterOperatorLike,
			Value:    q.Keyword,
			Table:    model.TableName,
		})
	}

	if q.RoomID != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    *q.RoomID,
			Table:    model.TableName,
		})
	}

	if q.UserID != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    *q.UserID,
			Table:    model.TableName,
		})
	}

	return filter
}

// ByRoom matches every comment left on a room.
func ByRoom(roomID int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
		},
	}
}
