package dto

import (
	"net/http"
	"roomly/internal/domains/user/model"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	gModel "roomly/shared/model"
	"roomly/shared/timezone"
	"strings"
)

type CreateUserRequest struct {
	Name     string  `json:"name"                validate:"required,min=2,max=100"`
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=6,max=72"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,min=8,max=20"`
	BirthDay *string `json:"birth_day,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender   *string `json:"gender,omitempty"    validate:"omitempty,oneof=male female other"`
	Role     string  `json:"role,omitempty"      validate:"omitempty,oneof=admin user"`
	Avatar   *string `json:"avatar,omitempty"    validate:"omitempty,url"`
}

func (r *CreateUserRequest) ToModel(hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleUser
	}

	now := timezone.Now()

	return model.User{
		Name:     r.Name,
		Email:    r.Email,
		Password: &hashedPassword,
		Phone:    r.Phone,
		BirthDay: r.BirthDay,
		Gender:   r.Gender,
		Role:     role,
		Avatar:   r.Avatar,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateUserRequest carries the db tags consumed by shared.TransformFields.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"      db:"name"      validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty"                    validate:"omitempty,email"`
	Password *string `json:"password,omitempty"  db:"password"  validate:"omitempty,min=6,max=72"`
	Phone    *string `json:"phone,omitempty"     db:"phone"     validate:"omitempty,min=8,max=20"`
	BirthDay *string `json:"birth_day,omitempty" db:"birth_day" validate:"omitempty,datetime=2006-01-02"`
	Gender   *string `json:"gender,omitempty"    db:"gender"    validate:"omitempty,oneof=male female other"`
	Role     *string `json:"role,omitempty"      db:"role"      validate:"omitempty,oneof=admin user"`
	Avatar   *string `json:"avatar,omitempty"    db:"avatar"    validate:"omitempty,url"`
}

// UploadAvatarRequest takes the image as a data URI.
type UploadAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	BirthDay  *string `json:"birth_day"`
	Gender    *string `json:"gender"`
	Role      string  `json:"role"`
	Avatar    *string `json:"avatar"`
	CreatedAt string  `json:"created_at"`
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Name
	r.Email = user.Email
	r.Phone = user.Phone
	r.BirthDay = user.BirthDay
	r.Gender = user.Gender
	r.Role = user.Role
	r.Avatar = user.Avatar
	r.CreatedAt = timezone.Format(user.CreatedAt, constant.DateFormat)
}

// UserSummary is the projection embedded in bookings and comments.
type UserSummary struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email,omitempty"`
	Role   string  `json:"role,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

func (r *UserSummary) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Name
	r.Email = user.Email
	r.Role = user.Role
	r.Avatar = user.Avatar
}

type GetUsersResponse struct {
	gDto.Pagination
	Items []UserResponse `json:"items"`
}

func (r *GetUsersResponse) FromModels(models []model.User, total int, params gDto.QueryParams) {
	r.Page = params.Page
	r.PageSize = params.Limit
	r.TotalItem = total
	r.TotalPage = shared.CalculateTotalPage(total, params.Limit)

	r.Items = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

// ListUsersQuery narrows the directory listing.
type ListUsersQuery struct {
	Keyword string
}

func (q *ListUsersQuery) FromRequest(r *http.Request) {
	q.Keyword = strings.TrimSpace(r.URL.Query().Get(constant.RequestParamKeyword))
}

// ToFilter always excludes soft-deleted accounts.
func (q *ListUsersQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    constant.FieldIsDeleted,
				Operator: gDto.FilterOperatorEq,
				Value:    false,
				Table:    model.TableName,
			},
		},
	}

	if q.Keyword == "" {
		return filter
	}

	keyword := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}
	for _, field := range []string{model.FieldName, model.FieldEmail, model.FieldPhone} {
		keyword.Filters = append(keyword.Filters, gDto.Filter{
			ArgName:  "keyword_" + field,
			Field:    field,
			Operator: gDto.FilterOperatorLike,
			Value:    q.Keyword,
			Table:    model.TableName,
		})
	}

	filter.Filters = append(filter.Filters, keyword)

	return filter
}
