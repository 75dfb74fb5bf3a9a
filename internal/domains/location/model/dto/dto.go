package dto

import (
	"mime/multipart"
	"net/http"
	"roomly/internal/domains/location/model"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	gModel "roomly/shared/model"
	"roomly/shared/timezone"
	"strings"
)

type CreateLocationRequest struct {
	LocationName string                `json:"location_name" validate:"required,max=255"`
	Province     *string               `json:"province"      validate:"omitempty,max=255"`
	Country      *string               `json:"country"       validate:"omitempty,max=255"`
	Image        *multipart.FileHeader `json:"-"             validate:"omitempty,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}

// FromForm reads a multipart form; the image part is optional.
func (r *CreateLocationRequest) FromForm(request *http.Request) {
	r.LocationName = strings.TrimSpace(request.FormValue(model.FieldLocationName))
	r.Province = shared.StringOrNil(request.FormValue(model.FieldProvince))
	r.Country = shared.StringOrNil(request.FormValue(model.FieldCountry))

	if _, fileHeader, err := request.FormFile(constant.FormImage); err == nil {
		r.Image = fileHeader
	}
}

func (r *CreateLocationRequest) ToModel(imageURL *string) model.Location {
	now := timezone.Now()

	return model.Location{
		LocationName: r.LocationName,
		Province:     r.Province,
		Country:      r.Country,
		Image:        imageURL,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UpdateLocationRequest struct {
	LocationName *string               `json:"location_name" db:"location_name" validate:"omitempty,min=1,max=255"`
	Province     *string               `json:"province"      db:"province"      validate:"omitempty,max=255"`
	Country      *string               `json:"country"       db:"country"       validate:"omitempty,max=255"`
	Image        *multipart.FileHeader `json:"-"                                validate:"omitempty,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}

func (r *UpdateLocationRequest) FromForm(request *http.Request) {
	r.LocationName = shared.StringOrNil(request.FormValue(model.FieldLocationName))
	r.Province = shared.StringOrNil(request.FormValue(model.FieldProvince))
	r.Country = shared.StringOrNil(request.FormValue(model.FieldCountry))

	if _, fileHeader, err := request.FormFile(constant.FormImage); err == nil {
		r.Image = fileHeader
	}
}

type LocationResponse struct {
	ID           int64   `json:"id"`
	LocationName string  `json:"location_name"`
	Province     *string `json:"province"`
	Country      *string `json:"country"`
	Image        *string `json:"image"`
}

func (r *LocationResponse) FromModel(location model.Location) {
	r.ID = location.ID
	r.LocationName = location.LocationName
	r.Province = location.Province
	r.Country = location.Country
	r.Image = location.Image
}

type GetLocationsResponse struct {
	gDto.Pagination
	Items []LocationResponse `json:"items"`
}

func (r *GetLocationsResponse) FromModels(models []model.Location, total int, params gDto.QueryParams) {
	r.Page = params.Page
	r.PageSize = params.Limit
	r.TotalItem = total
	r.TotalPage = shared.CalculateTotalPage(total, params.Limit)

	r.Items = make([]LocationResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

// ListLocationsQuery matches keyword against name, province and country.
type ListLocationsQuery struct {
	Keyword string
}

func (q *ListLocationsQuery) FromRequest(r *http.Request) {
	q.Keyword = strings.TrimSpace(r.URL.Query().Get(constant.RequestParamKeyword))
}

func (q *ListLocationsQuery) ToFilter() gDto.FilterGroup {
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
	for _, field := range []string{model.FieldLocationName, model.FieldProvince, model.FieldCountry} {
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
