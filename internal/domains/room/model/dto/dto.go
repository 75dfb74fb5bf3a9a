package dto

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"roomly/internal/domains/room/model"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	gModel "roomly/shared/model"
	"roomly/shared/timezone"
	"strings"
)

const (
	RequestParamLocationID = "location_id"
	RequestParamGuestCount = "guest_count"
)

// Amenities groups the optional room features.
type Amenities struct {
	WashingMachine *bool `json:"washing_machine" db:"washing_machine"`
	Iron           *bool `json:"iron"            db:"iron"`
	TV             *bool `json:"tv"              db:"tv"`
	AirConditioner *bool `json:"air_conditioner" db:"air_conditioner"`
	Wifi           *bool `json:"wifi"            db:"wifi"`
	Kitchen        *bool `json:"kitchen"         db:"kitchen"`
	Parking        *bool `json:"parking"         db:"parking"`
	Pool           *bool `json:"pool"            db:"pool"`
	Desk           *bool `json:"desk"            db:"desk"`
}

func (a *Amenities) fromForm(request *http.Request) {
	a.WashingMachine = shared.ConvertStringToBool(request.FormValue(model.FieldWashingMachine))
	a.Iron = shared.ConvertStringToBool(request.FormValue(model.FieldIron))
	a.TV = shared.ConvertStringToBool(request.FormValue(model.FieldTV))
	a.AirConditioner = shared.ConvertStringToBool(request.FormValue(model.FieldAirConditioner))
	a.Wifi = shared.ConvertStringToBool(request.FormValue(model.FieldWifi))
	a.Kitchen = shared.ConvertStringToBool(request.FormValue(model.FieldKitchen))
	a.Parking = shared.ConvertStringToBool(request.FormValue(model.FieldParking))
	a.Pool = shared.ConvertStringToBool(request.FormValue(model.FieldPool))
	a.Desk = shared.ConvertStringToBool(request.FormValue(model.FieldDesk))
}

func boolValue(value *bool) bool {
	return value != nil && *value
}

func formInt(request *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(request.FormValue(key))
	if raw == "" {
		return nil, nil
	}

	value, err := shared.ConvertStringToInt(raw)
	if err != nil {
		return nil, failure.BadRequestFromString(fmt.Sprintf("%s must be a number", key))
	}

	return &value, nil
}

func formInt64(request *http.Request, key string) (*int64, error) {
	value, err := formInt(request, key)
	if err != nil || value == nil {
		return nil, err
	}

	converted := int64(*value)

	return &converted, nil
}

type CreateRoomRequest struct {
	RoomName      string                `json:"room_name"      validate:"required,max=255"`
	GuestCount    int                   `json:"guest_count"    validate:"gte=0,lte=50"`
	BedroomCount  int                   `json:"bedroom_count"  validate:"gte=0"`
	BedCount      int                   `json:"bed_count"      validate:"gte=0"`
	BathroomCount int                   `json:"bathroom_count" validate:"gte=0"`
	Description   *string               `json:"description"`
	Price         int64                 `json:"price"          validate:"gte=0"`
	LocationID    int64                 `json:"location_id"    validate:"required,gt=0"`
	Image         *multipart.FileHeader `json:"-"              validate:"omitempty,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	Amenities
}

func (r *CreateRoomRequest) FromForm(request *http.Request) error {
	r.RoomName = strings.TrimSpace(request.FormValue(model.FieldRoomName))
	r.Description = shared.StringOrNil(request.FormValue(model.FieldDescription))
	r.Amenities.fromForm(request)

	counts := map[string]*int{
		model.FieldGuestCount:    &r.GuestCount,
		model.FieldBedroomCount:  &r.BedroomCount,
		model.FieldBedCount:      &r.BedCount,
		model.FieldBathroomCount: &r.BathroomCount,
	}

	for key, target := range counts {
		value, err := formInt(request, key)
		if err != nil {
			return err
		}

		if value != nil {
			*target = *value
		}
	}

	price, err := formInt64(request, model.FieldPrice)
	if err != nil {
		return err
	}

	if price != nil {
		r.Price = *price
	}

	locationID, err := formInt64(request, model.FieldLocationID)
	if err != nil {
		return err
	}

	if locationID != nil {
		r.LocationID = *locationID
	}

	if _, fileHeader, err := request.FormFile(constant.FormImage); err == nil {
		r.Image = fileHeader
	}

	return nil
}

func (r *CreateRoomRequest) ToModel(imageURL *string) model.Room {
	now := timezone.Now()

	return model.Room{
		RoomName:       r.RoomName,
		GuestCount:     r.GuestCount,
		BedroomCount:   r.BedroomCount,
		BedCount:       r.BedCount,
		BathroomCount:  r.BathroomCount,
		Description:    r.Description,
		Price:          r.Price,
		WashingMachine: boolValue(r.WashingMachine),
		Iron:           boolValue(r.Iron),
		TV:             boolValue(r.TV),
		AirConditioner: boolValue(r.AirConditioner),
		Wifi:           boolValue(r.Wifi),
		Kitchen:        boolValue(r.Kitchen),
		Parking:        boolValue(r.Parking),
		Pool:           boolValue(r.Pool),
		Desk:           boolValue(r.Desk),
		Image:          imageURL,
		LocationID:     r.LocationID,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateRoomRequest only touches the columns that were sent.
type UpdateRoomRequest struct {
	RoomName      *string               `json:"room_name"      db:"room_name"      validate:"omitempty,min=1,max=255"`
	GuestCount    *int                  `json:"guest_count"    db:"guest_count"    validate:"omitempty,gte=0,lte=50"`
	BedroomCount  *int                  `json:"bedroom_count"  db:"bedroom_count"  validate:"omitempty,gte=0"`
	BedCount      *int                  `json:"bed_count"      db:"bed_count"      validate:"omitempty,gte=0"`
	BathroomCount *int                  `json:"bathroom_count" db:"bathroom_count" validate:"omitempty,gte=0"`
	Description   *string               `json:"description"    db:"description"`
	Price         *int64                `json:"price"          db:"price"          validate:"omitempty,gte=0"`
	LocationID    *int64                `json:"location_id"    db:"location_id"    validate:"omitempty,gt=0"`
	Image         *multipart.FileHeader `json:"-"                                  validate:"omitempty,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	Amenities
}

func (r *UpdateRoomRequest) FromForm(request *http.Request) (err error) {
	r.RoomName = shared.StringOrNil(request.FormValue(model.FieldRoomName))
	r.Description = shared.StringOrNil(request.FormValue(model.FieldDescription))
	r.Amenities.fromForm(request)

	if r.GuestCount, err = formInt(request, model.FieldGuestCount); err != nil {
		return err
	}

	if r.BedroomCount, err = formInt(request, model.FieldBedroomCount); err != nil {
		return err
	}

	if r.BedCount, err = formInt(request, model.FieldBedCount); err != nil {
		return err
	}

	if r.BathroomCount, err = formInt(request, model.FieldBathroomCount); err != nil {
		return err
	}

	if r.Price, err = formInt64(request, model.FieldPrice); err != nil {
		return err
	}

	if r.LocationID, err = formInt64(request, model.FieldLocationID); err != nil {
		return err
	}

	if _, fileHeader, fileErr := request.FormFile(constant.FormImage); fileErr == nil {
		r.Image = fileHeader
	}

	return nil
}

// UpdatedFields flattens the request and its amenities into column updates.
func (r *UpdateRoomRequest) UpdatedFields() map[string]any {
	fields := shared.TransformFields(*r)
	for key, value := range shared.TransformFields(r.Amenities) {
		fields[key] = value
	}

	return fields
}

func (r *UpdateRoomRequest) IsEmpty() bool {
	return len(r.UpdatedFields()) == 1 && r.Image == nil
}

type LocationSummary struct {
	ID           int64   `json:"id"`
	LocationName string  `json:"location_name"`
	Province     *string `json:"province"`
	Country      *string `json:"country,omitempty"`
}

type RoomResponse struct {
	ID             int64           `json:"id"`
	RoomName       string          `json:"room_name"`
	GuestCount     int             `json:"guest_count"`
	BedroomCount   int             `json:"bedroom_count"`
	BedCount       int             `json:"bed_count"`
	BathroomCount  int             `json:"bathroom_count"`
	Description    *string         `json:"description"`
	Price          int64           `json:"price"`
	WashingMachine bool            `json:"washing_machine"`
	Iron           bool            `json:"iron"`
	TV             bool            `json:"tv"`
	AirConditioner bool            `json:"air_conditioner"`
	Wifi           bool            `json:"wifi"`
	Kitchen        bool            `json:"kitchen"`
	Parking        bool            `json:"parking"`
	Pool           bool            `json:"pool"`
	Desk           bool            `json:"desk"`
	Image          *string         `json:"image"`
	LocationID     int64           `json:"location_id"`
	Location       LocationSummary `json:"location"`
	CreatedAt      string          `json:"created_at"`
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.ID = room.ID
	r.RoomName = room.RoomName
	r.GuestCount = room.GuestCount
	r.BedroomCount = room.BedroomCount
	r.BedCount = room.BedCount
	r.BathroomCount = room.BathroomCount
	r.Description = room.Description
	r.Price = room.Price
	r.WashingMachine = room.WashingMachine
	r.Iron = room.Iron
	r.TV = room.TV
	r.AirConditioner = room.AirConditioner
	r.Wifi = room.Wifi
	r.Kitchen = room.Kitchen
	r.Parking = room.Parking
	r.Pool = room.Pool
	r.Desk = room.Desk
	r.Image = room.Image
	r.LocationID = room.LocationID
	r.Location = LocationSummary{
		ID:           room.LocationID,
		LocationName: room.LocationName,
		Province:     room.Province,
		Country:      room.Country,
	}
	r.CreatedAt = timezone.Format(room.CreatedAt, constant.DateFormat)
}

type GetRoomsResponse struct {
	gDto.Pagination
	Items []RoomResponse `json:"items"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, total int, params gDto.QueryParams) {
	r.Page = params.Page
	r.PageSize = params.Limit
	r.TotalItem = total
	r.TotalPage = shared.CalculateTotalPage(total, params.Limit)

	r.Items = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type ListRoomsQuery struct {
	Keyword    string
	LocationID *int64
	GuestCount *int
}

func (q *ListRoomsQuery) FromRequest(request *http.Request) error {
	query := request.URL.Query()
	q.Keyword = strings.TrimSpace(query.Get(constant.RequestParamKeyword))

	if raw := query.Get(RequestParamLocationID); raw != "" {
		locationID, err := shared.ConvertStringToID(raw)
		if err != nil {
			return failure.BadRequestFromString("location_id must be a positive number")
		}

		q.LocationID = &locationID
	}

	if raw := query.Get(RequestParamGuestCount); raw != "" {
		guestCount, err := shared.ConvertStringToInt(raw)
		if err != nil || guestCount < 0 {
			return failure.BadRequestFromString("guest_count must be a non-negative number")
		}

		q.GuestCount = &guestCount
	}

	return nil
}

// ToFilter hides deleted rooms; guest_count is a lower bound.
func (q *ListRoomsQuery) ToFilter() gDto.FilterGroup {
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

	if q.Keyword != "" {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "keyword_room_name",
					Field:    model.FieldRoomName,
					Operator: gDto.FilterOperatorLike,
					Value:    q.Keyword,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "keyword_description",
					Field:    model.FieldDescription,
					Operator: gDto.FilterOperatorLike,
					Value:    q.Keyword,
					Table:    model.TableName,
				},
			},
		})
	}

	if q.LocationID != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldLocationID,
			Operator: gDto.FilterOperatorEq,
			Value:    *q.LocationID,
			Table:    model.TableName,
		})
	}

	if q.GuestCount != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldGuestCount,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *q.GuestCount,
			Table:    model.TableName,
		})
	}

	return filter
}
