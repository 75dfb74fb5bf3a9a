package dto

import (
	"errors"
	"net/http"
	"roomly/internal/domains/booking/model"
	locationModel "roomly/internal/domains/location/model"
	roomModel "roomly/internal/domains/room/model"
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
	RequestParamStatus = "status"
	RequestParamUserID = "user_id"

	defaultGuestQuantity = 1
	dateOnlyLayout       = "2006-01-02"
)

var errInvalidBookingTime = errors.New("invalid booking time")

// Actor is the authenticated caller a booking operation runs on behalf of.
type Actor struct {
	UserID int64
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == constant.RoleAdmin
}

// ParseBookingTime accepts an RFC 3339 instant or a bare date, which is read
// as midnight in loc.
func ParseBookingTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, nil
	}

	if parsed, err := time.ParseInLocation(dateOnlyLayout, value, loc); err == nil {
		return parsed, nil
	}

	return time.Time{}, errInvalidBookingTime
}

type CreateBookingRequest struct {
	UserID        *int64   `json:"user_id"        validate:"omitempty,gt=0"`
	RoomID        int64    `json:"room_id"        validate:"required,gt=0"`
	CheckIn       string   `json:"check_in"       validate:"required"`
	CheckOut      string   `json:"check_out"      validate:"required"`
	GuestQuantity *int     `json:"guest_quantity" validate:"omitempty,min=1,max=20"`
	TotalPrice    *float64 `json:"total_price"`
}

// BookerID resolves who the booking is for. Users always book for
// themselves; admins may book on behalf of another user.
func (r *CreateBookingRequest) BookerID(actor Actor) int64 {
	if actor.IsAdmin() && r.UserID != nil {
		return *r.UserID
	}

	return actor.UserID
}

func (r *CreateBookingRequest) ToModel(userID int64, checkIn, checkOut, now time.Time) model.Booking {
	guestQuantity := defaultGuestQuantity
	if r.GuestQuantity != nil {
		guestQuantity = *r.GuestQuantity
	}

	var totalPrice float64
	if r.TotalPrice != nil {
		totalPrice = *r.TotalPrice
	}

	return model.Booking{
		UserID:        userID,
		RoomID:        r.RoomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		GuestQuantity: guestQuantity,
		TotalPrice:    totalPrice,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingUser struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

type BookingLocation struct {
	ID           int64   `json:"id"`
	LocationName string  `json:"location_name"`
	Province     *string `json:"province"`
}

type BookingRoom struct {
	ID       int64           `json:"id"`
	RoomName string          `json:"room_name"`
	Price    int64           `json:"price"`
	Image    *string         `json:"image"`
	Location BookingLocation `json:"location"`
}

// BookingResponse is the public projection of a booking. Deletion flags and
// update bookkeeping stay internal.
type BookingResponse struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"user_id"`
	RoomID        int64       `json:"room_id"`
	CheckIn       string      `json:"check_in"`
	CheckOut      string      `json:"check_out"`
	GuestQuantity int         `json:"guest_quantity"`
	TotalPrice    float64     `json:"total_price"`
	Status        string      `json:"status"`
	ConfirmedAt   *string     `json:"confirmed_at"`
	CancelledAt   *string     `json:"cancelled_at"`
	CancelledBy   *string     `json:"cancelled_by"`
	CancelReason  *string     `json:"cancel_reason"`
	CreatedAt     string      `json:"created_at"`
	User          BookingUser `json:"user"`
	Room          BookingRoom `json:"room"`
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

func (r *BookingResponse) FromModel(detail model.BookingDetail) {
	r.ID = detail.ID
	r.UserID = detail.UserID
	r.RoomID = detail.RoomID
	r.CheckIn = timezone.Format(detail.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(detail.CheckOut, constant.DateFormat)
	r.GuestQuantity = detail.GuestQuantity
	r.TotalPrice = detail.TotalPrice
	r.Status = string(detail.Status)
	r.ConfirmedAt = formatOptional(detail.ConfirmedAt)
	r.CancelledAt = formatOptional(detail.CancelledAt)
	r.CancelledBy = detail.CancelledBy
	r.CancelReason = detail.CancelReason
	r.CreatedAt = timezone.Format(detail.CreatedAt, constant.DateFormat)
	r.User = BookingUser{
		ID:     detail.UserID,
		Name:   detail.UserName,
		Email:  detail.UserEmail,
		Avatar: detail.UserAvatar,
	}
	r.Room = BookingRoom{
		ID:       detail.RoomID,
		RoomName: detail.RoomName,
		Price:    detail.RoomPrice,
		Image:    detail.RoomImage,
		Location: BookingLocation{
			ID:           detail.LocationID,
			LocationName: detail.LocationName,
			Province:     detail.Province,
		},
	}
}

type GetBookingsResponse struct {
	gDto.Pagination
	Items []BookingResponse `json:"items"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingDetail, total int, params gDto.QueryParams) {
	r.Page = params.Page
	r.PageSize = params.Limit
	r.TotalItem = total
	r.TotalPage = shared.CalculateTotalPage(total, params.Limit)

	r.Items = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

// RemoveBookingResponse tells the caller whether the record is gone for good.
type RemoveBookingResponse struct {
	Erased  bool   `json:"erased"`
	Message string `json:"message"`
}

type ListBookingsQuery struct {
	Status  model.Status `json:"status" validate:"omitempty,roomly"`
	Keyword string       `json:"keyword"`
	UserID  *int64       `json:"user_id"`
}

func (q *ListBookingsQuery) FromRequest(request *http.Request) error {
	query := request.URL.Query()
	q.Status = model.Status(strings.ToUpper(strings.TrimSpace(query.Get(RequestParamStatus))))
	q.Keyword = strings.TrimSpace(query.Get(constant.RequestParamKeyword))

	if raw := query.Get(RequestParamUserID); raw != "" {
		userID, err := shared.ConvertStringToID(raw)
		if err != nil {
			return failure.BadRequestFromString("user_id must be a positive number")
		}

		q.UserID = &userID
	}

	return nil
}

// ToFilter scopes the listing to what actor may see. The user_id filter only
// narrows admin listings; users are already pinned to their own bookings.
func (q *ListBookingsQuery) ToFilter(actor Actor) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{model.Visibility(actor.Role, actor.UserID)},
	}

	if q.Status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    string(q.Status),
			Table:    model.TableName,
		})
	}

	if actor.IsAdmin() && q.UserID != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    *q.UserID,
			Table:    model.TableName,
		})
	}

	if q.Keyword != "" {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "keyword_room_name",
					Field:    roomModel.FieldRoomName,
					Operator: gDto.FilterOperatorLike,
					Value:    q.Keyword,
					Table:    roomModel.TableName,
				},
				gDto.Filter{
					ArgName:  "keyword_location_name",
					Field:    locationModel.FieldLocationName,
					Operator: gDto.FilterOperatorLike,
					Value:    q.Keyword,
					Table:    locationModel.TableName,
				},
			},
		})
	}

	return filter
}

const (
	EventCreated   = "booking.created"
	EventConfirmed = "booking.confirmed"
	EventCancelled = "booking.cancelled"
	EventRemoved   = "booking.removed"
	EventErased    = "booking.erased"
)

// BookingEvent is published on every lifecycle transition.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  int64  `json:"booking_id"`
	RoomID     int64  `json:"room_id"`
	UserID     int64  `json:"user_id"`
	Status     string `json:"status"`
	Actor      string `json:"actor"`
	OccurredAt string `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking model.Booking, actor Actor, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		UserID:     booking.UserID,
		Status:     string(booking.Status),
		Actor:      actor.Role,
		OccurredAt: timezone.Format(at, constant.DateFormat),
	}
}
