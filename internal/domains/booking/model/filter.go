package model

import (
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"time"
)

const (
	argVisibilityUserID  = "visibility_user_id"
	argVisibilityDeleted = "visibility_deleted"
)

// Visibility is the predicate a role sees bookings through. Admins see every
// booking they have not removed; users see their own bookings they have not
// removed. Any other role sees nothing.
func Visibility(role string, userID int64) gDto.FilterGroup {
	switch role {
	case constant.RoleAdmin:
		return gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					ArgName:  argVisibilityDeleted,
					Field:    FieldIsDeletedAdmin,
					Operator: gDto.FilterOperatorEq,
					Value:    false,
					Table:    TableName,
				},
			},
		}
	case constant.RoleUser:
		return gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					ArgName:  argVisibilityDeleted,
					Field:    FieldIsDeletedUser,
					Operator: gDto.FilterOperatorEq,
					Value:    false,
					Table:    TableName,
				},
				gDto.Filter{
					ArgName:  argVisibilityUserID,
					Field:    FieldUserID,
					Operator: gDto.FilterOperatorEq,
					Value:    userID,
					Table:    TableName,
				},
			},
		}
	default:
		return gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Operator: gDto.FilterPlainQuery, Value: "FALSE"},
			},
		}
	}
}

// IsKnownRole reports whether role has a visibility scope over bookings.
func IsKnownRole(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleUser
}

// Overlap matches bookings on roomID that hold the room for any part of
// [checkIn, checkOut).
func Overlap(roomID int64, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "overlap_room_id",
				Field:    FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_status",
				Field:    FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    ActiveStatuses,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_check_out",
				Field:    FieldCheckIn,
				Operator: gDto.FilterOperatorLess,
				Value:    checkOut,
				Table:    TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_check_in",
				Field:    FieldCheckOut,
				Operator: gDto.FilterOperatorGreater,
				Value:    checkIn,
				Table:    TableName,
			},
		},
	}
}
