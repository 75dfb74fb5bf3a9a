package model

import (
	"fmt"
	locationModel "roomly/internal/domains/location/model"
	roomModel "roomly/internal/domains/room/model"
	gDto "roomly/shared/dto"
	"time"
)

const (
	TableName  = "favorites"
	EntityName = "favorite"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldRoomID    = "room_id"
	FieldCreatedAt = "created_at"
)

type Favorite struct {
	ID        int64     `db:"id"         auto:"true"`
	UserID    int64     `db:"user_id"`
	RoomID    int64     `db:"room_id"`
	CreatedAt time.Time `db:"created_at"`
}

// FavoriteDetail is a favorite joined with its room and the room's location.
type FavoriteDetail struct {
	Favorite
	RoomName      string  `db:"room_name"      table:"rooms"`
	GuestCount    int     `db:"guest_count"    table:"rooms"`
	BedroomCount  int     `db:"bedroom_count"  table:"rooms"`
	BedCount      int     `db:"bed_count"      table:"rooms"`
	BathroomCount int     `db:"bathroom_count" table:"rooms"`
	Description   *string `db:"description"    table:"rooms"`
	Price         int64   `db:"price"          table:"rooms"`
	Image         *string `db:"image"          table:"rooms"`
	LocationID    int64   `db:"location_id"    table:"rooms"`
	LocationName  string  `db:"location_name"  table:"locations"`
	Province      *string `db:"province"       table:"locations"`
}

func (FavoriteDetail) JoinQuery() string {
	return fmt.Sprintf(
		"JOIN %[1]s ON %[1]s.%[2]s = %[3]s.%[4]s JOIN %[5]s ON %[5]s.%[6]s = %[1]s.%[7]s",
		roomModel.TableName, roomModel.FieldID, TableName, FieldRoomID,
		locationModel.TableName, locationModel.FieldID, roomModel.FieldLocationID,
	)
}

// ByUser matches the favorites of one user, optionally narrowed to a room.
func ByUser(userID int64, roomID *int64) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    TableName,
			},
		},
	}

	if roomID != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    *roomID,
			Table:    TableName,
		})
	}

	return filter
}
