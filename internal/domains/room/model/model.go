package model

import (
	locationModel "roomly/internal/domains/location/model"
	"roomly/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldRoomName       = "room_name"
	FieldGuestCount     = "guest_count"
	FieldBedroomCount   = "bedroom_count"
	FieldBedCount       = "bed_count"
	FieldBathroomCount  = "bathroom_count"
	FieldDescription    = "description"
	FieldPrice          = "price"
	FieldWashingMachine = "washing_machine"
	FieldIron           = "iron"
	FieldTV             = "tv"
	FieldAirConditioner = "air_conditioner"
	FieldWifi           = "wifi"
	FieldKitchen        = "kitchen"
	FieldParking        = "parking"
	FieldPool           = "pool"
	FieldDesk           = "desk"
	FieldImage          = "image"
	FieldLocationID     = "location_id"
)

type Room struct {
	ID             int64   `db:"id"              auto:"true"`
	RoomName       string  `db:"room_name"`
	GuestCount     int     `db:"guest_count"`
	BedroomCount   int     `db:"bedroom_count"`
	BedCount       int     `db:"bed_count"`
	BathroomCount  int     `db:"bathroom_count"`
	Description    *string `db:"description"`
	Price          int64   `db:"price"`
	WashingMachine bool    `db:"washing_machine"`
	Iron           bool    `db:"iron"`
	TV             bool    `db:"tv"`
	AirConditioner bool    `db:"air_conditioner"`
	Wifi           bool    `db:"wifi"`
	Kitchen        bool    `db:"kitchen"`
	Parking        bool    `db:"parking"`
	Pool           bool    `db:"pool"`
	Desk           bool    `db:"desk"`
	Image          *string `db:"image"`
	LocationID     int64   `db:"location_id"`
	LocationName   string  `db:"location_name"   table:"locations"`
	Province       *string `db:"province"        table:"locations"`
	Country        *string `db:"country"         table:"locations"`
	model.SoftDelete
	model.Metadata
}

func (Room) JoinQuery() string {
	return "JOIN " + locationModel.TableName + " ON " + locationModel.TableName + ".id = " + TableName + ".location_id"
}
