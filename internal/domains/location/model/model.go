package model

import "roomly/shared/model"

const (
	TableName  = "locations"
	EntityName = "location"

	FieldID           = "id"
	FieldLocationName = "location_name"
	FieldProvince     = "province"
	FieldCountry      = "country"
	FieldImage        = "image"
)

type Location struct {
	ID           int64   `db:"id"            auto:"true"`
	LocationName string  `db:"location_name"`
	Province     *string `db:"province"`
	Country      *string `db:"country"`
	Image        *string `db:"image"`
	model.SoftDelete
	model.Metadata
}
