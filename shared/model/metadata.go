package model

import "time"

type Metadata struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SoftDelete marks rows hidden from reads without removing them.
type SoftDelete struct {
	IsDeleted bool       `db:"is_deleted"`
	DeletedBy *int64     `db:"deleted_by"`
	DeletedAt *time.Time `db:"deleted_at"`
}
