package model

import "roomly/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldPhone    = "phone"
	FieldBirthDay = "birth_day"
	FieldGender   = "gender"
	FieldRole     = "role"
	FieldAvatar   = "avatar"
)

type User struct {
	ID       int64   `db:"id"        auto:"true"`
	Name     string  `db:"name"`
	Email    string  `db:"email"`
	Password *string `db:"password"`
	Phone    *string `db:"phone"`
	BirthDay *string `db:"birth_day"`
	Gender   *string `db:"gender"`
	Role     string  `db:"role"`
	Avatar   *string `db:"avatar"`
	model.SoftDelete
	model.Metadata
}

// HasPassword reports whether the account can sign in with a password.
func (u User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
