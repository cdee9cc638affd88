package model

import (
	"time"

	"voyage/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldAvatar    = "avatar"
	FieldActive    = "active"
	FieldLastLogin = "last_login"

	DirectoryAvatar = "avatars"
)

// User is a back-office account or a customer who signed up to track bookings.
type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	FullName  string     `db:"full_name"`
	Phone     string     `db:"phone"`
	Avatar    string     `db:"avatar"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
