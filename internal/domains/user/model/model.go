package model

import (
	"hotel/shared/constant"
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

type Role string

const (
	RoleAdmin Role = constant.RoleAdmin
	RoleStaff Role = constant.RoleStaff
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a staff account. Guests never log in.
type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	FullName  string     `db:"full_name"`
	Role      Role       `db:"role"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
