package model

import (
	"time"

	"todoapp/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldEmail       = "email"
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldActive      = "active"
	FieldIsSuperuser = "is_superuser"
	FieldLastLogin   = "last_login"
)

type User struct {
	ID          int64      `db:"id"`
	Email       string     `db:"email"`
	Username    string     `db:"username"`
	Password    string     `db:"password"`
	Active      bool       `db:"active"`
	IsSuperuser bool       `db:"is_superuser"`
	LastLogin   *time.Time `db:"last_login"`
	model.Metadata
}
