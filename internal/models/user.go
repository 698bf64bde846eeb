package models

import (
	"strings"

	"gorm.io/gorm"
)

// Role names granted to users. Roles are assigned server-side and are
// never settable through the API.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered customer or administrator.
// Username is email-shaped and is the identity all other entities hang off.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Roles      string `json:"-" gorm:"type:varchar(255)"` // comma-separated role names
	gorm.Model `json:"-"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if r == role {
			return true
		}
	}
	return false
}

// RoleList returns the user's roles as a slice, suitable for token claims.
func (u *User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	return strings.Split(u.Roles, ",")
}
