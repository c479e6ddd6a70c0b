package models

import (
	"time"
)

// user roles
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// User is an authenticated principal. The managers only ever see the user id
// as an opaque creator string; the credential service owns this collection.
type User struct {
	UserID       string    `gorm:"primaryKey;type:char(36)" json:"userId"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:standard" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
