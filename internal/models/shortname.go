package models

import (
	"time"
)

// Shortname is a top-level named component/application that owns versions.
type Shortname struct {
	ShortnameID uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"shortname"`
	Description string    `gorm:"size:1024;not null;default:''" json:"description"`
	Creator     string    `gorm:"size:255;not null" json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Shortname
func (Shortname) TableName() string {
	return "shortnames"
}
