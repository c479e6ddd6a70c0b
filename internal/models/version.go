package models

import (
	"time"
)

// ScopeKey builds the composite key that scopes versions and configurations
// to one (shortname, version label) pair.
func ScopeKey(shortname, label string) string {
	return shortname + ":" + label
}

// Release is the label-global version registry row. Top-level version
// operations and duplication create releases; shortname-scoped versions
// associate shortnames with a release label.
type Release struct {
	ReleaseID   uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	Label       string    `gorm:"uniqueIndex;size:255;not null;column:version_label" json:"version"`
	Description string    `gorm:"size:1024;not null;default:''" json:"description"`
	IsActive    bool      `gorm:"not null;default:false" json:"isActive"`
	Creator     string    `gorm:"size:255;not null" json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Version is a labeled release scoped under a shortname. One row per
// shortname and label pair; the row doubles as the shortname-release
// association used by the version-first routes and duplication.
type Version struct {
	VersionID   uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ScopeKey    string    `gorm:"uniqueIndex;size:511;not null" json:"-"`
	Shortname   string    `gorm:"index;size:255;not null" json:"shortname"`
	Label       string    `gorm:"index;size:255;not null;column:version_label" json:"version"`
	Description string    `gorm:"size:1024;not null;default:''" json:"description"`
	IsActive    bool      `gorm:"not null;default:false" json:"isActive"`
	Creator     string    `gorm:"size:255;not null" json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Release
func (Release) TableName() string {
	return "releases"
}

// TableName overrides the table name for Version
func (Version) TableName() string {
	return "versions"
}
