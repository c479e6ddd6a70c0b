package models

import (
	"time"
)

// Configuration is a single key/value settings entry scoped to one
// (shortname, version) pair. The id space is global but access is always
// scope-qualified; Key is unique within a scope and immutable after create.
type Configuration struct {
	ConfigID    string    `gorm:"primaryKey;type:char(36)" json:"configId"`
	ScopeKey    string    `gorm:"index:idx_scope_config_key,unique;size:511;not null" json:"scopeKey"`
	Shortname   string    `gorm:"size:255;not null" json:"shortname"`
	Label       string    `gorm:"size:255;not null;column:version_label" json:"version"`
	Key         string    `gorm:"index:idx_scope_config_key,unique;size:255;not null;column:config_key" json:"key"`
	Value       JSON      `gorm:"type:json" json:"value"`
	Description string    `gorm:"size:1024;not null;default:''" json:"description"`
	Creator     string    `gorm:"size:255;not null" json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Configuration
func (Configuration) TableName() string {
	return "configurations"
}
