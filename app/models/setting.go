package models

import "time"

// Setting is a key/value configuration row.
type Setting struct {
	Key         string    `json:"key" gorm:"primaryKey;type:varchar(100)" validate:"required"`
	Value       string    `json:"value" gorm:"not null;type:text" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
