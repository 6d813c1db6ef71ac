package models

import "time"

// Activity represents one recorded session. CalculatedWeight is computed
// once at creation time from the raw distance and stored; it is never
// recomputed at read time.
type Activity struct {
	ID               string       `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Type             ActivityType `json:"type" gorm:"not null;type:varchar(50)" validate:"required"`
	Date             time.Time    `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Distance         int          `json:"distance" gorm:"not null" validate:"gte=0"`
	CalculatedWeight float64      `json:"calculated_weight" gorm:"not null;type:numeric"`
	Note             string       `json:"note,omitempty" gorm:"type:text"`
	CreatedAt        time.Time    `json:"created_at" gorm:"autoCreateTime"`
}
