package models

import "time"

// Contract represents one installment agreement. Exactly one of DayOfWeek
// (0=Monday..6=Sunday, weekly contracts) and DayOfMonth (1-28, monthly
// contracts) is set. TotalAmount always equals the sum of the contract's
// charge amounts, mirrored onto the header expense after every mutation.
type Contract struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	ExpenseID    string     `json:"expense_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TotalAmount  float64    `json:"total_amount" gorm:"not null;type:numeric" validate:"required,gt=0"`
	PeriodAmount float64    `json:"period_amount" gorm:"not null;type:numeric" validate:"required,gt=0"`
	PeriodType   PeriodType `json:"period_type" gorm:"not null;default:'weekly';type:varchar(20)" validate:"required"`
	DayOfWeek    *int       `json:"day_of_week,omitempty"`
	DayOfMonth   *int       `json:"day_of_month,omitempty"`
	StartDate    time.Time  `json:"start_date" gorm:"not null;type:date" validate:"required"`
	EndDate      time.Time  `json:"end_date" gorm:"not null;type:date" validate:"required"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
