package models

import "time"

// Charge is the scheduling record for one period of a contract. A paid
// charge always links to the child expense that settled it; a pending
// charge never does.
type Charge struct {
	ID         string       `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	ContractID string       `json:"contract_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ExpenseID  *string      `json:"expense_id,omitempty" gorm:"index;type:uuid"`
	ChargeDate time.Time    `json:"charge_date" gorm:"not null;index;type:date" validate:"required"`
	Amount     float64      `json:"amount" gorm:"not null;type:numeric" validate:"required,gt=0"`
	Status     ChargeStatus `json:"status" gorm:"not null;default:'pending';type:varchar(20)" validate:"required"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsPaid reports whether the charge has been settled.
func (c *Charge) IsPaid() bool {
	return c.Status == ChargePaid
}
