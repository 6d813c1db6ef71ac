package models

import "time"

// Expense represents a single monetary record. Two special shapes exist on
// top of plain one-off expenses:
//   - an installment header (IsInstallment=true, no parent) carries a
//     contract's full committed amount;
//   - a child (ParentExpenseID set, never IsInstallment) is one settled
//     period of that contract.
type Expense struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid" validate:"required,uuid"`
	Type            string    `json:"type" gorm:"not null;type:varchar(50)" validate:"required"`
	Category        string    `json:"category" gorm:"type:varchar(100)"`
	Amount          float64   `json:"amount" gorm:"not null;type:numeric" validate:"required,gt=0"`
	Currency        string    `json:"currency" gorm:"not null;default:'NZD';type:varchar(10)"`
	Date            time.Time `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Note            string    `json:"note,omitempty" gorm:"type:text"`
	ParentExpenseID *string   `json:"parent_expense_id,omitempty" gorm:"index;type:uuid"`
	IsInstallment   bool      `json:"is_installment" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsHeader reports whether this expense is an installment contract header.
func (e *Expense) IsHeader() bool {
	return e.IsInstallment && e.ParentExpenseID == nil
}

// IsChild reports whether this expense is a settled period of a contract.
func (e *Expense) IsChild() bool {
	return e.ParentExpenseID != nil
}
