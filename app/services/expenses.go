package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/chenmq77/duckiki/app/models"
)

// ExpenseService covers plain expense CRUD plus the cascade rules that
// keep expenses linked to a contract consistent with it.
type ExpenseService struct {
	store Store
}

func NewExpenseService(store Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpenseInput carries the fields needed to create a one-off expense.
type ExpenseInput struct {
	Type     string
	Category string
	Currency string
	Note     string
	Amount   float64
	Date     time.Time
}

// ExpenseUpdate carries partial changes; nil fields stay untouched.
type ExpenseUpdate struct {
	Category *string
	Note     *string
	Amount   *float64
	Date     *time.Time
}

// Create persists a plain one-off expense. Installment headers are only
// created through the contract lifecycle.
func (s *ExpenseService) Create(in ExpenseInput) (*models.Expense, error) {
	if in.Type == "" {
		return nil, Validationf("type is required")
	}
	if in.Amount <= 0 {
		return nil, Validationf("amount must be positive")
	}
	if in.Date.IsZero() {
		return nil, Validationf("date is required")
	}
	if in.Currency == "" {
		in.Currency = "NZD"
	}

	e := &models.Expense{
		Type:     in.Type,
		Category: in.Category,
		Amount:   in.Amount,
		Currency: in.Currency,
		Date:     in.Date,
		Note:     in.Note,
	}
	if err := s.store.CreateExpense(e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all expenses.
func (s *ExpenseService) List() ([]*models.Expense, error) {
	return s.store.ListExpenses()
}

// Get returns one expense by id.
func (s *ExpenseService) Get(id string) (*models.Expense, error) {
	return s.store.GetExpense(id)
}

// Update edits an expense. Amount edits on an installment header are
// rejected: the header amount is derived from the contract's charges.
// An amount edit on a settled child cascades to its charge and back up
// through the contract and header totals.
func (s *ExpenseService) Update(id string, upd ExpenseUpdate) (*models.Expense, error) {
	var out *models.Expense
	err := s.store.WithTx(func(st Store) error {
		e, err := st.GetExpense(id)
		if err != nil {
			return err
		}
		if upd.Amount != nil && e.IsHeader() {
			return Validationf("header amounts are derived from charges; update the contract instead")
		}

		if upd.Category != nil {
			e.Category = *upd.Category
		}
		if upd.Note != nil {
			e.Note = *upd.Note
		}
		if upd.Date != nil {
			e.Date = *upd.Date
		}
		if upd.Amount != nil {
			if *upd.Amount <= 0 {
				return Validationf("amount must be positive")
			}
			e.Amount = *upd.Amount
		}
		if err := st.UpdateExpense(e); err != nil {
			return err
		}

		if upd.Amount != nil && e.IsChild() {
			charge, err := st.ChargeByExpense(e.ID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return fmt.Errorf("settled expense %s has no charge: %w", e.ID, err)
				}
				return err
			}
			charge.Amount = e.Amount
			if err := st.UpdateCharge(charge); err != nil {
				return err
			}
			contract, err := st.GetContract(charge.ContractID)
			if err != nil {
				return err
			}
			header, err := st.GetExpense(contract.ExpenseID)
			if err != nil {
				return err
			}
			if err := syncContractTotals(st, contract, header); err != nil {
				return err
			}
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an expense. Deleting an installment header is rejected;
// the contract delete cascade is the only path that removes headers.
// Deleting a settled child reverts its charge to pending first, the same
// transition as a manual reversal.
func (s *ExpenseService) Delete(id string) error {
	return s.store.WithTx(func(st Store) error {
		e, err := st.GetExpense(id)
		if err != nil {
			return err
		}
		if e.IsHeader() {
			return Validationf("expense heads an installment contract; delete the contract instead")
		}
		if e.IsChild() {
			charge, err := st.ChargeByExpense(e.ID)
			if err == nil {
				charge.ExpenseID = nil
				charge.Status = models.ChargePending
				if err := st.UpdateCharge(charge); err != nil {
					return err
				}
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}
		}
		return st.DeleteExpense(id)
	})
}
