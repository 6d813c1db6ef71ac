package services

import (
	"github.com/chenmq77/duckiki/app/models"
)

// Store is the persistence surface the services operate through. The SQL
// implementation lives in app/database; tests use an in-memory fake.
//
// WithTx runs fn against a transaction-scoped store and commits only if fn
// returns nil. Every multi-record mutation in this package goes through it
// so a failure anywhere leaves prior state intact.
type Store interface {
	WithTx(fn func(Store) error) error

	CreateExpense(e *models.Expense) error
	UpdateExpense(e *models.Expense) error
	DeleteExpense(id string) error
	GetExpense(id string) (*models.Expense, error)
	ListExpenses() ([]*models.Expense, error)

	CreateContract(ct *models.Contract) error
	UpdateContract(ct *models.Contract) error
	DeleteContract(id string) error
	GetContract(id string) (*models.Contract, error)
	ListContracts() ([]*models.Contract, error)

	CreateCharge(ch *models.Charge) error
	UpdateCharge(ch *models.Charge) error
	GetCharge(id string) (*models.Charge, error)
	ChargesByContract(contractID string) ([]*models.Charge, error)
	ChargeByExpense(expenseID string) (*models.Charge, error)
	DeleteChargesByContract(contractID string) error

	CreateActivity(a *models.Activity) error
	DeleteActivity(id string) error
	ListActivities() ([]*models.Activity, error)

	GetSetting(key string) (*models.Setting, error)
	PutSetting(s *models.Setting) error
}
