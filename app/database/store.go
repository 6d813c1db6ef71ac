package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chenmq77/duckiki/app/models"
	"github.com/chenmq77/duckiki/app/services"
)

// dbtx is the subset of *sql.DB and *sql.Tx the store needs, so every
// query runs the same way inside and outside a transaction.
type dbtx interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Store implements services.Store on PostgreSQL.
type Store struct {
	db *sql.DB
	tx *sql.Tx
}

// NewStore wraps a database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn() dbtx {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// WithTx runs fn against a transaction-bound store and commits only when
// fn returns nil. Nested calls reuse the outer transaction.
func (s *Store) WithTx(fn func(services.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{db: s.db, tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return services.ErrNotFound
	}
	return err
}

// Expenses

func (s *Store) CreateExpense(e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query := `INSERT INTO expenses (id, type, category, amount, currency, date, note, parent_expense_id, is_installment)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING created_at, updated_at`
	return s.conn().QueryRow(query,
		e.ID, e.Type, e.Category, e.Amount, e.Currency, e.Date, e.Note, e.ParentExpenseID, e.IsInstallment,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (s *Store) UpdateExpense(e *models.Expense) error {
	query := `UPDATE expenses
			  SET type = $2, category = $3, amount = $4, currency = $5, date = $6, note = $7,
			      parent_expense_id = $8, is_installment = $9, updated_at = NOW()
			  WHERE id = $1`
	res, err := s.conn().Exec(query,
		e.ID, e.Type, e.Category, e.Amount, e.Currency, e.Date, e.Note, e.ParentExpenseID, e.IsInstallment,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) DeleteExpense(id string) error {
	res, err := s.conn().Exec(`DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) GetExpense(id string) (*models.Expense, error) {
	e := &models.Expense{}
	query := `SELECT id, type, category, amount, currency, date, note, parent_expense_id, is_installment, created_at, updated_at
			  FROM expenses WHERE id = $1`
	err := s.conn().QueryRow(query, id).Scan(
		&e.ID, &e.Type, &e.Category, &e.Amount, &e.Currency, &e.Date, &e.Note,
		&e.ParentExpenseID, &e.IsInstallment, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (s *Store) ListExpenses() ([]*models.Expense, error) {
	query := `SELECT id, type, category, amount, currency, date, note, parent_expense_id, is_installment, created_at, updated_at
			  FROM expenses ORDER BY date DESC, created_at DESC`
	rows, err := s.conn().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(
			&e.ID, &e.Type, &e.Category, &e.Amount, &e.Currency, &e.Date, &e.Note,
			&e.ParentExpenseID, &e.IsInstallment, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Contracts

func (s *Store) CreateContract(ct *models.Contract) error {
	if ct.ID == "" {
		ct.ID = uuid.NewString()
	}
	query := `INSERT INTO membership_contracts (id, expense_id, total_amount, period_amount, period_type, day_of_week, day_of_month, start_date, end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING created_at, updated_at`
	return s.conn().QueryRow(query,
		ct.ID, ct.ExpenseID, ct.TotalAmount, ct.PeriodAmount, ct.PeriodType,
		ct.DayOfWeek, ct.DayOfMonth, ct.StartDate, ct.EndDate,
	).Scan(&ct.CreatedAt, &ct.UpdatedAt)
}

func (s *Store) UpdateContract(ct *models.Contract) error {
	query := `UPDATE membership_contracts
			  SET total_amount = $2, period_amount = $3, period_type = $4, day_of_week = $5,
			      day_of_month = $6, start_date = $7, end_date = $8, updated_at = NOW()
			  WHERE id = $1`
	res, err := s.conn().Exec(query,
		ct.ID, ct.TotalAmount, ct.PeriodAmount, ct.PeriodType,
		ct.DayOfWeek, ct.DayOfMonth, ct.StartDate, ct.EndDate,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) DeleteContract(id string) error {
	res, err := s.conn().Exec(`DELETE FROM membership_contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) GetContract(id string) (*models.Contract, error) {
	ct := &models.Contract{}
	query := `SELECT id, expense_id, total_amount, period_amount, period_type, day_of_week, day_of_month, start_date, end_date, created_at, updated_at
			  FROM membership_contracts WHERE id = $1`
	err := s.conn().QueryRow(query, id).Scan(
		&ct.ID, &ct.ExpenseID, &ct.TotalAmount, &ct.PeriodAmount, &ct.PeriodType,
		&ct.DayOfWeek, &ct.DayOfMonth, &ct.StartDate, &ct.EndDate, &ct.CreatedAt, &ct.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return ct, nil
}

func (s *Store) ListContracts() ([]*models.Contract, error) {
	query := `SELECT id, expense_id, total_amount, period_amount, period_type, day_of_week, day_of_month, start_date, end_date, created_at, updated_at
			  FROM membership_contracts ORDER BY start_date DESC, created_at DESC`
	rows, err := s.conn().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := []*models.Contract{}
	for rows.Next() {
		ct := &models.Contract{}
		if err := rows.Scan(
			&ct.ID, &ct.ExpenseID, &ct.TotalAmount, &ct.PeriodAmount, &ct.PeriodType,
			&ct.DayOfWeek, &ct.DayOfMonth, &ct.StartDate, &ct.EndDate, &ct.CreatedAt, &ct.UpdatedAt,
		); err != nil {
			return nil, err
		}
		contracts = append(contracts, ct)
	}
	return contracts, rows.Err()
}

// Charges

func (s *Store) CreateCharge(ch *models.Charge) error {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	query := `INSERT INTO charges (id, contract_id, expense_id, charge_date, amount, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING created_at, updated_at`
	return s.conn().QueryRow(query,
		ch.ID, ch.ContractID, ch.ExpenseID, ch.ChargeDate, ch.Amount, ch.Status,
	).Scan(&ch.CreatedAt, &ch.UpdatedAt)
}

func (s *Store) UpdateCharge(ch *models.Charge) error {
	query := `UPDATE charges
			  SET expense_id = $2, charge_date = $3, amount = $4, status = $5, updated_at = NOW()
			  WHERE id = $1`
	res, err := s.conn().Exec(query, ch.ID, ch.ExpenseID, ch.ChargeDate, ch.Amount, ch.Status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) GetCharge(id string) (*models.Charge, error) {
	ch := &models.Charge{}
	query := `SELECT id, contract_id, expense_id, charge_date, amount, status, created_at, updated_at
			  FROM charges WHERE id = $1`
	err := s.conn().QueryRow(query, id).Scan(
		&ch.ID, &ch.ContractID, &ch.ExpenseID, &ch.ChargeDate, &ch.Amount, &ch.Status, &ch.CreatedAt, &ch.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return ch, nil
}

func (s *Store) ChargesByContract(contractID string) ([]*models.Charge, error) {
	query := `SELECT id, contract_id, expense_id, charge_date, amount, status, created_at, updated_at
			  FROM charges WHERE contract_id = $1 ORDER BY charge_date`
	rows, err := s.conn().Query(query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	charges := []*models.Charge{}
	for rows.Next() {
		ch := &models.Charge{}
		if err := rows.Scan(
			&ch.ID, &ch.ContractID, &ch.ExpenseID, &ch.ChargeDate, &ch.Amount, &ch.Status, &ch.CreatedAt, &ch.UpdatedAt,
		); err != nil {
			return nil, err
		}
		charges = append(charges, ch)
	}
	return charges, rows.Err()
}

func (s *Store) ChargeByExpense(expenseID string) (*models.Charge, error) {
	ch := &models.Charge{}
	query := `SELECT id, contract_id, expense_id, charge_date, amount, status, created_at, updated_at
			  FROM charges WHERE expense_id = $1`
	err := s.conn().QueryRow(query, expenseID).Scan(
		&ch.ID, &ch.ContractID, &ch.ExpenseID, &ch.ChargeDate, &ch.Amount, &ch.Status, &ch.CreatedAt, &ch.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return ch, nil
}

func (s *Store) DeleteChargesByContract(contractID string) error {
	_, err := s.conn().Exec(`DELETE FROM charges WHERE contract_id = $1`, contractID)
	return err
}

// Activities

func (s *Store) CreateActivity(a *models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `INSERT INTO activities (id, type, date, distance, calculated_weight, note)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING created_at`
	return s.conn().QueryRow(query,
		a.ID, a.Type, a.Date, a.Distance, a.CalculatedWeight, a.Note,
	).Scan(&a.CreatedAt)
}

func (s *Store) DeleteActivity(id string) error {
	res, err := s.conn().Exec(`DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) ListActivities() ([]*models.Activity, error) {
	query := `SELECT id, type, date, distance, calculated_weight, note, created_at
			  FROM activities ORDER BY date DESC, created_at DESC`
	rows, err := s.conn().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []*models.Activity{}
	for rows.Next() {
		a := &models.Activity{}
		if err := rows.Scan(&a.ID, &a.Type, &a.Date, &a.Distance, &a.CalculatedWeight, &a.Note, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// Settings

func (s *Store) GetSetting(key string) (*models.Setting, error) {
	st := &models.Setting{}
	query := `SELECT key, value, description, updated_at FROM settings WHERE key = $1`
	err := s.conn().QueryRow(query, key).Scan(&st.Key, &st.Value, &st.Description, &st.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return st, nil
}

func (s *Store) PutSetting(setting *models.Setting) error {
	query := `INSERT INTO settings (key, value, description)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = NOW()`
	_, err := s.conn().Exec(query, setting.Key, setting.Value, setting.Description)
	return err
}

// requireRow converts a zero-row update or delete into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}
