package services

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/chenmq77/duckiki/app/models"
)

// memStore is an in-memory Store for tests. Reads hand out copies and
// writes store copies, so service code only persists through the Update
// methods, like against a real database. WithTx snapshots the maps and
// restores them on error, mirroring transactional rollback.
type memStore struct {
	expenses   map[string]*models.Expense
	contracts  map[string]*models.Contract
	charges    map[string]*models.Charge
	activities map[string]*models.Activity
	settings   map[string]*models.Setting
}

func newMemStore() *memStore {
	return &memStore{
		expenses:   map[string]*models.Expense{},
		contracts:  map[string]*models.Contract{},
		charges:    map[string]*models.Charge{},
		activities: map[string]*models.Activity{},
		settings:   map[string]*models.Setting{},
	}
}

func (m *memStore) WithTx(fn func(Store) error) error {
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.expenses = snap.expenses
		m.contracts = snap.contracts
		m.charges = snap.charges
		m.activities = snap.activities
		m.settings = snap.settings
		return err
	}
	return nil
}

func (m *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, e := range m.expenses {
		snap.expenses[id] = cloneExpense(e)
	}
	for id, ct := range m.contracts {
		snap.contracts[id] = cloneContract(ct)
	}
	for id, ch := range m.charges {
		snap.charges[id] = cloneCharge(ch)
	}
	for id, a := range m.activities {
		clone := *a
		snap.activities[id] = &clone
	}
	for key, s := range m.settings {
		clone := *s
		snap.settings[key] = &clone
	}
	return snap
}

func cloneExpense(e *models.Expense) *models.Expense {
	clone := *e
	if e.ParentExpenseID != nil {
		v := *e.ParentExpenseID
		clone.ParentExpenseID = &v
	}
	return &clone
}

func cloneContract(ct *models.Contract) *models.Contract {
	clone := *ct
	if ct.DayOfWeek != nil {
		v := *ct.DayOfWeek
		clone.DayOfWeek = &v
	}
	if ct.DayOfMonth != nil {
		v := *ct.DayOfMonth
		clone.DayOfMonth = &v
	}
	return &clone
}

func cloneCharge(ch *models.Charge) *models.Charge {
	clone := *ch
	if ch.ExpenseID != nil {
		v := *ch.ExpenseID
		clone.ExpenseID = &v
	}
	return &clone
}

func (m *memStore) CreateExpense(e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.expenses[e.ID] = cloneExpense(e)
	return nil
}

func (m *memStore) UpdateExpense(e *models.Expense) error {
	if _, ok := m.expenses[e.ID]; !ok {
		return ErrNotFound
	}
	m.expenses[e.ID] = cloneExpense(e)
	return nil
}

// DeleteExpense refuses to remove a row that charges or contracts still
// reference, the same way the foreign keys in PostgreSQL would.
func (m *memStore) DeleteExpense(id string) error {
	if _, ok := m.expenses[id]; !ok {
		return ErrNotFound
	}
	for _, ch := range m.charges {
		if ch.ExpenseID != nil && *ch.ExpenseID == id {
			return fmt.Errorf("expense %s is still referenced by charge %s", id, ch.ID)
		}
	}
	for _, ct := range m.contracts {
		if ct.ExpenseID == id {
			return fmt.Errorf("expense %s is still referenced by contract %s", id, ct.ID)
		}
	}
	delete(m.expenses, id)
	return nil
}

func (m *memStore) GetExpense(id string) (*models.Expense, error) {
	e, ok := m.expenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneExpense(e), nil
}

func (m *memStore) ListExpenses() ([]*models.Expense, error) {
	out := []*models.Expense{}
	for _, e := range m.expenses {
		out = append(out, cloneExpense(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memStore) CreateContract(ct *models.Contract) error {
	if ct.ID == "" {
		ct.ID = uuid.NewString()
	}
	m.contracts[ct.ID] = cloneContract(ct)
	return nil
}

func (m *memStore) UpdateContract(ct *models.Contract) error {
	if _, ok := m.contracts[ct.ID]; !ok {
		return ErrNotFound
	}
	m.contracts[ct.ID] = cloneContract(ct)
	return nil
}

func (m *memStore) DeleteContract(id string) error {
	if _, ok := m.contracts[id]; !ok {
		return ErrNotFound
	}
	delete(m.contracts, id)
	return nil
}

func (m *memStore) GetContract(id string) (*models.Contract, error) {
	ct, ok := m.contracts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneContract(ct), nil
}

func (m *memStore) ListContracts() ([]*models.Contract, error) {
	out := []*models.Contract{}
	for _, ct := range m.contracts {
		out = append(out, cloneContract(ct))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (m *memStore) CreateCharge(ch *models.Charge) error {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	m.charges[ch.ID] = cloneCharge(ch)
	return nil
}

func (m *memStore) UpdateCharge(ch *models.Charge) error {
	if _, ok := m.charges[ch.ID]; !ok {
		return ErrNotFound
	}
	m.charges[ch.ID] = cloneCharge(ch)
	return nil
}

func (m *memStore) GetCharge(id string) (*models.Charge, error) {
	ch, ok := m.charges[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCharge(ch), nil
}

func (m *memStore) ChargesByContract(contractID string) ([]*models.Charge, error) {
	out := []*models.Charge{}
	for _, ch := range m.charges {
		if ch.ContractID == contractID {
			out = append(out, cloneCharge(ch))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChargeDate.Before(out[j].ChargeDate) })
	return out, nil
}

func (m *memStore) ChargeByExpense(expenseID string) (*models.Charge, error) {
	for _, ch := range m.charges {
		if ch.ExpenseID != nil && *ch.ExpenseID == expenseID {
			return cloneCharge(ch), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) DeleteChargesByContract(contractID string) error {
	for id, ch := range m.charges {
		if ch.ContractID == contractID {
			delete(m.charges, id)
		}
	}
	return nil
}

func (m *memStore) CreateActivity(a *models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	clone := *a
	m.activities[a.ID] = &clone
	return nil
}

func (m *memStore) DeleteActivity(id string) error {
	if _, ok := m.activities[id]; !ok {
		return ErrNotFound
	}
	delete(m.activities, id)
	return nil
}

func (m *memStore) ListActivities() ([]*models.Activity, error) {
	out := []*models.Activity{}
	for _, a := range m.activities {
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memStore) GetSetting(key string) (*models.Setting, error) {
	s, ok := m.settings[key]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (m *memStore) PutSetting(s *models.Setting) error {
	clone := *s
	m.settings[s.Key] = &clone
	return nil
}
