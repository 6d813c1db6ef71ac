package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenmq77/duckiki/app/models"
)

func TestExpenseCreate(t *testing.T) {
	st := newMemStore()
	svc := NewExpenseService(st)

	e, err := svc.Create(ExpenseInput{
		Type:     "equipment",
		Category: "Goggles",
		Amount:   45.50,
		Date:     day(2025, time.March, 3),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "NZD", e.Currency, "currency defaults when omitted")
	assert.False(t, e.IsInstallment)
	assert.Nil(t, e.ParentExpenseID)

	got, err := svc.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
}

func TestExpenseCreateValidation(t *testing.T) {
	svc := NewExpenseService(newMemStore())

	cases := []struct {
		name string
		in   ExpenseInput
	}{
		{"missing type", ExpenseInput{Amount: 10, Date: day(2025, time.March, 3)}},
		{"zero amount", ExpenseInput{Type: "equipment", Date: day(2025, time.March, 3)}},
		{"negative amount", ExpenseInput{Type: "equipment", Amount: -5, Date: day(2025, time.March, 3)}},
		{"missing date", ExpenseInput{Type: "equipment", Amount: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.in)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestExpenseGetNotFound(t *testing.T) {
	svc := NewExpenseService(newMemStore())
	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseUpdateRejectsHeaderAmount(t *testing.T) {
	svc, st := newContractFixture(t)
	res, err := svc.Create(weeklyMembershipInput())
	require.NoError(t, err)

	expSvc := NewExpenseService(st)
	_, err = expSvc.Update(res.HeaderExpense.ID, ExpenseUpdate{Amount: f64Ptr(999)})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	header, err := st.GetExpense(res.HeaderExpense.ID)
	require.NoError(t, err)
	assert.InDelta(t, 884.0, header.Amount, 0.001)

	// Non-amount edits on a header still go through.
	note := "renewed for 2025"
	updated, err := expSvc.Update(res.HeaderExpense.ID, ExpenseUpdate{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, note, updated.Note)
}

func TestExpenseChildAmountEditCascades(t *testing.T) {
	svc, st := newContractFixture(t)
	res, err := svc.Create(weeklyMembershipInput())
	require.NoError(t, err)

	charges, err := st.ChargesByContract(res.Contract.ID)
	require.NoError(t, err)
	require.NotNil(t, charges[0].ExpenseID)

	expSvc := NewExpenseService(st)
	_, err = expSvc.Update(*charges[0].ExpenseID, ExpenseUpdate{Amount: f64Ptr(12)})
	require.NoError(t, err)

	charge, err := st.GetCharge(charges[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, charge.Amount, 0.001, "the charge follows its child expense")

	contract, err := st.GetContract(res.Contract.ID)
	require.NoError(t, err)
	assert.InDelta(t, 879.0, contract.TotalAmount, 0.001, "51x17 + 12")
	requireTotalsInSync(t, st, res.Contract.ID)
}

func TestExpenseDeleteChildRevertsCharge(t *testing.T) {
	svc, st := newContractFixture(t)
	res, err := svc.Create(weeklyMembershipInput())
	require.NoError(t, err)

	charges, err := st.ChargesByContract(res.Contract.ID)
	require.NoError(t, err)
	childID := *charges[0].ExpenseID

	expSvc := NewExpenseService(st)
	require.NoError(t, expSvc.Delete(childID))

	charge, err := st.GetCharge(charges[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChargePending, charge.Status)
	assert.Nil(t, charge.ExpenseID)
	_, err = st.GetExpense(childID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseDeleteHeaderRejected(t *testing.T) {
	svc, st := newContractFixture(t)
	res, err := svc.Create(weeklyMembershipInput())
	require.NoError(t, err)

	expSvc := NewExpenseService(st)
	err = expSvc.Delete(res.HeaderExpense.ID)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = st.GetExpense(res.HeaderExpense.ID)
	assert.NoError(t, err, "the header survives the rejected delete")
}
