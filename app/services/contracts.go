package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/chenmq77/duckiki/app/models"
)

const dateLayout = "2006-01-02"

// ContractService owns the installment contract lifecycle: creating a
// contract materializes its full charge schedule up front, updating one
// regenerates the schedule while preserving payment history by date, and
// deleting one cascades through every linked record. Now is injectable so
// the paid/pending classification is deterministic under test.
type ContractService struct {
	store Store
	Now   func() time.Time
}

func NewContractService(store Store) *ContractService {
	return &ContractService{store: store, Now: time.Now}
}

// ContractInput carries the fields needed to create a contract.
type ContractInput struct {
	Type         string
	Category     string
	Currency     string
	Note         string
	TotalAmount  float64
	PeriodAmount float64
	PeriodType   models.PeriodType
	DayOfWeek    *int
	DayOfMonth   *int
	StartDate    time.Time
	EndDate      time.Time
}

// ContractUpdate carries partial changes; nil fields stay untouched.
type ContractUpdate struct {
	TotalAmount  *float64
	PeriodAmount *float64
	PeriodType   *models.PeriodType
	DayOfWeek    *int
	DayOfMonth   *int
	StartDate    *time.Time
	EndDate      *time.Time
}

// ContractResult is returned by every mutating lifecycle operation.
type ContractResult struct {
	Contract      *models.Contract `json:"contract"`
	HeaderExpense *models.Expense  `json:"parent_expense"`
	ChargesCount  int              `json:"charges_count"`
	PaidCount     int              `json:"paid_count"`
	PendingCount  int              `json:"pending_count"`
}

// ContractDetail pairs a contract with its charges ordered by date.
type ContractDetail struct {
	Contract *models.Contract `json:"contract"`
	Charges  []*models.Charge `json:"charges"`
}

// ConvertInput carries the schedule for converting a lump-sum expense.
type ConvertInput struct {
	PeriodAmount float64
	PeriodType   models.PeriodType
	DayOfWeek    *int
	DayOfMonth   *int
	EndDate      time.Time
}

// ChargeUpdate carries a per-charge edit; nil fields stay untouched.
type ChargeUpdate struct {
	Amount *float64
	Status *models.ChargeStatus
}

// Create validates the input, creates the header expense and contract,
// and materializes every charge in the schedule. Charges dated on or
// before today are settled immediately with a child expense. The whole
// operation runs in one transaction; a partial schedule is never
// persisted.
func (s *ContractService) Create(in ContractInput) (*ContractResult, error) {
	if in.Type == "" {
		return nil, Validationf("type is required")
	}
	if in.TotalAmount <= 0 {
		return nil, Validationf("total_amount must be positive")
	}
	if in.PeriodAmount <= 0 {
		return nil, Validationf("period_amount must be positive")
	}
	if in.PeriodType == "" {
		in.PeriodType = models.PeriodWeekly
	}
	if in.Currency == "" {
		in.Currency = "NZD"
	}
	if err := validateSchedule(in.PeriodType, in.DayOfWeek, in.DayOfMonth, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	var res *ContractResult
	err := s.store.WithTx(func(st Store) error {
		header := &models.Expense{
			Type:          in.Type,
			Category:      in.Category,
			Amount:        in.TotalAmount,
			Currency:      in.Currency,
			Date:          in.StartDate,
			Note:          in.Note,
			IsInstallment: true,
		}
		if err := st.CreateExpense(header); err != nil {
			return err
		}

		contract := &models.Contract{
			ExpenseID:    header.ID,
			TotalAmount:  in.TotalAmount,
			PeriodAmount: in.PeriodAmount,
			PeriodType:   in.PeriodType,
			DayOfWeek:    in.DayOfWeek,
			DayOfMonth:   in.DayOfMonth,
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
		}
		if err := st.CreateContract(contract); err != nil {
			return err
		}

		counts, err := s.materializeCharges(st, contract, header, nil)
		if err != nil {
			return err
		}
		if err := syncContractTotals(st, contract, header); err != nil {
			return err
		}
		res = &ContractResult{
			Contract:      contract,
			HeaderExpense: header,
			ChargesCount:  counts.total,
			PaidCount:     counts.paid,
			PendingCount:  counts.pending,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// List returns all contracts.
func (s *ContractService) List() ([]*models.Contract, error) {
	return s.store.ListContracts()
}

// Get returns a contract and its charges ordered by charge date.
func (s *ContractService) Get(id string) (*ContractDetail, error) {
	contract, err := s.store.GetContract(id)
	if err != nil {
		return nil, err
	}
	charges, err := s.store.ChargesByContract(id)
	if err != nil {
		return nil, err
	}
	return &ContractDetail{Contract: contract, Charges: charges}, nil
}

// Update applies field changes, then discards and regenerates the full
// schedule under the new parameters. Dates that were already settled stay
// settled in the new schedule; their child expenses are recreated at the
// contract's period amount, so per-charge amount customizations do not
// survive regeneration.
func (s *ContractService) Update(id string, upd ContractUpdate) (*ContractResult, error) {
	var res *ContractResult
	err := s.store.WithTx(func(st Store) error {
		contract, err := st.GetContract(id)
		if err != nil {
			return err
		}
		header, err := st.GetExpense(contract.ExpenseID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("contract %s has no header expense: %w", id, err)
			}
			return err
		}

		if upd.TotalAmount != nil {
			contract.TotalAmount = *upd.TotalAmount
			header.Amount = *upd.TotalAmount
		}
		if upd.PeriodAmount != nil {
			contract.PeriodAmount = *upd.PeriodAmount
		}
		if upd.PeriodType != nil {
			contract.PeriodType = *upd.PeriodType
		}
		if upd.DayOfWeek != nil {
			contract.DayOfWeek = upd.DayOfWeek
		}
		if upd.DayOfMonth != nil {
			contract.DayOfMonth = upd.DayOfMonth
		}
		if upd.StartDate != nil {
			contract.StartDate = *upd.StartDate
			header.Date = *upd.StartDate
		}
		if upd.EndDate != nil {
			contract.EndDate = *upd.EndDate
		}

		// An anchor only makes sense for its own period type.
		switch contract.PeriodType {
		case models.PeriodWeekly:
			contract.DayOfMonth = nil
		case models.PeriodMonthly:
			contract.DayOfWeek = nil
		}

		if contract.PeriodAmount <= 0 {
			return Validationf("period_amount must be positive")
		}
		if err := validateSchedule(contract.PeriodType, contract.DayOfWeek, contract.DayOfMonth, contract.StartDate, contract.EndDate); err != nil {
			return err
		}

		// Capture which dates were settled before discarding anything, so
		// payment history survives the regeneration by date match.
		oldCharges, err := st.ChargesByContract(contract.ID)
		if err != nil {
			return err
		}
		paidDates := make(map[string]bool)
		var orphans []string
		for _, ch := range oldCharges {
			if ch.IsPaid() {
				paidDates[ch.ChargeDate.Format(dateLayout)] = true
			}
			if ch.ExpenseID != nil {
				orphans = append(orphans, *ch.ExpenseID)
			}
		}
		// Charges reference their child expenses, so they go first.
		if err := st.DeleteChargesByContract(contract.ID); err != nil {
			return err
		}
		for _, expenseID := range orphans {
			if err := st.DeleteExpense(expenseID); err != nil {
				return err
			}
		}

		if err := st.UpdateContract(contract); err != nil {
			return err
		}
		if err := st.UpdateExpense(header); err != nil {
			return err
		}

		counts, err := s.materializeCharges(st, contract, header, paidDates)
		if err != nil {
			return err
		}
		if err := syncContractTotals(st, contract, header); err != nil {
			return err
		}
		res = &ContractResult{
			Contract:      contract,
			HeaderExpense: header,
			ChargesCount:  counts.total,
			PaidCount:     counts.paid,
			PendingCount:  counts.pending,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes a contract and everything hanging off it. Referencing
// rows always go before referenced ones: charges first, then the child
// expenses they pointed at, then the contract, and finally the header
// expense. The traversal is explicit rather than left to database-level
// cascades so the behavior is identical across storage backends.
func (s *ContractService) Delete(id string) error {
	return s.store.WithTx(func(st Store) error {
		contract, err := st.GetContract(id)
		if err != nil {
			return err
		}
		charges, err := st.ChargesByContract(id)
		if err != nil {
			return err
		}
		if err := st.DeleteChargesByContract(id); err != nil {
			return err
		}
		for _, ch := range charges {
			if ch.ExpenseID != nil {
				if err := st.DeleteExpense(*ch.ExpenseID); err != nil {
					return err
				}
			}
		}
		if err := st.DeleteContract(id); err != nil {
			return err
		}
		return st.DeleteExpense(contract.ExpenseID)
	})
}

// ConvertToInstallment turns an existing lump-sum expense into an
// installment contract anchored at the expense's own date. The expense
// becomes the contract header and keeps its amount as the committed total.
func (s *ContractService) ConvertToInstallment(expenseID string, in ConvertInput) (*ContractResult, error) {
	if in.PeriodAmount <= 0 {
		return nil, Validationf("period_amount must be positive")
	}
	if in.PeriodType == "" {
		in.PeriodType = models.PeriodWeekly
	}

	var res *ContractResult
	err := s.store.WithTx(func(st Store) error {
		header, err := st.GetExpense(expenseID)
		if err != nil {
			return err
		}
		if header.IsInstallment {
			return Validationf("expense is already an installment contract")
		}
		if header.IsChild() {
			return Validationf("a settled installment period cannot be converted")
		}
		if err := validateSchedule(in.PeriodType, in.DayOfWeek, in.DayOfMonth, header.Date, in.EndDate); err != nil {
			return err
		}

		header.IsInstallment = true
		if err := st.UpdateExpense(header); err != nil {
			return err
		}

		contract := &models.Contract{
			ExpenseID:    header.ID,
			TotalAmount:  header.Amount,
			PeriodAmount: in.PeriodAmount,
			PeriodType:   in.PeriodType,
			DayOfWeek:    in.DayOfWeek,
			DayOfMonth:   in.DayOfMonth,
			StartDate:    header.Date,
			EndDate:      in.EndDate,
		}
		if err := st.CreateContract(contract); err != nil {
			return err
		}

		counts, err := s.materializeCharges(st, contract, header, nil)
		if err != nil {
			return err
		}
		if err := syncContractTotals(st, contract, header); err != nil {
			return err
		}
		res = &ContractResult{
			Contract:      contract,
			HeaderExpense: header,
			ChargesCount:  counts.total,
			PaidCount:     counts.paid,
			PendingCount:  counts.pending,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateCharge edits a single charge. An amount change cascades to the
// linked child expense and back up through the contract and header totals.
// A status change drives the settlement state machine: pending to paid
// creates the child expense, paid to pending deletes it.
func (s *ContractService) UpdateCharge(contractID, chargeID string, upd ChargeUpdate) (*models.Charge, error) {
	var out *models.Charge
	err := s.store.WithTx(func(st Store) error {
		charge, err := st.GetCharge(chargeID)
		if err != nil {
			return err
		}
		if charge.ContractID != contractID {
			return Validationf("charge %s does not belong to contract %s", chargeID, contractID)
		}
		contract, err := st.GetContract(contractID)
		if err != nil {
			return err
		}
		header, err := st.GetExpense(contract.ExpenseID)
		if err != nil {
			return err
		}

		if upd.Amount != nil {
			if *upd.Amount <= 0 {
				return Validationf("amount must be positive")
			}
			charge.Amount = *upd.Amount
			if charge.ExpenseID != nil {
				child, err := st.GetExpense(*charge.ExpenseID)
				if err != nil {
					return err
				}
				child.Amount = *upd.Amount
				if err := st.UpdateExpense(child); err != nil {
					return err
				}
			}
		}

		var orphan *string
		if upd.Status != nil && *upd.Status != charge.Status {
			switch *upd.Status {
			case models.ChargePaid:
				child := &models.Expense{
					Type:            header.Type,
					Category:        header.Category,
					Amount:          charge.Amount,
					Currency:        header.Currency,
					Date:            charge.ChargeDate,
					Note:            fmt.Sprintf("%s - backfill", categoryLabel(header)),
					ParentExpenseID: &header.ID,
				}
				if err := st.CreateExpense(child); err != nil {
					return err
				}
				charge.ExpenseID = &child.ID
				charge.Status = models.ChargePaid
			case models.ChargePending:
				orphan = charge.ExpenseID
				charge.ExpenseID = nil
				charge.Status = models.ChargePending
			default:
				return Validationf("unsupported charge status: %s", *upd.Status)
			}
		}

		if err := st.UpdateCharge(charge); err != nil {
			return err
		}
		// The cleared link must be persisted before the child goes away.
		if orphan != nil {
			if err := st.DeleteExpense(*orphan); err != nil {
				return err
			}
		}
		if err := syncContractTotals(st, contract, header); err != nil {
			return err
		}
		out = charge
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type chargeCounts struct {
	total   int
	paid    int
	pending int
}

// materializeCharges generates the schedule and persists one charge per
// date. A date is settled when it was settled before regeneration or when
// it is not after today; settled charges get a child expense carrying the
// contract's period amount.
func (s *ContractService) materializeCharges(st Store, contract *models.Contract, header *models.Expense, paidDates map[string]bool) (chargeCounts, error) {
	dates := contractChargeDates(contract)
	// Compare calendar dates, not instants: schedule dates are UTC
	// midnights while the clock runs in the server's zone.
	today := s.Now().Format(dateLayout)

	counts := chargeCounts{total: len(dates)}
	for _, d := range dates {
		charge := &models.Charge{
			ContractID: contract.ID,
			ChargeDate: d,
			Amount:     contract.PeriodAmount,
			Status:     models.ChargePending,
		}
		key := d.Format(dateLayout)
		if paidDates[key] || key <= today {
			counts.paid++
			child := &models.Expense{
				Type:            header.Type,
				Category:        header.Category,
				Amount:          contract.PeriodAmount,
				Currency:        header.Currency,
				Date:            d,
				Note:            fmt.Sprintf("%s - installment %d", categoryLabel(header), counts.paid),
				ParentExpenseID: &header.ID,
			}
			if err := st.CreateExpense(child); err != nil {
				return counts, err
			}
			charge.ExpenseID = &child.ID
			charge.Status = models.ChargePaid
		} else {
			counts.pending++
		}
		if err := st.CreateCharge(charge); err != nil {
			return counts, err
		}
	}
	return counts, nil
}

// syncContractTotals recomputes the contract total as the sum of its
// charge amounts and mirrors it onto the header expense. Every mutation
// path ends here so the three linked records cannot drift apart.
func syncContractTotals(st Store, contract *models.Contract, header *models.Expense) error {
	charges, err := st.ChargesByContract(contract.ID)
	if err != nil {
		return err
	}
	var total float64
	for _, ch := range charges {
		total += ch.Amount
	}
	total = round2(total)

	contract.TotalAmount = total
	if err := st.UpdateContract(contract); err != nil {
		return err
	}
	header.Amount = total
	return st.UpdateExpense(header)
}

func validateSchedule(periodType models.PeriodType, dayOfWeek, dayOfMonth *int, start, end time.Time) error {
	switch periodType {
	case models.PeriodWeekly:
		if dayOfWeek == nil {
			return Validationf("weekly contracts require day_of_week")
		}
		if *dayOfWeek < 0 || *dayOfWeek > 6 {
			return Validationf("day_of_week must be between 0 and 6, got %d", *dayOfWeek)
		}
	case models.PeriodMonthly:
		if dayOfMonth == nil {
			return Validationf("monthly contracts require day_of_month")
		}
		if *dayOfMonth < 1 || *dayOfMonth > 28 {
			return Validationf("day_of_month must be between 1 and 28, got %d", *dayOfMonth)
		}
	default:
		return Validationf("unsupported period type: %s", periodType)
	}
	if start.IsZero() || end.IsZero() {
		return Validationf("start_date and end_date are required")
	}
	if !start.Before(end) {
		return Validationf("start_date must be before end_date")
	}
	return nil
}

func contractChargeDates(ct *models.Contract) []time.Time {
	if ct.PeriodType == models.PeriodMonthly {
		return MonthlyChargeDates(ct.StartDate, ct.EndDate, *ct.DayOfMonth)
	}
	return WeeklyChargeDates(ct.StartDate, ct.EndDate, *ct.DayOfWeek)
}

func categoryLabel(header *models.Expense) string {
	if header.Category != "" {
		return header.Category
	}
	return "Installment"
}
