package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/chenmq77/duckiki/app/models"
)

// ROIService aggregates expenses and weighted activity into two
// return-on-investment views: paid (realized spend only) and planned
// (full committed spend including unsettled future periods).
type ROIService struct {
	store Store
}

func NewROIService(store Store) *ROIService {
	return &ROIService{store: store}
}

// ROIPerspective is one ROI view. A negative ROIPercentage means the
// tracked activity has not yet paid for itself against the market price.
type ROIPerspective struct {
	TotalExpense  float64 `json:"total_expense"`
	AverageCost   float64 `json:"average_cost"`
	MoneySaved    float64 `json:"money_saved"`
	ROIPercentage float64 `json:"roi_percentage"`
}

// ROISummary is the full two-perspective report.
type ROISummary struct {
	TotalActivities      int            `json:"total_activities"`
	WeightedTotal        float64        `json:"weighted_total"`
	MarketReferencePrice float64        `json:"market_reference_price"`
	Paid                 ROIPerspective `json:"paid"`
	Planned              ROIPerspective `json:"planned"`
}

// Summary computes both perspectives from the current store state.
//
// Paid counts one-off expenses plus settled installment periods (a child
// expense whose charge is paid). Planned counts every top-level expense:
// one-offs and installment headers, i.e. the full committed spend.
func (s *ROIService) Summary() (*ROISummary, error) {
	price, err := s.MarketReferencePrice()
	if err != nil {
		return nil, err
	}

	activities, err := s.store.ListActivities()
	if err != nil {
		return nil, err
	}
	var weighted float64
	for _, a := range activities {
		weighted += a.CalculatedWeight
	}

	expenses, err := s.store.ListExpenses()
	if err != nil {
		return nil, err
	}

	var paidTotal, plannedTotal float64
	for _, e := range expenses {
		if e.IsChild() {
			charge, err := s.store.ChargeByExpense(e.ID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					// Orphaned child rows degrade gracefully: skip.
					continue
				}
				return nil, err
			}
			if charge.IsPaid() {
				paidTotal += e.Amount
			}
			continue
		}
		plannedTotal += e.Amount
		if !e.IsInstallment {
			paidTotal += e.Amount
		}
	}

	return &ROISummary{
		TotalActivities:      len(activities),
		WeightedTotal:        round2(weighted),
		MarketReferencePrice: price,
		Paid:                 perspective(paidTotal, weighted, price),
		Planned:              perspective(plannedTotal, weighted, price),
	}, nil
}

func perspective(total, weighted, price float64) ROIPerspective {
	var avgCost, saved, roi float64
	if weighted > 0 {
		avgCost = total / weighted
		saved = (price - avgCost) * weighted
	}
	if total > 0 {
		roi = saved / total * 100
	}
	return ROIPerspective{
		TotalExpense:  round2(total),
		AverageCost:   round2(avgCost),
		MoneySaved:    round2(saved),
		ROIPercentage: round2(roi),
	}
}

// MarketReferencePrice reads the configured reference price, falling back
// to the default when no setting row exists.
func (s *ROIService) MarketReferencePrice() (float64, error) {
	setting, err := s.store.GetSetting(models.SettingMarketReferencePrice)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.DefaultMarketReferencePrice, nil
		}
		return 0, err
	}
	price, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid market reference price %q: %w", setting.Value, err)
	}
	return price, nil
}

// SetMarketReferencePrice stores a new reference price.
func (s *ROIService) SetMarketReferencePrice(price float64) error {
	if price <= 0 {
		return Validationf("price must be greater than 0")
	}
	return s.store.PutSetting(&models.Setting{
		Key:         models.SettingMarketReferencePrice,
		Value:       strconv.FormatFloat(price, 'f', -1, 64),
		Description: "Market price of a single session, used as the ROI break-even reference",
	})
}
