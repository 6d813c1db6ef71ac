package models

// PeriodType defines how a contract's charges recur.
type PeriodType string

const (
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// ChargeStatus defines the possible settlement states of a charge.
type ChargeStatus string

const (
	ChargePending ChargeStatus = "pending"
	ChargePaid    ChargeStatus = "paid"
)

// ActivityType defines the supported activity types.
type ActivityType string

const (
	ActivitySwimming ActivityType = "swimming"
)

// SettingMarketReferencePrice is the settings key holding the market price
// of a single session, used as the break-even reference in ROI figures.
const SettingMarketReferencePrice = "market_reference_price"

// DefaultMarketReferencePrice applies when no setting row exists.
const DefaultMarketReferencePrice = 50.0
