package report

import (
	"errors"
	"fmt"
)

// Dimension selects the organizational axis a grouped report is keyed on.
type Dimension string

// Supported report dimensions.
const (
	DimensionDivision Dimension = "division"
	DimensionCompany  Dimension = "company"
	DimensionCustomer Dimension = "customer"
)

// ErrUnknownDimension indicates an unsupported report dimension.
var ErrUnknownDimension = errors.New("report: unknown dimension")

// ParseDimension maps a path or query token onto a Dimension.
func ParseDimension(raw string) (Dimension, error) {
	switch Dimension(raw) {
	case DimensionDivision, DimensionCompany, DimensionCustomer:
		return Dimension(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, raw)
}

// PeriodKey identifies one (year, month) bucket.
type PeriodKey struct {
	Year  int
	Month int
}

// EntityPeriodKey identifies one entity within one period.
type EntityPeriodKey struct {
	Year     int
	Month    int
	EntityID int64
}

// Period strips the entity component off the key.
func (k EntityPeriodKey) Period() PeriodKey {
	return PeriodKey{Year: k.Year, Month: k.Month}
}

// RevenueRow is one billed-revenue line. EntityID carries the dimension the
// report was requested on and is nil when the source row has no value there.
type RevenueRow struct {
	Year       int
	Month      int
	EntityID   *int64
	EntityCode string
	Effort     float64
	Amount     float64
}

// SalaryRow is one direct payroll cost line. A nil EntityID marks the
// unallocated bucket: counted in period totals, never in an entity total.
type SalaryRow struct {
	Year     int
	Month    int
	EntityID *int64
	Amount   float64
}

// CostRow is one generic operating cost line. Only rows flagged IsCost
// participate in aggregation.
type CostRow struct {
	Year   int
	Month  int
	Amount float64
	IsCost bool
	KindID int64
}

// BonusRateRow carries the flat per-effort bonus rate of one entity for one
// year.
type BonusRateRow struct {
	Year          int
	EntityID      int64
	RatePerEffort float64
}

// Query is the filter a grouped report is built for.
type Query struct {
	Dimension Dimension
	Year      int
	Months    []int
}

// Rates are the provision fractions applied during overhead calculation.
type Rates struct {
	Bonus float64
	Tax   float64
}

// Row is one line of the grouped report.
type Row struct {
	Year         int
	Month        int
	EntityID     int64
	EntityCode   string
	Effort       float64
	Revenue      float64
	SalaryCost   float64
	OverheadCost float64
	BonusValue   float64
	TotalCost    float64
	Profit       float64
	// ProfitPercent is nil when Revenue is zero.
	ProfitPercent *float64
}

// Totals aggregates the full result set the same way a single row is derived.
type Totals struct {
	Effort        float64
	Revenue       float64
	SalaryCost    float64
	OverheadCost  float64
	BonusValue    float64
	TotalCost     float64
	Profit        float64
	ProfitPercent *float64
}

// Report is the assembled output of one build.
type Report struct {
	Query  Query
	Rows   []Row
	Totals Totals
}
