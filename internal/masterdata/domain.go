package masterdata

import "errors"

// Parameter codes recognised by the report engine.
const (
	ParamCodeTax   = "Tax"
	ParamCodeBonus = "Bonus"
)

// Defaults applied when the parameter store has no row for a year.
const (
	DefaultBonusRate = 0.15
	DefaultTaxRate   = 0.05
)

// salaryKindName is the cost kind whose bookings feed the bonus provision.
const salaryKindName = "Salary"

// ErrSalaryKindUnresolved indicates the cost kind reference set does not
// contain exactly one salary kind. This is a configuration error and fails the
// report build instead of being silently ignored.
var ErrSalaryKindUnresolved = errors.New("masterdata: salary cost kind unresolved")

// Parameter is one key/value row of the per-year parameter store.
type Parameter struct {
	Year  int
	Code  string
	Value float64
}

// CostKind is one entry of the cost kind reference set.
type CostKind struct {
	ID   int64
	Name string
}

// Rates bundles the provision fractions resolved for one year.
type Rates struct {
	Bonus float64
	Tax   float64
}
