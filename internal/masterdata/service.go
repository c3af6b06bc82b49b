package masterdata

import (
	"context"
	"fmt"
)

// Service resolves provision rates and the salary cost kind from reference
// data.
type Service struct {
	repo Repository
}

// NewService wires the reference data repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Rates returns the bonus and tax fractions configured for the year, falling
// back to the built-in defaults when the parameter store has no row.
func (s *Service) Rates(ctx context.Context, year int) (Rates, error) {
	params, err := s.repo.Parameters(ctx, year)
	if err != nil {
		return Rates{}, err
	}
	rates := Rates{Bonus: DefaultBonusRate, Tax: DefaultTaxRate}
	for _, p := range params {
		switch p.Code {
		case ParamCodeBonus:
			rates.Bonus = p.Value
		case ParamCodeTax:
			rates.Tax = p.Value
		}
	}
	return rates, nil
}

// SalaryKindID resolves the single cost kind named "Salary". Zero or multiple
// matches surface as ErrSalaryKindUnresolved.
func (s *Service) SalaryKindID(ctx context.Context) (int64, error) {
	kinds, err := s.repo.CostKinds(ctx)
	if err != nil {
		return 0, err
	}
	var (
		id      int64
		matches int
	)
	for _, kind := range kinds {
		if kind.Name == salaryKindName {
			id = kind.ID
			matches++
		}
	}
	if matches != 1 {
		return 0, fmt.Errorf("%w: %d kinds named %q", ErrSalaryKindUnresolved, matches, salaryKindName)
	}
	return id, nil
}
