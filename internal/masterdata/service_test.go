package masterdata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	params    []Parameter
	paramsErr error
	kinds     []CostKind
	kindsErr  error
}

func (f *fakeRepo) Parameters(ctx context.Context, year int) ([]Parameter, error) {
	if f.paramsErr != nil {
		return nil, f.paramsErr
	}
	return f.params, nil
}

func (f *fakeRepo) CostKinds(ctx context.Context) ([]CostKind, error) {
	if f.kindsErr != nil {
		return nil, f.kindsErr
	}
	return f.kinds, nil
}

func TestRatesDefaultsWhenYearUnconfigured(t *testing.T) {
	svc := NewService(&fakeRepo{})

	rates, err := svc.Rates(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, DefaultBonusRate, rates.Bonus)
	assert.Equal(t, DefaultTaxRate, rates.Tax)
}

func TestRatesUsesConfiguredValues(t *testing.T) {
	svc := NewService(&fakeRepo{params: []Parameter{
		{Year: 2025, Code: ParamCodeBonus, Value: 0.2},
		{Year: 2025, Code: ParamCodeTax, Value: 0.1},
		{Year: 2025, Code: "Other", Value: 9},
	}})

	rates, err := svc.Rates(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 0.2, rates.Bonus)
	assert.Equal(t, 0.1, rates.Tax)
}

func TestRatesPropagatesRepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{paramsErr: errors.New("boom")})

	_, err := svc.Rates(context.Background(), 2025)
	require.Error(t, err)
}

func TestSalaryKindIDResolvesSingleMatch(t *testing.T) {
	svc := NewService(&fakeRepo{kinds: []CostKind{
		{ID: 3, Name: "Rent"},
		{ID: 7, Name: "Salary"},
	}})

	id, err := svc.SalaryKindID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestSalaryKindIDFailsOnZeroMatches(t *testing.T) {
	svc := NewService(&fakeRepo{kinds: []CostKind{{ID: 3, Name: "Rent"}}})

	_, err := svc.SalaryKindID(context.Background())
	require.ErrorIs(t, err, ErrSalaryKindUnresolved)
}

func TestSalaryKindIDFailsOnMultipleMatches(t *testing.T) {
	svc := NewService(&fakeRepo{kinds: []CostKind{
		{ID: 7, Name: "Salary"},
		{ID: 8, Name: "Salary"},
	}})

	_, err := svc.SalaryKindID(context.Background())
	require.ErrorIs(t, err, ErrSalaryKindUnresolved)
}
