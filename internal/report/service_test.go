package report

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	revenue []RevenueRow
	salary  []SalaryRow
	costs   []CostRow
	rates   []BonusRateRow

	revenueErr error
	salaryErr  error
	costsErr   error
	ratesErr   error

	revenueCalls int
}

func (f *fakeRepo) RevenueRows(ctx context.Context, dim Dimension, year int, months []int) ([]RevenueRow, error) {
	f.revenueCalls++
	if f.revenueErr != nil {
		return nil, f.revenueErr
	}
	return append([]RevenueRow(nil), f.revenue...), nil
}

func (f *fakeRepo) SalaryRows(ctx context.Context, dim Dimension, year int, months []int) ([]SalaryRow, error) {
	if f.salaryErr != nil {
		return nil, f.salaryErr
	}
	return append([]SalaryRow(nil), f.salary...), nil
}

func (f *fakeRepo) CostRows(ctx context.Context, year int, months []int) ([]CostRow, error) {
	if f.costsErr != nil {
		return nil, f.costsErr
	}
	return append([]CostRow(nil), f.costs...), nil
}

func (f *fakeRepo) BonusRates(ctx context.Context, dim Dimension, year int) ([]BonusRateRow, error) {
	if f.ratesErr != nil {
		return nil, f.ratesErr
	}
	return append([]BonusRateRow(nil), f.rates...), nil
}

type fakeMaster struct {
	rates         Rates
	ratesErr      error
	salaryKind    int64
	salaryKindErr error
}

func (f *fakeMaster) Rates(ctx context.Context, year int) (Rates, error) {
	if f.ratesErr != nil {
		return Rates{}, f.ratesErr
	}
	return f.rates, nil
}

func (f *fakeMaster) SalaryKindID(ctx context.Context) (int64, error) {
	if f.salaryKindErr != nil {
		return 0, f.salaryKindErr
	}
	return f.salaryKind, nil
}

func workedRepo() *fakeRepo {
	return &fakeRepo{
		revenue: []RevenueRow{
			{Year: 2025, Month: 1, EntityID: ptr(1), EntityCode: "D001", Effort: 10, Amount: 1000000},
		},
		salary: []SalaryRow{
			{Year: 2025, Month: 1, EntityID: ptr(1), Amount: 30000},
		},
		costs: []CostRow{
			{Year: 2025, Month: 1, Amount: 150000, IsCost: true, KindID: 3},
			{Year: 2025, Month: 1, Amount: 50000, IsCost: true, KindID: 7},
		},
		rates: []BonusRateRow{
			{Year: 2025, EntityID: 1, RatePerEffort: 2},
		},
	}
}

func workedMaster() *fakeMaster {
	return &fakeMaster{rates: Rates{Bonus: 0.15, Tax: 0.05}, salaryKind: 7}
}

func TestServiceBuildWorkedScenario(t *testing.T) {
	svc := NewService(workedRepo(), workedMaster(), nil)

	rep, err := svc.Build(context.Background(), Query{Dimension: DimensionDivision, Year: 2025, Months: []int{1}})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)

	row := rep.Rows[0]
	assert.Equal(t, "D001", row.EntityCode)
	assert.InDelta(t, 217480, row.OverheadCost, 1e-6)
	assert.InDelta(t, 20, row.BonusValue, 1e-9)
	assert.InDelta(t, 30000, row.SalaryCost, 1e-9)
	assert.InDelta(t, 247500, row.TotalCost, 1e-6)
	assert.InDelta(t, 752500, row.Profit, 1e-6)
	require.NotNil(t, row.ProfitPercent)
	assert.InDelta(t, 75.25, *row.ProfitPercent, 1e-9)

	assert.InDelta(t, 1000000, rep.Totals.Revenue, 1e-9)
	assert.InDelta(t, 752500, rep.Totals.Profit, 1e-6)
}

func TestServiceBuildRevenueConservation(t *testing.T) {
	repo := workedRepo()
	repo.revenue = append(repo.revenue,
		RevenueRow{Year: 2025, Month: 1, EntityID: ptr(2), EntityCode: "D002", Effort: 5, Amount: 250000},
		RevenueRow{Year: 2025, Month: 1, EntityID: ptr(2), EntityCode: "D002", Effort: 1, Amount: 50000},
	)
	svc := NewService(repo, workedMaster(), nil)

	rep, err := svc.Build(context.Background(), Query{Dimension: DimensionDivision, Year: 2025, Months: []int{1}})
	require.NoError(t, err)

	var revenue, effort float64
	for _, row := range rep.Rows {
		revenue += row.Revenue
		effort += row.Effort
	}
	assert.InDelta(t, 1300000, revenue, 1e-9)
	assert.InDelta(t, 16, effort, 1e-9)
}

func TestServiceBuildFailsFastOnFetchError(t *testing.T) {
	repo := workedRepo()
	repo.costsErr = errors.New("connection reset")
	svc := NewService(repo, workedMaster(), nil)

	_, err := svc.Build(context.Background(), Query{Dimension: DimensionDivision, Year: 2025, Months: []int{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch cost rows")
}

func TestServiceBuildSurfacesSalaryKindError(t *testing.T) {
	master := workedMaster()
	master.salaryKindErr = errors.New("salary cost kind unresolved")
	svc := NewService(workedRepo(), master, nil)

	_, err := svc.Build(context.Background(), Query{Dimension: DimensionDivision, Year: 2025, Months: []int{1}})
	require.Error(t, err)
}

func TestServiceBuildRejectsInvalidQueries(t *testing.T) {
	svc := NewService(workedRepo(), workedMaster(), nil)
	ctx := context.Background()

	_, err := svc.Build(ctx, Query{Dimension: "region", Year: 2025, Months: []int{1}})
	require.ErrorIs(t, err, ErrUnknownDimension)

	_, err = svc.Build(ctx, Query{Dimension: DimensionDivision, Year: 1850, Months: []int{1}})
	require.Error(t, err)

	_, err = svc.Build(ctx, Query{Dimension: DimensionDivision, Year: 2025})
	require.Error(t, err)

	_, err = svc.Build(ctx, Query{Dimension: DimensionDivision, Year: 2025, Months: []int{13}})
	require.Error(t, err)
}

func TestServiceBuildIdempotent(t *testing.T) {
	svc := NewService(workedRepo(), workedMaster(), nil)
	q := Query{Dimension: DimensionDivision, Year: 2025, Months: []int{1}}

	first, err := svc.Build(context.Background(), q)
	require.NoError(t, err)
	second, err := svc.Build(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestServiceBuildUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	repo := workedRepo()
	svc := NewService(repo, workedMaster(), NewCache(client, time.Minute))
	q := Query{Dimension: DimensionDivision, Year: 2025, Months: []int{1}}

	first, err := svc.Build(context.Background(), q)
	require.NoError(t, err)
	second, err := svc.Build(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.revenueCalls)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestServiceBuildCacheBumpForcesRebuild(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	repo := workedRepo()
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, workedMaster(), cache)
	q := Query{Dimension: DimensionDivision, Year: 2025, Months: []int{1}}

	_, err := svc.Build(context.Background(), q)
	require.NoError(t, err)
	require.NoError(t, cache.Bump(context.Background()))
	_, err = svc.Build(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.revenueCalls)
}
