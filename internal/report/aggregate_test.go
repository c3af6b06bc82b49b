package report

import "testing"

func ptr(id int64) *int64 { return &id }

func TestAggregateRevenueGroupsByEntityAndPeriod(t *testing.T) {
	rows := []RevenueRow{
		{Year: 2025, Month: 1, EntityID: ptr(1), EntityCode: "A001", Effort: 4, Amount: 400},
		{Year: 2025, Month: 1, EntityID: ptr(1), EntityCode: "A001", Effort: 6, Amount: 600},
		{Year: 2025, Month: 1, EntityID: ptr(2), EntityCode: "B001", Effort: 2, Amount: 150},
		{Year: 2025, Month: 2, EntityID: ptr(1), EntityCode: "A001", Effort: 3, Amount: 300},
	}
	agg := aggregateRevenue(rows)

	jan := PeriodKey{Year: 2025, Month: 1}
	if got := agg.revenueByPeriod[jan]; got != 1150 {
		t.Fatalf("expected january revenue 1150 got %v", got)
	}
	if got := agg.effortByPeriod[jan]; got != 12 {
		t.Fatalf("expected january effort 12 got %v", got)
	}
	acc := agg.byEntity[EntityPeriodKey{Year: 2025, Month: 1, EntityID: 1}]
	if acc.Effort != 10 || acc.Revenue != 1000 {
		t.Fatalf("expected entity 1 effort 10 revenue 1000 got %v/%v", acc.Effort, acc.Revenue)
	}
	if acc.EntityCode != "A001" {
		t.Fatalf("expected entity code A001 got %q", acc.EntityCode)
	}
	if len(agg.order) != 3 {
		t.Fatalf("expected 3 entity period keys got %d", len(agg.order))
	}
}

func TestAggregateRevenueMissingEntityCountsInPeriodOnly(t *testing.T) {
	rows := []RevenueRow{
		{Year: 2025, Month: 1, EntityID: ptr(1), EntityCode: "A001", Effort: 5, Amount: 500},
		{Year: 2025, Month: 1, EntityID: nil, Effort: 3, Amount: 250},
	}
	agg := aggregateRevenue(rows)

	jan := PeriodKey{Year: 2025, Month: 1}
	if got := agg.effortByPeriod[jan]; got != 8 {
		t.Fatalf("expected period effort 8 got %v", got)
	}
	if got := agg.revenueByPeriod[jan]; got != 750 {
		t.Fatalf("expected period revenue 750 got %v", got)
	}
	if len(agg.byEntity) != 1 {
		t.Fatalf("expected one entity bucket got %d", len(agg.byEntity))
	}
}

func TestAggregateRevenueBlankCodeFallsBack(t *testing.T) {
	agg := aggregateRevenue([]RevenueRow{
		{Year: 2025, Month: 3, EntityID: ptr(9), Effort: 1, Amount: 10},
	})
	acc := agg.byEntity[EntityPeriodKey{Year: 2025, Month: 3, EntityID: 9}]
	if acc.EntityCode != "N/A" {
		t.Fatalf("expected fallback code N/A got %q", acc.EntityCode)
	}
}

func TestAggregateSalaryKeepsUnallocatedInPeriodTotal(t *testing.T) {
	rows := []SalaryRow{
		{Year: 2025, Month: 1, EntityID: ptr(1), Amount: 30000},
		{Year: 2025, Month: 1, EntityID: nil, Amount: 5000},
		{Year: 2025, Month: 2, EntityID: ptr(1), Amount: 31000},
	}
	agg := aggregateSalary(rows)

	if got := agg.byPeriod[PeriodKey{Year: 2025, Month: 1}]; got != 35000 {
		t.Fatalf("expected period salary 35000 got %v", got)
	}
	if got := agg.byEntity[EntityPeriodKey{Year: 2025, Month: 1, EntityID: 1}]; got != 30000 {
		t.Fatalf("expected entity salary 30000 got %v", got)
	}
	if len(agg.byEntity) != 2 {
		t.Fatalf("expected 2 entity buckets got %d", len(agg.byEntity))
	}
}

func TestAggregateCostFiltersAndTracksSalaryKind(t *testing.T) {
	const salaryKind = int64(7)
	rows := []CostRow{
		{Year: 2025, Month: 1, Amount: 150000, IsCost: true, KindID: 3},
		{Year: 2025, Month: 1, Amount: 50000, IsCost: true, KindID: salaryKind},
		{Year: 2025, Month: 1, Amount: 99999, IsCost: false, KindID: 3},
	}
	agg := aggregateCost(rows, salaryKind)

	jan := PeriodKey{Year: 2025, Month: 1}
	if got := agg.byPeriod[jan]; got != 200000 {
		t.Fatalf("expected period cost 200000 got %v", got)
	}
	if got := agg.salaryKindByPeriod[jan]; got != 50000 {
		t.Fatalf("expected salary kind cost 50000 got %v", got)
	}
}
