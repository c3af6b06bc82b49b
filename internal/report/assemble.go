package report

import "sort"

// codeComparer orders entity codes; the default is case-sensitive ordinal.
type codeComparer func(a, b string) int

func ordinalCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// assemble joins the aggregates into sorted report rows. Iteration follows the
// revenue aggregate's insertion order so that entities tying on code keep a
// stable position.
func assemble(
	rev revenueAggregate,
	sal salaryAggregate,
	bonusByEntity map[EntityPeriodKey]float64,
	overheadPerEffort map[PeriodKey]float64,
	compare codeComparer,
) []Row {
	if compare == nil {
		compare = ordinalCompare
	}
	rows := make([]Row, 0, len(rev.byEntity))
	for _, key := range rev.order {
		acc := rev.byEntity[key]
		overheadCost := overheadPerEffort[key.Period()] * acc.Effort
		salaryCost := sal.byEntity[key]
		bonusValue := bonusByEntity[key]
		totalCost := salaryCost + bonusValue + overheadCost
		profit := acc.Revenue - totalCost

		row := Row{
			Year:         key.Year,
			Month:        key.Month,
			EntityID:     key.EntityID,
			EntityCode:   acc.EntityCode,
			Effort:       acc.Effort,
			Revenue:      acc.Revenue,
			SalaryCost:   salaryCost,
			OverheadCost: overheadCost,
			BonusValue:   bonusValue,
			TotalCost:    totalCost,
			Profit:       profit,
		}
		if acc.Revenue != 0 {
			pct := profit / acc.Revenue * 100
			row.ProfitPercent = &pct
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return compare(rows[i].EntityCode, rows[j].EntityCode) < 0
	})
	return rows
}

// totalsOf computes the footer aggregate over the full result set with the
// same derivation rules as a single row.
func totalsOf(rows []Row) Totals {
	var t Totals
	for _, row := range rows {
		t.Effort += row.Effort
		t.Revenue += row.Revenue
		t.SalaryCost += row.SalaryCost
		t.OverheadCost += row.OverheadCost
		t.BonusValue += row.BonusValue
		t.TotalCost += row.TotalCost
		t.Profit += row.Profit
	}
	if t.Revenue != 0 {
		pct := t.Profit / t.Revenue * 100
		t.ProfitPercent = &pct
	}
	return t
}
