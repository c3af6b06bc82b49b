package report

// resolveBonus computes each entity's bonus value as effort times the annual
// rate, plus per-period sums of those values. Entities without a configured
// rate get 0. Rates are annual while effort is monthly, so the monthly values
// are effort-weighted.
func resolveBonus(rev revenueAggregate, ratesByEntity map[int64]float64) (map[EntityPeriodKey]float64, map[PeriodKey]float64) {
	byEntity := make(map[EntityPeriodKey]float64, len(rev.byEntity))
	byPeriod := make(map[PeriodKey]float64)
	for key, acc := range rev.byEntity {
		value := acc.Effort * ratesByEntity[key.EntityID]
		byEntity[key] = value
		byPeriod[key.Period()] += value
	}
	return byEntity, byPeriod
}

// overheadRates derives the per-effort overhead rate for every period with
// booked cost. The pool is everything booked as operating cost plus bonus and
// tax provisions, minus the payroll and payroll bonus already charged directly
// to entities; it is then spread over the period's total billed effort.
func overheadRates(
	costs costAggregate,
	rev revenueAggregate,
	sal salaryAggregate,
	salaryBonusByPeriod map[PeriodKey]float64,
	rates Rates,
) map[PeriodKey]float64 {
	perEffort := make(map[PeriodKey]float64, len(costs.byPeriod))
	for period, totalCost := range costs.byPeriod {
		bonusProvision := costs.salaryKindByPeriod[period] * rates.Bonus
		profitBeforeTax := rev.revenueByPeriod[period] - totalCost
		var taxProvision float64
		if profitBeforeTax > 0 {
			taxProvision = profitBeforeTax * rates.Tax
		}
		pool := totalCost + bonusProvision + taxProvision -
			sal.byPeriod[period] - salaryBonusByPeriod[period]

		effort := rev.effortByPeriod[period]
		if effort == 0 {
			// No billed effort to spread over; rate stays zero.
			perEffort[period] = 0
			continue
		}
		perEffort[period] = pool / effort
	}
	return perEffort
}
