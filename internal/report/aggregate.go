package report

// fallbackEntityCode labels rows whose entity has no code in master data.
const fallbackEntityCode = "N/A"

// entityAccum collects effort and revenue for one entity within one period.
type entityAccum struct {
	EntityCode string
	Effort     float64
	Revenue    float64
}

// revenueAggregate is the outcome of one pass over the revenue rows.
type revenueAggregate struct {
	byEntity        map[EntityPeriodKey]entityAccum
	order           []EntityPeriodKey
	revenueByPeriod map[PeriodKey]float64
	effortByPeriod  map[PeriodKey]float64
}

// aggregateRevenue reduces revenue rows into entity and period totals in a
// single pass. Rows without an entity id still count toward period totals so
// the overhead basis covers all billed effort.
func aggregateRevenue(rows []RevenueRow) revenueAggregate {
	agg := revenueAggregate{
		byEntity:        make(map[EntityPeriodKey]entityAccum),
		revenueByPeriod: make(map[PeriodKey]float64),
		effortByPeriod:  make(map[PeriodKey]float64),
	}
	for _, row := range rows {
		period := PeriodKey{Year: row.Year, Month: row.Month}
		agg.revenueByPeriod[period] += row.Amount
		agg.effortByPeriod[period] += row.Effort

		if row.EntityID == nil {
			continue
		}
		key := EntityPeriodKey{Year: row.Year, Month: row.Month, EntityID: *row.EntityID}
		acc, ok := agg.byEntity[key]
		if !ok {
			agg.order = append(agg.order, key)
			acc.EntityCode = row.EntityCode
			if acc.EntityCode == "" {
				acc.EntityCode = fallbackEntityCode
			}
		}
		acc.Effort += row.Effort
		acc.Revenue += row.Amount
		agg.byEntity[key] = acc
	}
	return agg
}

// salaryAggregate is the outcome of one pass over the salary rows.
type salaryAggregate struct {
	byEntity map[EntityPeriodKey]float64
	byPeriod map[PeriodKey]float64
}

// aggregateSalary reduces salary rows into entity and period totals. The
// period total spans every row including the unallocated bucket because the
// overhead pool must back out company-wide payroll, not just attributed
// payroll.
func aggregateSalary(rows []SalaryRow) salaryAggregate {
	agg := salaryAggregate{
		byEntity: make(map[EntityPeriodKey]float64),
		byPeriod: make(map[PeriodKey]float64),
	}
	for _, row := range rows {
		period := PeriodKey{Year: row.Year, Month: row.Month}
		agg.byPeriod[period] += row.Amount
		if row.EntityID == nil {
			continue
		}
		key := EntityPeriodKey{Year: row.Year, Month: row.Month, EntityID: *row.EntityID}
		agg.byEntity[key] += row.Amount
	}
	return agg
}

// costAggregate is the outcome of one pass over the generic cost rows.
type costAggregate struct {
	byPeriod           map[PeriodKey]float64
	salaryKindByPeriod map[PeriodKey]float64
}

// aggregateCost reduces cost rows into period totals, tracking rows booked
// under the salary cost kind as a separate subtotal used for the bonus
// provision.
func aggregateCost(rows []CostRow, salaryKindID int64) costAggregate {
	agg := costAggregate{
		byPeriod:           make(map[PeriodKey]float64),
		salaryKindByPeriod: make(map[PeriodKey]float64),
	}
	for _, row := range rows {
		if !row.IsCost {
			continue
		}
		period := PeriodKey{Year: row.Year, Month: row.Month}
		agg.byPeriod[period] += row.Amount
		if row.KindID == salaryKindID {
			agg.salaryKindByPeriod[period] += row.Amount
		}
	}
	return agg
}
