package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// column is the foreign key the revenue, salary and bonus tables carry for
// this dimension.
func (d Dimension) column() string {
	switch d {
	case DimensionCompany:
		return "company_id"
	case DimensionCustomer:
		return "customer_id"
	default:
		return "division_id"
	}
}

// labelTable supplies the entity code join for this dimension.
func (d Dimension) labelTable() string {
	switch d {
	case DimensionCompany:
		return "companies"
	case DimensionCustomer:
		return "customers"
	default:
		return "divisions"
	}
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed row fetcher.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// numericOrZero coerces a nullable numeric scan target to a plain float.
// Applying it at the scan boundary keeps NaN and null out of the aggregation
// entirely.
func numericOrZero(v pgtype.Float8) float64 {
	if !v.Valid {
		return 0
	}
	return v.Float64
}

func optionalID(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func monthParams(months []int) []int32 {
	out := make([]int32, 0, len(months))
	for _, m := range months {
		out = append(out, int32(m))
	}
	return out
}

func (r *repository) RevenueRows(ctx context.Context, dim Dimension, year int, months []int) ([]RevenueRow, error) {
	query := fmt.Sprintf(`
		SELECT r.year, r.month, r.%[1]s, COALESCE(l.code, ''), r.effort_bmm, r.amount
		FROM revenues r
		LEFT JOIN %[2]s l ON l.id = r.%[1]s
		WHERE r.year = $1 AND r.month = ANY($2)`, dim.column(), dim.labelTable())

	rows, err := r.pool.Query(ctx, query, year, monthParams(months))
	if err != nil {
		return nil, fmt.Errorf("report: query revenues: %w", err)
	}
	defer rows.Close()

	var out []RevenueRow
	for rows.Next() {
		var (
			row    RevenueRow
			entity pgtype.Int8
			effort pgtype.Float8
			amount pgtype.Float8
		)
		if err := rows.Scan(&row.Year, &row.Month, &entity, &row.EntityCode, &effort, &amount); err != nil {
			return nil, fmt.Errorf("report: scan revenue row: %w", err)
		}
		row.EntityID = optionalID(entity)
		row.Effort = numericOrZero(effort)
		row.Amount = numericOrZero(amount)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report: iterate revenues: %w", err)
	}
	return out, nil
}

func (r *repository) SalaryRows(ctx context.Context, dim Dimension, year int, months []int) ([]SalaryRow, error) {
	query := fmt.Sprintf(`
		SELECT s.year, s.month, s.%s, s.amount
		FROM salary_costs s
		WHERE s.year = $1 AND s.month = ANY($2)`, dim.column())

	rows, err := r.pool.Query(ctx, query, year, monthParams(months))
	if err != nil {
		return nil, fmt.Errorf("report: query salary costs: %w", err)
	}
	defer rows.Close()

	var out []SalaryRow
	for rows.Next() {
		var (
			row    SalaryRow
			entity pgtype.Int8
			amount pgtype.Float8
		)
		if err := rows.Scan(&row.Year, &row.Month, &entity, &amount); err != nil {
			return nil, fmt.Errorf("report: scan salary row: %w", err)
		}
		row.EntityID = optionalID(entity)
		row.Amount = numericOrZero(amount)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report: iterate salary costs: %w", err)
	}
	return out, nil
}

func (r *repository) CostRows(ctx context.Context, year int, months []int) ([]CostRow, error) {
	query := `
		SELECT c.year, c.month, c.amount, c.is_cost, COALESCE(c.cost_kind_id, 0)
		FROM costs c
		WHERE c.year = $1 AND c.month = ANY($2)`

	rows, err := r.pool.Query(ctx, query, year, monthParams(months))
	if err != nil {
		return nil, fmt.Errorf("report: query costs: %w", err)
	}
	defer rows.Close()

	var out []CostRow
	for rows.Next() {
		var (
			row    CostRow
			amount pgtype.Float8
		)
		if err := rows.Scan(&row.Year, &row.Month, &amount, &row.IsCost, &row.KindID); err != nil {
			return nil, fmt.Errorf("report: scan cost row: %w", err)
		}
		row.Amount = numericOrZero(amount)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report: iterate costs: %w", err)
	}
	return out, nil
}

func (r *repository) BonusRates(ctx context.Context, dim Dimension, year int) ([]BonusRateRow, error) {
	query := fmt.Sprintf(`
		SELECT b.year, b.%[1]s, b.rate_bmm
		FROM bonus_rates b
		WHERE b.year = $1 AND b.%[1]s IS NOT NULL`, dim.column())

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("report: query bonus rates: %w", err)
	}
	defer rows.Close()

	var out []BonusRateRow
	for rows.Next() {
		var (
			row  BonusRateRow
			rate pgtype.Float8
		)
		if err := rows.Scan(&row.Year, &row.EntityID, &rate); err != nil {
			return nil, fmt.Errorf("report: scan bonus rate: %w", err)
		}
		row.RatePerEffort = numericOrZero(rate)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report: iterate bonus rates: %w", err)
	}
	return out, nil
}
