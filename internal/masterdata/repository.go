package masterdata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository exposes the reference data reads the service relies on.
type Repository interface {
	Parameters(ctx context.Context, year int) ([]Parameter, error)
	CostKinds(ctx context.Context) ([]CostKind, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the PostgreSQL backed reference data reader.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Parameters(ctx context.Context, year int) ([]Parameter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.year, p.code, p.value FROM parameters p WHERE p.year = $1`, year)
	if err != nil {
		return nil, fmt.Errorf("masterdata: query parameters: %w", err)
	}
	defer rows.Close()

	var out []Parameter
	for rows.Next() {
		var (
			p     Parameter
			value pgtype.Float8
		)
		if err := rows.Scan(&p.Year, &p.Code, &value); err != nil {
			return nil, fmt.Errorf("masterdata: scan parameter: %w", err)
		}
		if value.Valid {
			p.Value = value.Float64
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("masterdata: iterate parameters: %w", err)
	}
	return out, nil
}

func (r *repository) CostKinds(ctx context.Context) ([]CostKind, error) {
	rows, err := r.pool.Query(ctx, `SELECT k.id, k.name FROM cost_kinds k`)
	if err != nil {
		return nil, fmt.Errorf("masterdata: query cost kinds: %w", err)
	}
	defer rows.Close()

	var out []CostKind
	for rows.Next() {
		var kind CostKind
		if err := rows.Scan(&kind.ID, &kind.Name); err != nil {
			return nil, fmt.Errorf("masterdata: scan cost kind: %w", err)
		}
		out = append(out, kind)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("masterdata: iterate cost kinds: %w", err)
	}
	return out, nil
}
