package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/keiri-app/keiri/internal/shared"
)

// Repository exposes the filtered row fetches the engine consumes.
type Repository interface {
	RevenueRows(ctx context.Context, dim Dimension, year int, months []int) ([]RevenueRow, error)
	SalaryRows(ctx context.Context, dim Dimension, year int, months []int) ([]SalaryRow, error)
	CostRows(ctx context.Context, year int, months []int) ([]CostRow, error)
	BonusRates(ctx context.Context, dim Dimension, year int) ([]BonusRateRow, error)
}

// Masterdata resolves the per-year provision rates and the salary cost kind.
type Masterdata interface {
	Rates(ctx context.Context, year int) (Rates, error)
	SalaryKindID(ctx context.Context) (int64, error)
}

// Service builds grouped profit reports from a fixed snapshot of rows.
type Service struct {
	repo     Repository
	master   Masterdata
	cache    *Cache
	collator *collate.Collator
}

// Option customises service construction.
type Option func(*Service)

// WithCollation switches entity code ordering from ordinal comparison to the
// given language's collation rules.
func WithCollation(tag language.Tag) Option {
	return func(s *Service) {
		s.collator = collate.New(tag)
	}
}

// NewService wires the row repository, master data and an optional cache.
func NewService(repo Repository, master Masterdata, cache *Cache, opts ...Option) *Service {
	s := &Service{repo: repo, master: master, cache: cache}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build produces the grouped report for the query. Any fetch failure aborts
// the whole build; no partial report is ever returned or cached.
func (s *Service) Build(ctx context.Context, q Query) (Report, error) {
	if _, err := ParseDimension(string(q.Dimension)); err != nil {
		return Report{}, err
	}
	if err := shared.ValidateYear(q.Year); err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}
	months, err := shared.NormalizeMonths(q.Months)
	if err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}
	q.Months = months

	loader := func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, q)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Report{}, err
		}
		return value.(Report), nil
	}

	key, err := s.cache.BuildKey(ctx, keyReport(q))
	if err != nil {
		return Report{}, err
	}
	var rep Report
	if err := s.cache.FetchJSON(ctx, key, &rep, loader); err != nil {
		return Report{}, err
	}
	return rep, nil
}

func (s *Service) build(ctx context.Context, q Query) (Report, error) {
	salaryKindID, err := s.master.SalaryKindID(ctx)
	if err != nil {
		return Report{}, err
	}
	rates, err := s.master.Rates(ctx, q.Year)
	if err != nil {
		return Report{}, err
	}

	var (
		revenueRows []RevenueRow
		salaryRows  []SalaryRow
		costRows    []CostRow
		rateRows    []BonusRateRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.repo.RevenueRows(gctx, q.Dimension, q.Year, q.Months)
		if err != nil {
			return fmt.Errorf("report: fetch revenue rows: %w", err)
		}
		revenueRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.SalaryRows(gctx, q.Dimension, q.Year, q.Months)
		if err != nil {
			return fmt.Errorf("report: fetch salary rows: %w", err)
		}
		salaryRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.CostRows(gctx, q.Year, q.Months)
		if err != nil {
			return fmt.Errorf("report: fetch cost rows: %w", err)
		}
		costRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.BonusRates(gctx, q.Dimension, q.Year)
		if err != nil {
			return fmt.Errorf("report: fetch bonus rates: %w", err)
		}
		rateRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rev := aggregateRevenue(revenueRows)
	sal := aggregateSalary(salaryRows)
	costs := aggregateCost(costRows, salaryKindID)

	ratesByEntity := make(map[int64]float64, len(rateRows))
	for _, row := range rateRows {
		ratesByEntity[row.EntityID] = row.RatePerEffort
	}
	bonusByEntity, salaryBonusByPeriod := resolveBonus(rev, ratesByEntity)
	perEffort := overheadRates(costs, rev, sal, salaryBonusByPeriod, rates)

	rows := assemble(rev, sal, bonusByEntity, perEffort, s.compare())
	return Report{Query: q, Rows: rows, Totals: totalsOf(rows)}, nil
}

func (s *Service) compare() codeComparer {
	if s.collator == nil {
		return nil
	}
	return s.collator.CompareString
}

func keyReport(q Query) string {
	parts := make([]string, 0, len(q.Months))
	for _, m := range q.Months {
		parts = append(parts, strconv.Itoa(m))
	}
	return fmt.Sprintf("report:%s:%d:%s", q.Dimension, q.Year, strings.Join(parts, "-"))
}
