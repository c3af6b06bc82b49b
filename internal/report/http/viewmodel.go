package reporthttp

import "github.com/keiri-app/keiri/internal/report"

type rowVM struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	EntityID      int64    `json:"entity_id"`
	EntityCode    string   `json:"entity_code"`
	Effort        float64  `json:"effort"`
	Revenue       float64  `json:"revenue"`
	SalaryCost    float64  `json:"salary_cost"`
	OverheadCost  float64  `json:"overhead_cost"`
	BonusValue    float64  `json:"bonus_value"`
	TotalCost     float64  `json:"total_cost"`
	Profit        float64  `json:"profit"`
	ProfitPercent *float64 `json:"profit_percent"`
}

type totalsVM struct {
	Effort        float64  `json:"effort"`
	Revenue       float64  `json:"revenue"`
	SalaryCost    float64  `json:"salary_cost"`
	OverheadCost  float64  `json:"overhead_cost"`
	BonusValue    float64  `json:"bonus_value"`
	TotalCost     float64  `json:"total_cost"`
	Profit        float64  `json:"profit"`
	ProfitPercent *float64 `json:"profit_percent"`
}

type reportResponse struct {
	Dimension string   `json:"dimension"`
	Year      int      `json:"year"`
	Months    []int    `json:"months"`
	Rows      []rowVM  `json:"rows"`
	Totals    totalsVM `json:"totals"`
}

func toReportResponse(rep report.Report) reportResponse {
	rows := make([]rowVM, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		rows = append(rows, rowVM{
			Year:          row.Year,
			Month:         row.Month,
			EntityID:      row.EntityID,
			EntityCode:    row.EntityCode,
			Effort:        row.Effort,
			Revenue:       row.Revenue,
			SalaryCost:    row.SalaryCost,
			OverheadCost:  row.OverheadCost,
			BonusValue:    row.BonusValue,
			TotalCost:     row.TotalCost,
			Profit:        row.Profit,
			ProfitPercent: row.ProfitPercent,
		})
	}
	return reportResponse{
		Dimension: string(rep.Query.Dimension),
		Year:      rep.Query.Year,
		Months:    rep.Query.Months,
		Rows:      rows,
		Totals: totalsVM{
			Effort:        rep.Totals.Effort,
			Revenue:       rep.Totals.Revenue,
			SalaryCost:    rep.Totals.SalaryCost,
			OverheadCost:  rep.Totals.OverheadCost,
			BonusValue:    rep.Totals.BonusValue,
			TotalCost:     rep.Totals.TotalCost,
			Profit:        rep.Totals.Profit,
			ProfitPercent: rep.Totals.ProfitPercent,
		},
	}
}
