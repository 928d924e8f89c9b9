// Package engine projects a plan's events into a monthly liquidity and
// assets series. It is pure: one Project call reads its inputs, threads its
// own balance state through the months, and returns the chart series with no
// other side effects, so concurrent calls need no coordination.
package engine

import (
	"fmt"
	"time"

	"github.com/jfenwick/budget-forecast/internal/models"
	"github.com/shopspring/decimal"
)

// Project walks rangeYears*12 consecutive months starting at the first day
// of startDate's month, accumulating every event's liquidity and asset
// effect into running totals. Each emitted point carries the cumulative
// balances rounded to 2 decimal places; accumulation itself stays unrounded
// so rounding error never compounds.
func Project(events []models.Event, startDate time.Time, rangeYears int) ([]models.ChartDataPoint, error) {
	if rangeYears < 1 {
		return nil, fmt.Errorf("range must be at least one year, got %d", rangeYears)
	}

	anchor := monthOf(startDate)
	state := make(balanceState)
	points := make([]models.ChartDataPoint, 0, rangeYears*12)

	var liquidity, assets float64
	for i := 0; i < rangeYears*12; i++ {
		month := anchor.AddDate(0, i, 0)
		for _, ev := range events {
			d := eventDelta(&ev, month, state)
			liquidity += d.liquidity
			assets += d.assets
		}
		points = append(points, models.ChartDataPoint{
			Month:     models.Date{Time: month},
			Liquidity: round2(liquidity),
			Assets:    round2(assets),
		})
	}
	return points, nil
}

// ProjectFromISO is Project with the anchor given as an ISO YYYY-MM-DD
// string, the form plan records carry it in.
func ProjectFromISO(events []models.Event, startDate string, rangeYears int) ([]models.ChartDataPoint, error) {
	start, err := models.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	return Project(events, start.Time, rangeYears)
}

// eventDelta dispatches to the calculator for the event's variant.
// Unrecognized types and type/payload mismatches contribute zero: tolerant
// dispatch is intentional, so one malformed event cannot abort a projection.
func eventDelta(ev *models.Event, month time.Time, state balanceState) delta {
	switch ev.Type {
	case models.EventIncome:
		if ev.Income != nil {
			return cashFlowDelta(ev.Income, 1, month)
		}
	case models.EventExpense:
		if ev.Expense != nil {
			return cashFlowDelta(ev.Expense, -1, month)
		}
	case models.EventMortgage:
		if ev.Mortgage != nil {
			return mortgageDelta(ev.ID, ev.Mortgage, month, state)
		}
	case models.EventMortgageRepayment:
		if ev.MortgageRepayment != nil {
			return mortgageRepaymentDelta(ev.MortgageRepayment, month, state)
		}
	case models.EventPCP:
		if ev.PCP != nil {
			return pcpDelta(ev.PCP, month)
		}
	case models.EventCarLoan:
		if ev.CarLoan != nil {
			return carLoanDelta(ev.ID, ev.CarLoan, month, state)
		}
	}
	return delta{}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
