package engine

import (
	"math"
	"time"

	"github.com/jfenwick/budget-forecast/internal/models"
)

// delta is one event's contribution to a single month
type delta struct {
	liquidity float64
	assets    float64
}

// monthOf truncates a time to the first day of its month in UTC
func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthsBetween counts whole calendar months from one month to another;
// negative when to precedes from.
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// annuityPayment is the fixed monthly payment that amortizes principal over
// termMonths at the given monthly rate: P*r(1+r)^n / ((1+r)^n - 1). A zero
// rate degenerates to straight-line principal repayment.
func annuityPayment(principal, monthlyRate float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(termMonths)
	}
	growth := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * monthlyRate * growth / (growth - 1)
}

// cashFlowDelta computes an income (sign +1) or expense (sign -1)
// contribution for the given month. Neither affects assets.
func cashFlowDelta(cf *models.CashFlow, sign float64, month time.Time) delta {
	start := monthOf(cf.StartDate.Time)
	if month.Before(start) {
		return delta{}
	}
	if cf.EndDate != nil && month.After(monthOf(cf.EndDate.Time)) {
		return delta{}
	}
	if !cf.IsRecurrent {
		if !month.Equal(start) {
			return delta{}
		}
		return delta{liquidity: sign * cf.Amount}
	}
	if len(cf.Months) == 0 {
		return delta{liquidity: sign * cf.Amount}
	}
	for _, m := range cf.Months {
		if m == int(month.Month()) {
			return delta{liquidity: sign * cf.Amount}
		}
	}
	return delta{}
}

// mortgageDelta computes a mortgage's contribution for the given month and
// advances its tracked principal. The purchase month records the deposit as
// equity and seeds the amortizing tranche; later months pay interest on the
// interest-only tranche plus a fixed annuity payment whose principal portion
// converts cash into equity.
func mortgageDelta(eventID int64, m *models.Mortgage, month time.Time, state balanceState) delta {
	term := m.Years * 12
	elapsed := monthsBetween(monthOf(m.StartDate.Time), month)
	if elapsed < 0 || elapsed > term {
		return delta{}
	}

	repaymentTranche := m.LoanedAmount * m.RepaymentPercentage
	if elapsed == 0 {
		state.set(eventID, repaymentTranche)
		return delta{assets: m.PurchasePrice - m.LoanedAmount}
	}

	monthlyRate := m.InterestRate / 12
	interestOnlyPayment := (m.LoanedAmount - repaymentTranche) * monthlyRate
	payment := annuityPayment(repaymentTranche, monthlyRate, term)

	principal := state.balance(eventID, repaymentTranche)
	principalPortion := payment - principal*monthlyRate
	if principalPortion < 0 {
		principalPortion = 0
	}
	if principalPortion > principal {
		principalPortion = principal
	}
	state.set(eventID, principal-principalPortion)

	return delta{
		liquidity: -(payment + interestOnlyPayment),
		assets:    principalPortion,
	}
}

// mortgageRepaymentDelta applies a lump-sum principal repayment in its exact
// calendar month, moving cash into home equity and reducing the referenced
// mortgage's tracked principal.
func mortgageRepaymentDelta(r *models.MortgageRepayment, month time.Time, state balanceState) delta {
	if !month.Equal(monthOf(r.Date.Time)) {
		return delta{}
	}
	principal := state.balance(r.MortgageEventID, 0)
	state.set(r.MortgageEventID, principal-r.Amount)
	return delta{liquidity: -r.Amount, assets: r.Amount}
}

// pcpDelta computes a personal contract purchase contribution. The monthly
// payment covers the financed amount net of the residual value and builds no
// equity; the vehicle's asset value erodes by depreciation alone.
func pcpDelta(p *models.PCP, month time.Time) delta {
	term := p.Years * 12
	elapsed := monthsBetween(monthOf(p.StartDate.Time), month)
	if elapsed < 0 || elapsed >= term {
		return delta{}
	}
	if elapsed == 0 {
		return delta{liquidity: -p.Deposit, assets: p.PurchasePrice - p.Deposit}
	}
	financed := p.PurchasePrice - p.Deposit - p.ResidualValue
	payment := annuityPayment(financed, p.InterestRate/12, term)
	return delta{
		liquidity: -payment,
		assets:    -monthlyDepreciation(p.PurchasePrice, elapsed),
	}
}

// carLoanDelta computes a car loan contribution and advances its tracked
// principal. Unlike PCP the payment amortizes the full financed amount, so
// each month's principal portion builds equity while depreciation erodes it.
func carLoanDelta(eventID int64, c *models.CarLoan, month time.Time, state balanceState) delta {
	term := c.Years * 12
	elapsed := monthsBetween(monthOf(c.StartDate.Time), month)
	if elapsed < 0 || elapsed >= term {
		return delta{}
	}

	financed := c.PurchasePrice - c.Deposit
	if elapsed == 0 {
		state.set(eventID, financed)
		return delta{liquidity: -c.Deposit, assets: financed}
	}

	monthlyRate := c.InterestRate / 12
	payment := annuityPayment(financed, monthlyRate, term)

	principal := state.balance(eventID, financed)
	principalPortion := payment - principal*monthlyRate
	if principalPortion < 0 {
		principalPortion = 0
	}
	if principalPortion > principal {
		principalPortion = principal
	}
	state.set(eventID, principal-principalPortion)

	return delta{
		liquidity: -payment,
		assets:    principalPortion - monthlyDepreciation(c.PurchasePrice, elapsed),
	}
}
