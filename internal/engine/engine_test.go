package engine

import (
	"testing"
	"time"

	"github.com/jfenwick/budget-forecast/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func recurringIncome(id int64, amount float64, start time.Time, months ...int) models.Event {
	return models.Event{
		ID:   id,
		Type: models.EventIncome,
		Income: &models.CashFlow{
			Amount:      amount,
			IsRecurrent: true,
			Months:      months,
			StartDate:   models.Date{Time: start},
		},
	}
}

func TestProjectEmptyEvents(t *testing.T) {
	for _, years := range []int{1, 5, 10, 20} {
		points, err := Project(nil, anchor, years)
		require.NoError(t, err)
		require.Len(t, points, years*12)
		for _, p := range points {
			assert.Zero(t, p.Liquidity)
			assert.Zero(t, p.Assets)
		}
	}
}

func TestProjectMonthSequence(t *testing.T) {
	// anchor mid-month: must be truncated to the first of the month
	points, err := Project(nil, time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, err)
	require.Len(t, points, 24)

	first := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range points {
		assert.Equal(t, first.AddDate(0, i, 0), p.Month.Time, "point %d", i)
	}
}

func TestProjectInvalidArguments(t *testing.T) {
	_, err := Project(nil, anchor, 0)
	require.Error(t, err)
	_, err = Project(nil, anchor, -3)
	require.Error(t, err)
	_, err = ProjectFromISO(nil, "not-a-date", 5)
	require.Error(t, err)
}

func TestProjectFromISO(t *testing.T) {
	points, err := ProjectFromISO(nil, "2024-06-15", 1)
	require.NoError(t, err)
	require.Len(t, points, 12)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), points[0].Month.Time)
}

func TestRecurringIncomeEveryMonth(t *testing.T) {
	events := []models.Event{recurringIncome(1, 1500, anchor)}
	points, err := Project(events, anchor, 1)
	require.NoError(t, err)

	for i, p := range points {
		assert.Equal(t, 1500*float64(i+1), p.Liquidity, "point %d", i)
		assert.Zero(t, p.Assets)
	}
}

func TestRecurringIncomeSelectedMonths(t *testing.T) {
	events := []models.Event{recurringIncome(1, 2000, anchor, 1, 6, 12)}
	points, err := Project(events, anchor, 1)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, points[0].Liquidity) // January
	assert.Equal(t, 2000.0, points[4].Liquidity) // unchanged through May
	assert.Equal(t, 4000.0, points[5].Liquidity) // June
	assert.Equal(t, 4000.0, points[10].Liquidity)
	assert.Equal(t, 6000.0, points[11].Liquidity) // December
}

func TestOneOffEventContributesOnce(t *testing.T) {
	start := anchor.AddDate(0, 3, 0)
	events := []models.Event{
		{ID: 1, Type: models.EventIncome, Income: &models.CashFlow{
			Amount: 5000, StartDate: models.Date{Time: start},
		}},
		{ID: 2, Type: models.EventExpense, Expense: &models.CashFlow{
			Amount: 800, StartDate: models.Date{Time: start},
		}},
	}
	points, err := Project(events, anchor, 1)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.Zero(t, points[i].Liquidity, "point %d", i)
	}
	// fires exactly once, then carries forward
	for i := 3; i < 12; i++ {
		assert.Equal(t, 4200.0, points[i].Liquidity, "point %d", i)
	}
}

func TestIncomeStartingMidProjection(t *testing.T) {
	// starts in month 6 of a 12 month projection: zero in points 0-4,
	// present from point 5 with no gap or double-counting
	events := []models.Event{recurringIncome(1, 1000, anchor.AddDate(0, 5, 0))}
	points, err := Project(events, anchor, 1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Zero(t, points[i].Liquidity, "point %d", i)
	}
	for i := 5; i < 12; i++ {
		assert.Equal(t, 1000*float64(i-4), points[i].Liquidity, "point %d", i)
	}
}

func TestRecurringExpenseEndDate(t *testing.T) {
	end := models.Date{Time: anchor.AddDate(0, 2, 0)}
	events := []models.Event{
		{ID: 1, Type: models.EventExpense, Expense: &models.CashFlow{
			Amount:      300,
			IsRecurrent: true,
			StartDate:   models.Date{Time: anchor},
			EndDate:     &end,
		}},
	}
	points, err := Project(events, anchor, 1)
	require.NoError(t, err)

	// contributes in its end month, then stops
	assert.Equal(t, -300.0, points[0].Liquidity)
	assert.Equal(t, -900.0, points[2].Liquidity)
	for i := 3; i < 12; i++ {
		assert.Equal(t, -900.0, points[i].Liquidity, "point %d", i)
	}
}

func TestRoundingAtEmissionOnly(t *testing.T) {
	events := []models.Event{
		{ID: 1, Type: models.EventIncome, Income: &models.CashFlow{
			Amount: 1234.567, StartDate: models.Date{Time: anchor},
		}},
	}
	points, err := Project(events, anchor, 1)
	require.NoError(t, err)
	assert.Equal(t, 1234.57, points[0].Liquidity)
	assert.Equal(t, 1234.57, points[11].Liquidity)

	// the running total accumulates unrounded: 10.004 emits as 10.00 but two
	// months sum to 20.008, emitted 20.01 (pre-rounded accumulation would
	// give 20.00)
	events = []models.Event{recurringIncome(2, 10.004, anchor)}
	points, err = Project(events, anchor, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, points[0].Liquidity)
	assert.Equal(t, 20.01, points[1].Liquidity)
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	events := []models.Event{
		{ID: 1, Type: "dividend"},
		{ID: 2, Type: models.EventIncome}, // recognized type, missing payload
		recurringIncome(3, 100, anchor),
	}
	points, err := Project(events, anchor, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, points[0].Liquidity)
	assert.Zero(t, points[0].Assets)
}

func TestProjectIsDeterministic(t *testing.T) {
	events := []models.Event{
		recurringIncome(1, 2500, anchor),
		{ID: 2, Type: models.EventMortgage, Mortgage: &models.Mortgage{
			StartDate:           models.Date{Time: anchor},
			PurchasePrice:       300000,
			LoanedAmount:        250000,
			InterestRate:        0.04,
			RepaymentPercentage: 1,
			Years:               25,
		}},
		{ID: 3, Type: models.EventCarLoan, CarLoan: &models.CarLoan{
			StartDate:     models.Date{Time: anchor.AddDate(1, 0, 0)},
			PurchasePrice: 20000,
			Deposit:       2000,
			Years:         5,
			InterestRate:  0.06,
		}},
	}

	first, err := Project(events, anchor, 10)
	require.NoError(t, err)
	second, err := Project(events, anchor, 10)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
