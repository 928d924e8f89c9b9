// Package planfile loads a plan document (plan metadata plus its event list)
// from a YAML or JSON file. It is the engine's event source: validation of
// payload shape and numeric ranges happens here, before anything reaches the
// projection, because the engine itself silently skips what it cannot use.
package planfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfenwick/budget-forecast/internal/models"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk plan format
type Document struct {
	Plan   models.Plan    `json:"plan" yaml:"plan"`
	Events []models.Event `json:"events" yaml:"events"`
}

// Load reads and validates a plan document. Files ending in .json are parsed
// as JSON; everything else as YAML.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var doc Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, &doc)
	} else {
		err = yaml.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan file: %w", err)
	}
	return &doc, nil
}

// Validate checks the plan and every event payload against the ranges the
// projection assumes. Events with unrecognized types pass validation; they
// project as zero by design.
func (d *Document) Validate() error {
	if d.Plan.StartDate.IsZero() {
		return fmt.Errorf("plan: start_date is required")
	}

	mortgages := make(map[int64]bool)
	for _, ev := range d.Events {
		if ev.Type == models.EventMortgage {
			mortgages[ev.ID] = true
		}
	}

	for _, ev := range d.Events {
		if err := validateEvent(&ev, mortgages); err != nil {
			return fmt.Errorf("event %d: %w", ev.ID, err)
		}
	}
	return nil
}

func validateEvent(ev *models.Event, mortgages map[int64]bool) error {
	switch ev.Type {
	case models.EventIncome, models.EventExpense:
		cf := ev.Income
		if cf == nil {
			cf = ev.Expense
		}
		if cf == nil {
			return fmt.Errorf("%s: missing data", ev.Type)
		}
		return validateCashFlow(cf)
	case models.EventMortgage:
		if ev.Mortgage == nil {
			return fmt.Errorf("mortgage: missing data")
		}
		return validateMortgage(ev.Mortgage)
	case models.EventMortgageRepayment:
		if ev.MortgageRepayment == nil {
			return fmt.Errorf("mortgage_repayment: missing data")
		}
		return validateRepayment(ev.MortgageRepayment, mortgages)
	case models.EventPCP:
		if ev.PCP == nil {
			return fmt.Errorf("pcp: missing data")
		}
		return validatePCP(ev.PCP)
	case models.EventCarLoan:
		if ev.CarLoan == nil {
			return fmt.Errorf("car_loan: missing data")
		}
		return validateCarLoan(ev.CarLoan)
	}
	return nil
}

func validateCashFlow(cf *models.CashFlow) error {
	if cf.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", cf.Amount)
	}
	if cf.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	if cf.EndDate != nil && cf.EndDate.Before(cf.StartDate.Time) {
		return fmt.Errorf("end_date precedes start_date")
	}
	for _, m := range cf.Months {
		if m < 1 || m > 12 {
			return fmt.Errorf("month number %d out of range 1-12", m)
		}
	}
	return nil
}

func validateMortgage(m *models.Mortgage) error {
	if m.PurchasePrice <= 0 {
		return fmt.Errorf("purchase_price must be positive, got %v", m.PurchasePrice)
	}
	if m.LoanedAmount <= 0 || m.LoanedAmount > m.PurchasePrice {
		return fmt.Errorf("loaned_amount must be in (0, purchase_price], got %v", m.LoanedAmount)
	}
	if err := validateRate(m.InterestRate, "interest_rate"); err != nil {
		return err
	}
	if err := validateRate(m.RepaymentPercentage, "repayment_percentage"); err != nil {
		return err
	}
	if m.Years <= 0 {
		return fmt.Errorf("years must be positive, got %d", m.Years)
	}
	if m.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	return nil
}

func validateRepayment(r *models.MortgageRepayment, mortgages map[int64]bool) error {
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", r.Amount)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if !mortgages[r.MortgageEventID] {
		return fmt.Errorf("references unknown mortgage event %d", r.MortgageEventID)
	}
	return nil
}

func validatePCP(p *models.PCP) error {
	if p.PurchasePrice <= 0 {
		return fmt.Errorf("purchase_price must be positive, got %v", p.PurchasePrice)
	}
	if p.Deposit < 0 || p.Deposit > p.PurchasePrice {
		return fmt.Errorf("deposit must be in [0, purchase_price], got %v", p.Deposit)
	}
	if p.Years != 2 && p.Years != 3 && p.Years != 5 {
		return fmt.Errorf("years must be 2, 3 or 5, got %d", p.Years)
	}
	if p.ResidualValue < 0 {
		return fmt.Errorf("residual_value must not be negative, got %v", p.ResidualValue)
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	return validateRate(p.InterestRate, "interest_rate")
}

func validateCarLoan(c *models.CarLoan) error {
	if c.PurchasePrice <= 0 {
		return fmt.Errorf("purchase_price must be positive, got %v", c.PurchasePrice)
	}
	if c.Deposit < 0 || c.Deposit > c.PurchasePrice {
		return fmt.Errorf("deposit must be in [0, purchase_price], got %v", c.Deposit)
	}
	if c.Years < 3 || c.Years > 10 {
		return fmt.Errorf("years must be in [3, 10], got %d", c.Years)
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("start_date is required")
	}
	return validateRate(c.InterestRate, "interest_rate")
}

func validateRate(rate float64, field string) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", field, rate)
	}
	return nil
}
