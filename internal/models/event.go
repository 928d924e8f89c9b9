package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// EventType identifies an event payload variant
type EventType string

const (
	EventIncome            EventType = "income"
	EventExpense           EventType = "expense"
	EventMortgage          EventType = "mortgage"
	EventMortgageRepayment EventType = "mortgage_repayment"
	EventPCP               EventType = "pcp"
	EventCarLoan           EventType = "car_loan"
)

// Event is a dated financial occurrence attached to a plan. The wire form is
// an envelope {id, plan_id, type, data}; decoding fills exactly the payload
// field matching Type. Events with an unrecognized type carry no payload and
// contribute nothing to a projection.
type Event struct {
	ID     int64     `json:"id" yaml:"id"`
	PlanID uuid.UUID `json:"plan_id" yaml:"plan_id"`
	Type   EventType `json:"type" yaml:"type"`

	Income            *CashFlow          `json:"-" yaml:"-"`
	Expense           *CashFlow          `json:"-" yaml:"-"`
	Mortgage          *Mortgage          `json:"-" yaml:"-"`
	MortgageRepayment *MortgageRepayment `json:"-" yaml:"-"`
	PCP               *PCP               `json:"-" yaml:"-"`
	CarLoan           *CarLoan           `json:"-" yaml:"-"`
}

// CashFlow is the payload shared by income and expense events. Months holds
// calendar month numbers 1-12; empty means every month.
type CashFlow struct {
	Amount      float64 `json:"amount" yaml:"amount"`
	IsRecurrent bool    `json:"is_recurrent" yaml:"is_recurrent"`
	Months      []int   `json:"months,omitempty" yaml:"months,omitempty"`
	StartDate   Date    `json:"start_date" yaml:"start_date"`
	EndDate     *Date   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// Mortgage describes a home purchase financed over a fixed term. The loan is
// split into an amortizing tranche (RepaymentPercentage of the loaned amount)
// and a perpetual interest-only tranche for the remainder.
type Mortgage struct {
	StartDate           Date    `json:"start_date" yaml:"start_date"`
	PurchasePrice       float64 `json:"purchase_price" yaml:"purchase_price"`
	LoanedAmount        float64 `json:"loaned_amount" yaml:"loaned_amount"`
	InterestRate        float64 `json:"interest_rate" yaml:"interest_rate"`
	RepaymentPercentage float64 `json:"repayment_percentage" yaml:"repayment_percentage"`
	Years               int     `json:"years" yaml:"years"`
}

// MortgageRepayment is an extra lump-sum principal repayment against the
// mortgage event it references.
type MortgageRepayment struct {
	MortgageEventID int64   `json:"mortgage_event_id" yaml:"mortgage_event_id"`
	Date            Date    `json:"date" yaml:"date"`
	Amount          float64 `json:"amount" yaml:"amount"`
}

// PCP describes a personal contract purchase: vehicle finance with a residual
// balloon, modeled as depreciating equity with no amortizing balance.
type PCP struct {
	StartDate     Date    `json:"start_date" yaml:"start_date"`
	PurchasePrice float64 `json:"purchase_price" yaml:"purchase_price"`
	Deposit       float64 `json:"deposit" yaml:"deposit"`
	Years         int     `json:"years" yaml:"years"`
	ResidualValue float64 `json:"residual_value" yaml:"residual_value"`
	InterestRate  float64 `json:"interest_rate" yaml:"interest_rate"`
}

// CarLoan describes a vehicle purchase financed by an amortizing loan.
type CarLoan struct {
	StartDate     Date    `json:"start_date" yaml:"start_date"`
	PurchasePrice float64 `json:"purchase_price" yaml:"purchase_price"`
	Deposit       float64 `json:"deposit" yaml:"deposit"`
	Years         int     `json:"years" yaml:"years"`
	InterestRate  float64 `json:"interest_rate" yaml:"interest_rate"`
}

// Data returns the payload matching the event's type, or nil for
// unrecognized types and type/payload mismatches.
func (e *Event) Data() interface{} {
	switch e.Type {
	case EventIncome:
		if e.Income != nil {
			return e.Income
		}
	case EventExpense:
		if e.Expense != nil {
			return e.Expense
		}
	case EventMortgage:
		if e.Mortgage != nil {
			return e.Mortgage
		}
	case EventMortgageRepayment:
		if e.MortgageRepayment != nil {
			return e.MortgageRepayment
		}
	case EventPCP:
		if e.PCP != nil {
			return e.PCP
		}
	case EventCarLoan:
		if e.CarLoan != nil {
			return e.CarLoan
		}
	}
	return nil
}

// decodePayload allocates the payload field for the event's type and decodes
// into it. Unrecognized types are kept payload-less rather than rejected.
func (e *Event) decodePayload(decode func(interface{}) error) error {
	switch e.Type {
	case EventIncome:
		e.Income = &CashFlow{}
		return decode(e.Income)
	case EventExpense:
		e.Expense = &CashFlow{}
		return decode(e.Expense)
	case EventMortgage:
		e.Mortgage = &Mortgage{}
		return decode(e.Mortgage)
	case EventMortgageRepayment:
		e.MortgageRepayment = &MortgageRepayment{}
		return decode(e.MortgageRepayment)
	case EventPCP:
		e.PCP = &PCP{}
		return decode(e.PCP)
	case EventCarLoan:
		e.CarLoan = &CarLoan{}
		return decode(e.CarLoan)
	}
	return nil
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var envelope struct {
		ID     int64           `json:"id"`
		PlanID uuid.UUID       `json:"plan_id"`
		Type   EventType       `json:"type"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}
	e.ID = envelope.ID
	e.PlanID = envelope.PlanID
	e.Type = envelope.Type
	if len(envelope.Data) == 0 {
		return nil
	}
	return e.decodePayload(func(v interface{}) error {
		return json.Unmarshal(envelope.Data, v)
	})
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     int64       `json:"id"`
		PlanID uuid.UUID   `json:"plan_id"`
		Type   EventType   `json:"type"`
		Data   interface{} `json:"data,omitempty"`
	}{e.ID, e.PlanID, e.Type, e.Data()})
}

func (e *Event) UnmarshalYAML(value *yaml.Node) error {
	var envelope struct {
		ID     int64     `yaml:"id"`
		PlanID string    `yaml:"plan_id"`
		Type   EventType `yaml:"type"`
		Data   yaml.Node `yaml:"data"`
	}
	if err := value.Decode(&envelope); err != nil {
		return err
	}
	e.ID = envelope.ID
	e.Type = envelope.Type
	if envelope.PlanID != "" {
		id, err := uuid.Parse(envelope.PlanID)
		if err != nil {
			return err
		}
		e.PlanID = id
	}
	if envelope.Data.IsZero() {
		return nil
	}
	return e.decodePayload(func(v interface{}) error {
		return envelope.Data.Decode(v)
	})
}
