package model

import "time"

const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

type CreateRecurring struct {
	CounterpartyID int    `json:"counterpartyID" validate:"required,gt=0"`
	AmountCents    int    `json:"amountCents" validate:"required,gt=0"`
	Description    string `json:"description,omitempty" validate:"max=255"`
	Direction      string `json:"direction" validate:"required,oneof=iou uome"`
	Frequency      string `json:"frequency" validate:"required,oneof=weekly monthly"`
	NextDue        string `json:"nextDue" validate:"required"` // 2006-01-02
}

type RecurringIOU struct {
	ID          int       `json:"id"`
	CreditorID  int       `json:"creditorID"`
	DebtorID    int       `json:"debtorID"`
	CreatedBy   int       `json:"createdBy"`
	AmountCents int       `json:"amountCents"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	NextDue     time.Time `json:"nextDue"`
	Active      bool      `json:"active"`
}

type RecurringIOUs struct {
	Recurring []RecurringIOU `json:"recurring"`
}

type GenerateResult struct {
	Created int `json:"created"`
}
