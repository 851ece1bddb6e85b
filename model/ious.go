package model

import "time"

const (
	IOUStatusPending   = "pending"
	IOUStatusActive    = "active"
	IOUStatusDeclined  = "declined"
	IOUStatusCancelled = "cancelled"
	IOUStatusPaid      = "paid"
)

const (
	// DirectionIOU: the caller owes the counterparty.
	DirectionIOU = "iou"
	// DirectionUOMe: the counterparty owes the caller.
	DirectionUOMe = "uome"
)

// "I owe Peter 20lv for Pizza" / "Peter owes me 20lv for Pizza"
type CreateIOU struct {
	CounterpartyID int    `json:"counterpartyID" validate:"required,gt=0"`
	AmountCents    int    `json:"amountCents" validate:"required,gt=0"`
	Description    string `json:"description,omitempty" validate:"max=255"`
	Direction      string `json:"direction" validate:"required,oneof=iou uome"`
}

type IOU struct {
	ID          int       `json:"id"`
	CreditorID  int       `json:"creditorID"`
	DebtorID    int       `json:"debtorID"`
	CreatedBy   int       `json:"createdBy"`
	AmountCents int       `json:"amountCents"`
	PaidCents   int       `json:"paidCents"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	RecurringID int       `json:"recurringID,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type IOUs struct {
	IOUs []IOU `json:"ious"`
}
