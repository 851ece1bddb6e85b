package model

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusRejected  = "rejected"
)

type LogPayment struct {
	AmountCents int    `json:"amountCents" validate:"required,gt=0"`
	Note        string `json:"note,omitempty" validate:"max=255"`
}

type Payment struct {
	ID          int       `json:"id"`
	IOUID       int       `json:"iouID"`
	AmountCents int       `json:"amountCents"`
	Note        string    `json:"note,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Payments struct {
	Payments []Payment `json:"payments"`
}
