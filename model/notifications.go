package model

import "time"

const (
	NotifFriendRequest    = "friend_request"
	NotifFriendAccept     = "friend_accept"
	NotifIOUCreated       = "iou_created"
	NotifIOUAccepted      = "iou_accepted"
	NotifIOUDeclined      = "iou_declined"
	NotifPaymentLogged    = "payment_logged"
	NotifPaymentConfirmed = "payment_confirmed"
	NotifPaymentRejected  = "payment_rejected"
)

type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userID"`
	Kind      string    `json:"kind"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type Notifications struct {
	Notifications []Notification `json:"notifications"`
}

type UnreadCount struct {
	Count int `json:"count"`
}
