package model

import "time"

// FeedItem is one row of the activity feed: an IOU lifecycle event, a
// confirmed payment or a friendship event involving the user.
type FeedItem struct {
	Kind        string    `json:"kind"`
	RefID       int       `json:"refID"`
	OtherUser   string    `json:"otherUser"`
	AmountCents int       `json:"amountCents,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Feed struct {
	Items []FeedItem `json:"items"`
}
