package model

import "time"

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusRevoked  = "revoked"
	// InviteStatusExpired is derived from expires_at, never stored.
	InviteStatusExpired = "expired"
)

type Invite struct {
	ID        int       `json:"id"`
	InviterID int       `json:"inviterID"`
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Invites struct {
	Invites []Invite `json:"invites"`
}

// InvitePublic is the unauthenticated landing-page view of an invite.
type InvitePublic struct {
	Inviter string `json:"inviter"`
	Valid   bool   `json:"valid"`
}
