package model

import "github.com/dgrijalva/jwt-go"

type User struct {
	ID       int    `json:"id" validate:"numeric,gte=0"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password,omitempty"`
}

type UserToken struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.StandardClaims
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserRegister struct {
	Username    string `json:"username" validate:"required,min=3,max=32"`
	Password    string `json:"password" validate:"required,min=4,max=64"`
	InviteToken string `json:"inviteToken,omitempty"`
}

type Users struct {
	Users []User `json:"users"`
}

type SuggestRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
}

type Suggestions struct {
	Usernames []string `json:"usernames"`
}

// StreetCred is the paid-vs-outstanding statistic for a user as debtor.
type StreetCred struct {
	UserID           int `json:"userID"`
	PaidCount        int `json:"paidCount"`
	PaidCents        int `json:"paidCents"`
	OutstandingCount int `json:"outstandingCount"`
	OutstandingCents int `json:"outstandingCents"`
}
