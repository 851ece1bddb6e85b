package model

type BlockUser struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
}

type BlockedUsers struct {
	Blocked []Friend `json:"blocked"`
}
