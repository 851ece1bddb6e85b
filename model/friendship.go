package model

type Friendship struct {
	UserOne    int    `json:"userOne" validate:"required,numeric,gte=0"`
	UserTwo    int    `json:"userTwo" validate:"required,numeric,gte=0"`
	Status     string `json:"status"`
	ActionUser int    `json:"actionUser" validate:"required,numeric,gte=0"`
}

type AddFriend struct {
	FriendName string `json:"friendName" validate:"required,min=3,max=32"`
}

type Friend struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Friends struct {
	Friends []Friend `json:"friends"`
}
