package rest

import (
	"github.com/kdimitrova/IOU-Tracker/model"

	"golang.org/x/crypto/bcrypt"
)

// AddData seeds a demo dataset, enabled with SEED_DEMO=1.
func (a *App) AddData() {
	pass1, _ := bcrypt.GenerateFromPassword([]byte("love"), bcrypt.DefaultCost)
	pass2, _ := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)

	hrisi, _ := a.Users.Create(&model.User{Username: "Hrisi", Password: string(pass1)})
	peter, _ := a.Users.Create(&model.User{Username: "Peter", Password: string(pass2)})
	george, _ := a.Users.Create(&model.User{Username: "George", Password: string(pass2)})
	lily, _ := a.Users.Create(&model.User{Username: "Lily", Password: string(pass2)})
	if hrisi == nil || peter == nil || george == nil || lily == nil {
		return
	}

	a.addFriendships(hrisi.ID, peter.ID, george.ID, lily.ID)
	a.addIOUs(hrisi.ID, peter.ID, george.ID, lily.ID)
}

// Peter --> Hrisi (pending)
// Hrisi --> George (pending)
// Peter+George
// Hrisi+Lily
func (a *App) addFriendships(hrisi, peter, george, lily int) {
	one, two := orderPair(hrisi, peter)
	_ = a.Friendship.Add(&model.Friendship{UserOne: one, UserTwo: two, ActionUser: peter})

	one, two = orderPair(hrisi, george)
	_ = a.Friendship.Add(&model.Friendship{UserOne: one, UserTwo: two, ActionUser: hrisi})

	one, two = orderPair(peter, george)
	_ = a.Friendship.Add(&model.Friendship{UserOne: one, UserTwo: two, ActionUser: george})
	_ = a.Friendship.AcceptInvite(one, two, peter)

	one, two = orderPair(hrisi, lily)
	_ = a.Friendship.Add(&model.Friendship{UserOne: one, UserTwo: two, ActionUser: lily})
	_ = a.Friendship.AcceptInvite(one, two, hrisi)
}

// Lily owes Hrisi 30lv for "Bills" (active)
// Peter owes George 60lv for "Restaurant" (pending)
func (a *App) addIOUs(hrisi, peter, george, lily int) {
	bills, err := a.IOUs.Create(&model.IOU{
		CreditorID:  hrisi,
		DebtorID:    lily,
		CreatedBy:   hrisi,
		AmountCents: 3000,
		Description: "Bills",
	})
	if err == nil {
		_ = a.IOUs.Accept(bills.ID, lily)
	}

	_, _ = a.IOUs.Create(&model.IOU{
		CreditorID:  george,
		DebtorID:    peter,
		CreatedBy:   george,
		AmountCents: 6000,
		Description: "Restaurant",
	})
}
