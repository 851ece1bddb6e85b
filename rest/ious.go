package rest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/kdimitrova/IOU-Tracker/model"
)

// "I owe you 20lv for Pizza" --> the counterparty has to accept it before the
// IOU becomes active.
func (a *App) addIOU(w http.ResponseWriter, r *http.Request) {
	userID, username := currentUser(r)

	createModel := &model.CreateIOU{}
	if err := json.NewDecoder(r.Body).Decode(createModel); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(createModel); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	if createModel.CounterpartyID == userID {
		respondWithError(w, http.StatusBadRequest, "You cannot owe yourself")
		return
	}

	if blocked, err := a.Blocked.IsBlocked(userID, createModel.CounterpartyID); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	} else if blocked {
		respondWithError(w, http.StatusForbidden, "You cannot record debts with this user")
		return
	}

	userOne, userTwo := orderPair(userID, createModel.CounterpartyID)
	if ok, err := a.Friendship.AreFriends(userOne, userTwo); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	} else if !ok {
		respondWithError(w, http.StatusForbidden, "You can only record debts with friends")
		return
	}

	creditorID, debtorID := createModel.CounterpartyID, userID
	if createModel.Direction == model.DirectionUOMe {
		creditorID, debtorID = userID, createModel.CounterpartyID
	}

	iou := &model.IOU{
		CreditorID:  creditorID,
		DebtorID:    debtorID,
		CreatedBy:   userID,
		AmountCents: createModel.AmountCents,
		Description: createModel.Description,
	}

	iou, err := a.IOUs.Create(iou)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := fmt.Sprintf("%s recorded a debt of %d cents: %s", username, iou.AmountCents, iou.Description)
	_ = a.Notifications.Add(createModel.CounterpartyID, model.NotifIOUCreated, body)

	respondWithJSON(w, http.StatusCreated, iou)
}

func (a *App) getIOUs(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	start, count, ok := a.getStartCount(w, r)
	if !ok {
		return
	}

	role := r.FormValue("role")
	if role != "" && role != "debtor" && role != "creditor" {
		respondWithError(w, http.StatusBadRequest, "Invalid role parameter")
		return
	}

	status := r.FormValue("status")
	switch status {
	case "", model.IOUStatusPending, model.IOUStatusActive, model.IOUStatusDeclined,
		model.IOUStatusCancelled, model.IOUStatusPaid:
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid status parameter")
		return
	}

	ious, err := a.IOUs.FindByUser(userID, role, status, start, count)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.IOUs{IOUs: ious})
}

func (a *App) getIOU(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	iou, ok := a.findPartyIOU(w, r, userID)
	if !ok {
		return
	}

	respondWithJSON(w, http.StatusOK, iou)
}

func (a *App) acceptIOU(w http.ResponseWriter, r *http.Request) {
	a.transitionIOU(w, r, model.IOUStatusActive)
}

func (a *App) declineIOU(w http.ResponseWriter, r *http.Request) {
	a.transitionIOU(w, r, model.IOUStatusDeclined)
}

func (a *App) transitionIOU(w http.ResponseWriter, r *http.Request, to string) {
	userID, username := currentUser(r)

	iou, ok := a.findPartyIOU(w, r, userID)
	if !ok {
		return
	}

	var err error
	var kind, verb string
	switch to {
	case model.IOUStatusActive:
		err = a.IOUs.Accept(iou.ID, userID)
		kind, verb = model.NotifIOUAccepted, "accepted"
	case model.IOUStatusDeclined:
		err = a.IOUs.Decline(iou.ID, userID)
		kind, verb = model.NotifIOUDeclined, "declined"
	}
	if err != nil {
		a.respondTransitionError(w, err)
		return
	}

	body := fmt.Sprintf("%s %s the debt: %s", username, verb, iou.Description)
	_ = a.Notifications.Add(iou.CreatedBy, kind, body)

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) cancelIOU(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	iou, ok := a.findPartyIOU(w, r, userID)
	if !ok {
		return
	}

	if err := a.IOUs.Cancel(iou.ID, userID); err != nil {
		a.respondTransitionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// findPartyIOU loads the IOU from the path and checks the caller is one of
// its two parties. Writes the error response itself on failure.
func (a *App) findPartyIOU(w http.ResponseWriter, r *http.Request, userID int) (*model.IOU, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid IOU ID")
		return nil, false
	}

	iou, err := a.IOUs.FindByID(id)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusNotFound, "IOU not found")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}

	if iou.CreditorID != userID && iou.DebtorID != userID {
		respondWithError(w, http.StatusForbidden, "Not your IOU")
		return nil, false
	}

	return iou, true
}
