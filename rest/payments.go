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

// The debtor logs a partial payment, the creditor has to confirm it before it
// counts against the debt.
func (a *App) logPayment(w http.ResponseWriter, r *http.Request) {
	userID, username := currentUser(r)

	iou, ok := a.findPartyIOU(w, r, userID)
	if !ok {
		return
	}

	if iou.DebtorID != userID {
		respondWithError(w, http.StatusForbidden, "Only the debtor can log a payment")
		return
	}
	if iou.Status != model.IOUStatusActive {
		respondWithError(w, http.StatusConflict, "IOU is not active")
		return
	}

	logModel := &model.LogPayment{}
	if err := json.NewDecoder(r.Body).Decode(logModel); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(logModel); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	payment := &model.Payment{
		IOUID:       iou.ID,
		AmountCents: logModel.AmountCents,
		Note:        logModel.Note,
	}

	payment, err := a.Payments.Log(payment)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusConflict, "IOU is not active")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	body := fmt.Sprintf("%s logged a payment of %d cents", username, payment.AmountCents)
	_ = a.Notifications.Add(iou.CreditorID, model.NotifPaymentLogged, body)

	respondWithJSON(w, http.StatusCreated, payment)
}

func (a *App) getPayments(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	iou, ok := a.findPartyIOU(w, r, userID)
	if !ok {
		return
	}

	payments, err := a.Payments.FindByIOU(iou.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.Payments{Payments: payments})
}

func (a *App) confirmPayment(w http.ResponseWriter, r *http.Request) {
	a.settlePayment(w, r, true)
}

func (a *App) rejectPayment(w http.ResponseWriter, r *http.Request) {
	a.settlePayment(w, r, false)
}

func (a *App) settlePayment(w http.ResponseWriter, r *http.Request, confirm bool) {
	userID, username := currentUser(r)

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	payment, err := a.Payments.FindByID(id)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusNotFound, "Payment not found")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	iou, err := a.IOUs.FindByID(payment.IOUID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if iou.CreditorID != userID {
		respondWithError(w, http.StatusForbidden, "Only the creditor can settle a payment")
		return
	}

	kind, verb := model.NotifPaymentConfirmed, "confirmed"
	if confirm {
		err = a.Payments.Confirm(payment.ID)
	} else {
		err = a.Payments.Reject(payment.ID)
		kind, verb = model.NotifPaymentRejected, "rejected"
	}
	if err != nil {
		a.respondTransitionError(w, err)
		return
	}

	body := fmt.Sprintf("%s %s your payment of %d cents", username, verb, payment.AmountCents)
	_ = a.Notifications.Add(iou.DebtorID, kind, body)

	w.WriteHeader(http.StatusNoContent)
}
