package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/kdimitrova/IOU-Tracker/model"
)

func (a *App) addRecurring(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	createModel := &model.CreateRecurring{}
	if err := json.NewDecoder(r.Body).Decode(createModel); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(createModel); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	nextDue, err := time.Parse("2006-01-02", createModel.NextDue)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid nextDue date, want YYYY-MM-DD")
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

	recurring := &model.RecurringIOU{
		CreditorID:  creditorID,
		DebtorID:    debtorID,
		CreatedBy:   userID,
		AmountCents: createModel.AmountCents,
		Description: createModel.Description,
		Frequency:   createModel.Frequency,
		NextDue:     nextDue,
	}

	recurring, err = a.Recurring.Create(recurring)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, recurring)
}

func (a *App) getRecurring(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	recurring, err := a.Recurring.FindByUser(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.RecurringIOUs{Recurring: recurring})
}

func (a *App) deactivateRecurring(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid recurring ID")
		return
	}

	if err := a.Recurring.Deactivate(id, userID); err != nil {
		a.respondTransitionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// generateRecurring inserts a pending IOU for every active template whose due
// date has passed, advancing next_due until it lands in the future. One
// sequential pass, triggered over HTTP.
func (a *App) generateRecurring(w http.ResponseWriter, r *http.Request) {
	today := truncateToDay(time.Now())

	due, err := a.Recurring.FindDue(today)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	created := 0
	for _, template := range due {
		// a block placed after the template was created suppresses generation;
		// next_due stays put, so unblocking catches up
		if blocked, err := a.Blocked.IsBlocked(template.CreditorID, template.DebtorID); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		} else if blocked {
			continue
		}

		next := truncateToDay(template.NextDue)
		for !next.After(today) {
			iou := &model.IOU{
				CreditorID:  template.CreditorID,
				DebtorID:    template.DebtorID,
				CreatedBy:   template.CreatedBy,
				AmountCents: template.AmountCents,
				Description: template.Description,
				RecurringID: template.ID,
			}
			if _, err := a.IOUs.Create(iou); err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}

			counterparty := template.DebtorID
			if template.CreatedBy == template.DebtorID {
				counterparty = template.CreditorID
			}
			body := fmt.Sprintf("Recurring debt of %d cents is due: %s", template.AmountCents, template.Description)
			_ = a.Notifications.Add(counterparty, model.NotifIOUCreated, body)

			created++
			next = nextDueDate(next, template.Frequency)
		}

		if err := a.Recurring.AdvanceNextDue(template.ID, next); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	respondWithJSON(w, http.StatusOK, model.GenerateResult{Created: created})
}

// nextDueDate advances a due date by one period. Monthly advances clamp the
// day to the length of the target month (Jan 31 -> Feb 28).
func nextDueDate(current time.Time, frequency string) time.Time {
	if frequency == model.FrequencyWeekly {
		return current.AddDate(0, 0, 7)
	}

	year, month, day := current.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, current.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month+1, day, 0, 0, 0, 0, current.Location())
}

// truncateToDay normalizes to UTC midnight; next_due scans as UTC through
// parseTime=true, so comparing against local midnight would shift the boundary.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
