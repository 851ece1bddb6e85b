package rest

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kdimitrova/IOU-Tracker/model"
)

const inviteTTL = 7 * 24 * time.Hour

func (a *App) addInvite(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	token := uuid.New().String()
	invite, err := a.Invites.Create(userID, token, time.Now().Add(inviteTTL))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, invite)
}

func (a *App) getInvites(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	invites, err := a.Invites.FindByUser(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// expired is derived, never stored
	now := time.Now()
	for i := range invites {
		if invites[i].Status == model.InviteStatusPending && now.After(invites[i].ExpiresAt) {
			invites[i].Status = model.InviteStatusExpired
		}
	}

	respondWithJSON(w, http.StatusOK, model.Invites{Invites: invites})
}

func (a *App) revokeInvite(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid invite ID")
		return
	}

	if err := a.Invites.Revoke(id, userID); err != nil {
		a.respondTransitionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getInviteByToken backs the unauthenticated invite landing page.
func (a *App) getInviteByToken(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	invite, err := a.Invites.FindByToken(vars["token"])
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusNotFound, "Invite not found")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	inviter, err := a.Users.FindByID(invite.InviterID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.InvitePublic{
		Inviter: inviter.Username,
		Valid:   inviteUsable(invite),
	})
}
