package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/kdimitrova/IOU-Tracker/model"
)

func (a *App) blockUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	blockModel := &model.BlockUser{}
	if err := json.NewDecoder(r.Body).Decode(blockModel); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(blockModel); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	target, err := a.Users.FindByUsername(blockModel.Username)
	if err != nil {
		message := fmt.Sprintf("There is no user: %v", blockModel.Username)
		respondWithError(w, http.StatusNotFound, message)
		return
	}

	if target.ID == userID {
		respondWithError(w, http.StatusBadRequest, "You cannot block yourself")
		return
	}

	if err := a.Blocked.Block(userID, target.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (a *App) getBlocked(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	blocked, err := a.Blocked.Find(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.BlockedUsers{Blocked: blocked})
}

func (a *App) unblockUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	vars := mux.Vars(r)
	blockedID, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := a.Blocked.Unblock(userID, blockedID); err != nil {
		a.respondTransitionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
