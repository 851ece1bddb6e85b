package rest

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kdimitrova/IOU-Tracker/model"
)

func (a *App) getNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	start, count, ok := a.getStartCount(w, r)
	if !ok {
		return
	}

	unreadOnly := r.FormValue("unread") == "true"

	notifications, err := a.Notifications.Find(userID, unreadOnly, start, count)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.Notifications{Notifications: notifications})
}

func (a *App) getUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	count, err := a.Notifications.CountUnread(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.UnreadCount{Count: count})
}

func (a *App) readNotification(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := a.Notifications.MarkRead(id, userID); err != nil {
		a.respondTransitionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) readAllNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	if err := a.Notifications.MarkAllRead(userID); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
