package rest

import (
	"net/http"
	"strconv"

	"github.com/kdimitrova/IOU-Tracker/model"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 50
)

func (a *App) getFeed(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	limit := defaultFeedLimit
	if raw := r.FormValue("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
		if limit > maxFeedLimit {
			limit = maxFeedLimit
		}
	}

	items, err := a.Feed.Find(userID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.Feed{Items: items})
}
