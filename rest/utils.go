package rest

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/kdimitrova/IOU-Tracker/repository"
)

// getStartCount reads the start/count paging parameters. start is 1-based in
// the query. Writes the error response itself and reports ok=false on bad input.
func (a *App) getStartCount(w http.ResponseWriter, r *http.Request) (start, count int, ok bool) {
	count, err := strconv.Atoi(r.FormValue("count"))
	if err != nil && r.FormValue("count") != "" {
		respondWithError(w, http.StatusBadRequest, "Invalid request count parameter")
		return 0, 0, false
	}
	start, err = strconv.Atoi(r.FormValue("start"))
	if err != nil && r.FormValue("start") != "" {
		respondWithError(w, http.StatusBadRequest, "Invalid request start parameter")
		return 0, 0, false
	}

	const (
		minOffset = 0
		minLimit  = 1
		maxLimit  = 10
	)

	start--
	if count > maxLimit || count < minLimit {
		count = maxLimit
	}
	if start < minOffset {
		start = minOffset
	}
	return start, count, true
}

// respondTransitionError maps repository errors from conditional updates:
// a missing row is 404, a refused transition or wrong actor is 409.
func (a *App) respondTransitionError(w http.ResponseWriter, err error) {
	switch err {
	case sql.ErrNoRows:
		respondWithError(w, http.StatusNotFound, "Not found")
	case repository.ErrNotAllowed:
		respondWithError(w, http.StatusConflict, "Operation not allowed")
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// orderPair returns the two ids with the lowest first, the friendship table
// stores user_one_id < user_two_id.
func orderPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

