package rest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/kdimitrova/IOU-Tracker/model"
)

func (a *App) getUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var user *model.User
	if user, err = a.Users.FindByID(id); err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusNotFound, "User not found")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	// remove user password
	user.Password = ""

	respondWithJSON(w, http.StatusOK, user)
}

// getUsers searches by username prefix when ?username= is given, otherwise it
// pages through all users.
func (a *App) getUsers(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	if prefix := r.FormValue("username"); prefix != "" {
		users, err := a.Users.SearchByPrefix(prefix, userID, 10)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, model.Users{Users: users})
		return
	}

	start, count, ok := a.getStartCount(w, r)
	if !ok {
		return
	}

	users, err := a.Users.Find(start, count)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, model.Users{Users: users})
}

func (a *App) getStreetCred(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if _, err := a.Users.FindByID(id); err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusNotFound, "User not found")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	cred, err := a.Users.StreetCred(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, cred)
}

// suggestUsernames offers free variants for a taken username: numeric
// suffixes, the current year and an underscore variant.
func (a *App) suggestUsernames(w http.ResponseWriter, r *http.Request) {
	request := &model.SuggestRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(request); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	suggestions, err := a.buildSuggestions(request.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.Suggestions{Usernames: suggestions})
}

func (a *App) buildSuggestions(base string) ([]string, error) {
	const maxSuggestions = 5
	const maxUsernameLen = 32

	candidates := []string{
		base + "_",
		fmt.Sprintf("%s%d", base, time.Now().Year()),
	}
	for i := 1; i <= 20; i++ {
		candidates = append(candidates, fmt.Sprintf("%s%d", base, i))
	}

	suggestions := []string{}
	for _, candidate := range candidates {
		if len(suggestions) == maxSuggestions {
			break
		}
		if len(candidate) > maxUsernameLen {
			continue
		}
		taken, err := a.Users.UsernameTaken(candidate)
		if err != nil {
			return nil, err
		}
		if !taken {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions, nil
}
