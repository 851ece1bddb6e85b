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

func (a *App) addFriend(w http.ResponseWriter, r *http.Request) {
	userID, username := currentUser(r)

	addFriendModel := &model.AddFriend{}
	if err := json.NewDecoder(r.Body).Decode(addFriendModel); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(addFriendModel); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	friend, err := a.Users.FindByUsername(addFriendModel.FriendName)
	if err != nil {
		message := fmt.Sprintf("There is no user: %v", addFriendModel.FriendName)
		respondWithError(w, http.StatusNotFound, message)
		return
	}

	if friend.ID == userID {
		respondWithError(w, http.StatusBadRequest, "You cannot befriend yourself")
		return
	}

	if blocked, err := a.Blocked.IsBlocked(userID, friend.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	} else if blocked {
		respondWithError(w, http.StatusForbidden, "You cannot befriend this user")
		return
	}

	userOne, userTwo := orderPair(userID, friend.ID)

	if ok, _ := a.Friendship.AreFriends(userOne, userTwo); ok {
		respondWithError(w, http.StatusConflict, "You are already friends")
		return
	}
	if ok, _ := a.Friendship.HasPending(userOne, userTwo); ok {
		respondWithError(w, http.StatusConflict, "Friend request already pending")
		return
	}

	friendship := &model.Friendship{
		UserOne:    userOne,
		UserTwo:    userTwo,
		ActionUser: userID,
	}
	if err := a.Friendship.Add(friendship); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := fmt.Sprintf("%s sent you a friend request", username)
	_ = a.Notifications.Add(friend.ID, model.NotifFriendRequest, body)

	w.WriteHeader(http.StatusCreated)
}

func (a *App) getFriends(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	start, count, ok := a.getStartCount(w, r)
	if !ok {
		return
	}

	friends, err := a.getFriendsData(start, count, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, friends)
}

func (a *App) getPendingFriends(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	start, count, ok := a.getStartCount(w, r)
	if !ok {
		return
	}

	friendIDs, err := a.Friendship.FindPending(start, count, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pending, err := a.convertToFriends(friendIDs)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, model.Friends{Friends: pending})
}

func (a *App) acceptFriend(w http.ResponseWriter, r *http.Request) {
	userID, username := currentUser(r)

	vars := mux.Vars(r)
	friendID, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	userOne, userTwo := orderPair(userID, friendID)
	if err := a.Friendship.AcceptInvite(userOne, userTwo, userID); err != nil {
		a.respondTransitionError(w, err)
		return
	}

	body := fmt.Sprintf("%s accepted your friend request", username)
	_ = a.Notifications.Add(friendID, model.NotifFriendAccept, body)

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) declineFriend(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	vars := mux.Vars(r)
	friendID, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	userOne, userTwo := orderPair(userID, friendID)
	if err := a.Friendship.DeclineInvite(userOne, userTwo, userID); err != nil {
		a.respondTransitionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) unfriend(w http.ResponseWriter, r *http.Request) {
	userID, _ := currentUser(r)

	vars := mux.Vars(r)
	friendID, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	userOne, userTwo := orderPair(userID, friendID)
	if err := a.Friendship.Remove(userOne, userTwo); err != nil {
		a.respondTransitionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) getFriendsData(start, count, userID int) (*model.Friends, error) {
	friendIDs, err := a.Friendship.Find(start, count, userID)
	if err != nil {
		return nil, err
	}

	friends, err := a.convertToFriends(friendIDs)
	if err != nil {
		return nil, err
	}

	return &model.Friends{Friends: friends}, nil
}

func (a *App) convertToFriends(ids []int) ([]model.Friend, error) {
	usernames, err := a.Users.FindNamesByIDs(ids)
	if err != nil {
		return nil, err
	}

	friends := []model.Friend{}
	for i, id := range ids {
		friends = append(friends, model.Friend{ID: id, Username: usernames[i]})
	}
	return friends, nil
}
