package rest

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/kdimitrova/IOU-Tracker/model"
	"github.com/kdimitrova/IOU-Tracker/repository"
)

func TestAddFriend(t *testing.T) {
	lily := &model.User{ID: 4, Username: "Lily"}

	t.Run("sends a request", func(t *testing.T) {
		a := newTestApp()
		notifications := &stubNotificationRepo{}
		a.Notifications = notifications
		a.Users = &stubUserRepo{findByUsernameFn: func(username string) (*model.User, error) { return lily, nil }}
		a.Blocked = &stubBlockRepo{}

		var added *model.Friendship
		a.Friendship = &stubFriendshipRepo{addFn: func(friendship *model.Friendship) error {
			added = friendship
			return nil
		}}

		r := authedRequest(http.MethodPost, "/home/friends", model.AddFriend{FriendName: "Lily"}, 1, "Hrisi")
		w := httptest.NewRecorder()
		a.addFriend(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, &model.Friendship{UserOne: 1, UserTwo: 4, ActionUser: 1}, added)

		assert.Len(t, notifications.added, 1)
		assert.Equal(t, 4, notifications.added[0].UserID)
		assert.Equal(t, model.NotifFriendRequest, notifications.added[0].Kind)
	})
	t.Run("unknown username", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{findByUsernameFn: func(username string) (*model.User, error) {
			return nil, sql.ErrNoRows
		}}

		r := authedRequest(http.MethodPost, "/home/friends", model.AddFriend{FriendName: "Ghost"}, 1, "Hrisi")
		w := httptest.NewRecorder()
		a.addFriend(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	t.Run("befriending yourself", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{findByUsernameFn: func(username string) (*model.User, error) {
			return &model.User{ID: 1, Username: "Hrisi"}, nil
		}}

		r := authedRequest(http.MethodPost, "/home/friends", model.AddFriend{FriendName: "Hrisi"}, 1, "Hrisi")
		w := httptest.NewRecorder()
		a.addFriend(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("blocked user", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{findByUsernameFn: func(username string) (*model.User, error) { return lily, nil }}
		a.Blocked = &stubBlockRepo{blocked: true}

		r := authedRequest(http.MethodPost, "/home/friends", model.AddFriend{FriendName: "Lily"}, 1, "Hrisi")
		w := httptest.NewRecorder()
		a.addFriend(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
	t.Run("already friends", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{findByUsernameFn: func(username string) (*model.User, error) { return lily, nil }}
		a.Blocked = &stubBlockRepo{}
		a.Friendship = &stubFriendshipRepo{areFriends: true}

		r := authedRequest(http.MethodPost, "/home/friends", model.AddFriend{FriendName: "Lily"}, 1, "Hrisi")
		w := httptest.NewRecorder()
		a.addFriend(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
	t.Run("request already pending", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{findByUsernameFn: func(username string) (*model.User, error) { return lily, nil }}
		a.Blocked = &stubBlockRepo{}
		a.Friendship = &stubFriendshipRepo{hasPending: true}

		r := authedRequest(http.MethodPost, "/home/friends", model.AddFriend{FriendName: "Lily"}, 1, "Hrisi")
		w := httptest.NewRecorder()
		a.addFriend(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAcceptFriend(t *testing.T) {
	t.Run("recipient accepts", func(t *testing.T) {
		a := newTestApp()
		notifications := &stubNotificationRepo{}
		a.Notifications = notifications

		var gotOne, gotTwo, gotActor int
		a.Friendship = &stubFriendshipRepo{acceptFn: func(userOne, userTwo, actionUser int) error {
			gotOne, gotTwo, gotActor = userOne, userTwo, actionUser
			return nil
		}}

		r := authedRequest(http.MethodPost, "/home/friends/1/accept", nil, 4, "Lily")
		r = mux.SetURLVars(r, map[string]string{"id": "1"})
		w := httptest.NewRecorder()
		a.acceptFriend(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 1, gotOne)
		assert.Equal(t, 4, gotTwo)
		assert.Equal(t, 4, gotActor)

		assert.Len(t, notifications.added, 1)
		assert.Equal(t, 1, notifications.added[0].UserID)
		assert.Equal(t, model.NotifFriendAccept, notifications.added[0].Kind)
	})
	t.Run("requester cannot accept", func(t *testing.T) {
		a := newTestApp()
		a.Friendship = &stubFriendshipRepo{acceptFn: func(userOne, userTwo, actionUser int) error {
			return repository.ErrNotAllowed
		}}

		r := authedRequest(http.MethodPost, "/home/friends/4/accept", nil, 1, "Hrisi")
		r = mux.SetURLVars(r, map[string]string{"id": "4"})
		w := httptest.NewRecorder()
		a.acceptFriend(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetFriends(t *testing.T) {
	a := newTestApp()
	a.Friendship = &stubFriendshipRepo{findFn: func(start, count, userID int) ([]int, error) {
		return []int{2, 4}, nil
	}}
	a.Users = &stubUserRepo{findNamesFn: func(ids []int) ([]string, error) {
		return []string{"Peter", "Lily"}, nil
	}}

	r := authedRequest(http.MethodGet, "/home/friends", nil, 1, "Hrisi")
	w := httptest.NewRecorder()
	a.getFriends(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var friends model.Friends
	assert.NoError(t, jsonUnmarshal(decodeEnvelope(w).Data, &friends))
	assert.Equal(t, []model.Friend{{ID: 2, Username: "Peter"}, {ID: 4, Username: "Lily"}}, friends.Friends)
}
