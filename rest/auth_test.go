package rest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/kdimitrova/IOU-Tracker/model"
	"github.com/kdimitrova/IOU-Tracker/repository"
)

func signToken(t *testing.T, a *App, userID int, username string) string {
	t.Helper()

	claims := &model.UserToken{
		UserID:   strconv.Itoa(userID),
		Username: username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * 30).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
	assert.NoError(t, err)
	return token
}

func TestJwtVerify(t *testing.T) {
	a := newTestApp()

	var seenID int
	var seenName string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, seenName = currentUser(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := a.jwtVerify(next)

	t.Run("valid bearer token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/home/friends", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, a, 4, "Lily"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 4, seenID)
		assert.Equal(t, "Lily", seenName)
	})
	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/home/friends", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", decodeEnvelope(w).Error.Code)
	})
	t.Run("wrong scheme", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/home/friends", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
	t.Run("garbage token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/home/friends", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
	t.Run("token signed with another secret", func(t *testing.T) {
		other := newTestApp()
		other.jwtSecret = []byte("other-secret")

		r := httptest.NewRequest(http.MethodGet, "/home/friends", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, other, 4, "Lily"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	hrisi := &model.User{ID: 1, Username: "Hrisi", Password: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{findByUsernameFn: func(username string) (*model.User, error) { return hrisi, nil }}

		w := httptest.NewRecorder()
		a.login(w, jsonRequest(http.MethodPost, "/login", model.UserLogin{Username: "Hrisi", Password: "1234"}))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		assert.NoError(t, jsonUnmarshal(decodeEnvelope(w).Data, &resp))
		assert.Equal(t, "Hrisi", resp["username"])
		assert.Equal(t, "1", resp["id"])
		assert.NotEmpty(t, resp["token"])
	})
	t.Run("wrong password", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{findByUsernameFn: func(username string) (*model.User, error) { return hrisi, nil }}

		w := httptest.NewRecorder()
		a.login(w, jsonRequest(http.MethodPost, "/login", model.UserLogin{Username: "Hrisi", Password: "wrong"}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRegister(t *testing.T) {
	t.Run("creates the user", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{
			usernameTakenFn: func(username string) (bool, error) { return false, nil },
			createFn: func(user *model.User) (*model.User, error) {
				user.ID = 5
				return user, nil
			},
		}

		w := httptest.NewRecorder()
		a.register(w, jsonRequest(http.MethodPost, "/register", model.UserRegister{Username: "Maria", Password: "1234"}))

		assert.Equal(t, http.StatusCreated, w.Code)

		var user model.User
		assert.NoError(t, jsonUnmarshal(decodeEnvelope(w).Data, &user))
		assert.Equal(t, 5, user.ID)
		assert.Empty(t, user.Password)
	})
	t.Run("username taken", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{usernameTakenFn: func(username string) (bool, error) { return true, nil }}

		w := httptest.NewRecorder()
		a.register(w, jsonRequest(http.MethodPost, "/register", model.UserRegister{Username: "Hrisi", Password: "1234"}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
	t.Run("duplicate slips past the taken check", func(t *testing.T) {
		// two concurrent registrations can both pass UsernameTaken;
		// the losing insert still has to come back as a conflict
		a := newTestApp()
		a.Users = &stubUserRepo{
			usernameTakenFn: func(username string) (bool, error) { return false, nil },
			createFn: func(user *model.User) (*model.User, error) {
				return nil, repository.ErrDuplicate
			},
		}

		w := httptest.NewRecorder()
		a.register(w, jsonRequest(http.MethodPost, "/register", model.UserRegister{Username: "Hrisi", Password: "1234"}))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decodeEnvelope(w).Error.Code)
	})
	t.Run("password too short", func(t *testing.T) {
		a := newTestApp()

		w := httptest.NewRecorder()
		a.register(w, jsonRequest(http.MethodPost, "/register", model.UserRegister{Username: "Maria", Password: "12"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_failed", decodeEnvelope(w).Error.Code)
	})
	t.Run("valid invite creates the friendship", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{
			usernameTakenFn: func(username string) (bool, error) { return false, nil },
			createFn: func(user *model.User) (*model.User, error) {
				user.ID = 5
				return user, nil
			},
		}
		invite := &model.Invite{
			ID:        2,
			InviterID: 1,
			Token:     "tok",
			Status:    model.InviteStatusPending,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		a.Invites = &stubInviteRepo{findTokenFn: func(token string) (*model.Invite, error) { return invite, nil }}
		notifications := &stubNotificationRepo{}
		a.Notifications = notifications

		var added *model.Friendship
		var accepted bool
		a.Friendship = &stubFriendshipRepo{
			addFn: func(friendship *model.Friendship) error {
				added = friendship
				return nil
			},
			acceptFn: func(userOne, userTwo, actionUser int) error {
				accepted = true
				return nil
			},
		}

		w := httptest.NewRecorder()
		a.register(w, jsonRequest(http.MethodPost, "/register", model.UserRegister{Username: "Maria", Password: "1234", InviteToken: "tok"}))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, &model.Friendship{UserOne: 1, UserTwo: 5, ActionUser: 1}, added)
		assert.True(t, accepted)
		assert.Len(t, notifications.added, 1)
		assert.Equal(t, 1, notifications.added[0].UserID)
	})
	t.Run("expired invite", func(t *testing.T) {
		a := newTestApp()
		a.Users = &stubUserRepo{usernameTakenFn: func(username string) (bool, error) { return false, nil }}
		invite := &model.Invite{
			ID:        2,
			InviterID: 1,
			Status:    model.InviteStatusPending,
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		a.Invites = &stubInviteRepo{findTokenFn: func(token string) (*model.Invite, error) { return invite, nil }}

		w := httptest.NewRecorder()
		a.register(w, jsonRequest(http.MethodPost, "/register", model.UserRegister{Username: "Maria", Password: "1234", InviteToken: "tok"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
