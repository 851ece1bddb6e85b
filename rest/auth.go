package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/kdimitrova/IOU-Tracker/model"
	"github.com/kdimitrova/IOU-Tracker/repository"
)

type contextKey string

const userContextKey contextKey = "user"

func (a *App) jwtVerify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing auth token")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims := &model.UserToken{}
		_, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return a.jwtSecret, nil
		})
		if err != nil {
			respondWithError(w, http.StatusForbidden, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the id and username from the verified token claims.
func currentUser(r *http.Request) (int, string) {
	claims, ok := r.Context().Value(userContextKey).(*model.UserToken)
	if !ok {
		return 0, ""
	}
	id, _ := strconv.Atoi(claims.UserID)
	return id, claims.Username
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	userCredentials := &model.UserLogin{}
	err := json.NewDecoder(r.Body).Decode(userCredentials)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	resp, err := a.checkCredentials(w, userCredentials.Username, userCredentials.Password)
	if err == nil {
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func (a *App) checkCredentials(w http.ResponseWriter, username, password string) (map[string]string, error) {
	user, err := a.Users.FindByUsername(username)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid login credentials. Please try again")
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid login credentials. Please try again")
		return nil, err
	}

	expiresAt := time.Now().Add(time.Minute * 30).Unix()
	claims := &model.UserToken{
		UserID:   strconv.Itoa(user.ID),
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Could not sign token")
		return nil, err
	}

	resp := map[string]string{"token": tokenString, "username": user.Username, "id": strconv.Itoa(user.ID)}
	return resp, nil
}

func (a *App) register(w http.ResponseWriter, r *http.Request) {
	registration := &model.UserRegister{}

	// r.Body: {"username":"peter", "password": "1234", "inviteToken": "..."}
	if err := json.NewDecoder(r.Body).Decode(registration); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(registration); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	taken, err := a.Users.UsernameTaken(registration.Username)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if taken {
		respondWithError(w, http.StatusConflict, "Username already taken")
		return
	}

	var invite *model.Invite
	if registration.InviteToken != "" {
		invite, err = a.Invites.FindByToken(registration.InviteToken)
		if err != nil || !inviteUsable(invite) {
			respondWithError(w, http.StatusBadRequest, "Invite is invalid or expired")
			return
		}
	}

	pass, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Password encryption failed")
		return
	}

	user := &model.User{Username: registration.Username, Password: string(pass)}
	if user, err = a.Users.Create(user); err != nil {
		// UsernameTaken raced with a concurrent registration
		if err == repository.ErrDuplicate {
			respondWithError(w, http.StatusConflict, "Username already taken")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if invite != nil {
		a.acceptInviteFriendship(invite, user)
	}

	// remove user password
	user.Password = ""

	respondWithJSON(w, http.StatusCreated, user)
}

// acceptInviteFriendship links the new user with the inviter: the invite is
// marked accepted and an accepted friendship is created right away.
func (a *App) acceptInviteFriendship(invite *model.Invite, user *model.User) {
	if err := a.Invites.MarkAccepted(invite.ID); err != nil {
		return
	}

	userOne, userTwo := orderPair(invite.InviterID, user.ID)
	_ = a.Friendship.Add(&model.Friendship{
		UserOne:    userOne,
		UserTwo:    userTwo,
		ActionUser: invite.InviterID,
	})
	_ = a.Friendship.AcceptInvite(userOne, userTwo, user.ID)

	body := fmt.Sprintf("%s joined from your invite", user.Username)
	_ = a.Notifications.Add(invite.InviterID, model.NotifFriendAccept, body)
}

func inviteUsable(invite *model.Invite) bool {
	return invite.Status == model.InviteStatusPending && time.Now().Before(invite.ExpiresAt)
}
