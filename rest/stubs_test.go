package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/kdimitrova/IOU-Tracker/model"
)

func newTestApp() *App {
	a := &App{jwtSecret: []byte("test-secret")}

	a.Validator = validator.New()
	eng := en.New()
	uni := ut.New(eng, eng)
	a.Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(a.Validator, a.Translator)

	return a
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	return httptest.NewRequest(method, target, &buf)
}

// authedRequest builds a request that already passed jwtVerify.
func authedRequest(method, target string, body interface{}, userID int, username string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)

	claims := &model.UserToken{UserID: strconv.Itoa(userID), Username: username}
	ctx := context.WithValue(r.Context(), userContextKey, claims)
	return r.WithContext(ctx)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(w *httptest.ResponseRecorder) envelope {
	var e envelope
	_ = json.Unmarshal(w.Body.Bytes(), &e)
	return e
}

func jsonUnmarshal(data json.RawMessage, v interface{}) error {
	return json.Unmarshal(data, v)
}

// Stub repositories. Unset functions return zero values.

type stubUserRepo struct {
	findFn           func(start, count int) ([]model.User, error)
	findByIDFn       func(id int) (*model.User, error)
	findByUsernameFn func(username string) (*model.User, error)
	findNamesFn      func(ids []int) ([]string, error)
	createFn         func(user *model.User) (*model.User, error)
	usernameTakenFn  func(username string) (bool, error)
	searchFn         func(prefix string, viewerID, limit int) ([]model.User, error)
	streetCredFn     func(userID int) (*model.StreetCred, error)
}

func (s *stubUserRepo) Find(start, count int) ([]model.User, error) {
	if s.findFn == nil {
		return []model.User{}, nil
	}
	return s.findFn(start, count)
}

func (s *stubUserRepo) FindByID(id int) (*model.User, error) {
	return s.findByIDFn(id)
}

func (s *stubUserRepo) FindByUsername(username string) (*model.User, error) {
	return s.findByUsernameFn(username)
}

func (s *stubUserRepo) FindNamesByIDs(ids []int) ([]string, error) {
	if s.findNamesFn == nil {
		return make([]string, len(ids)), nil
	}
	return s.findNamesFn(ids)
}

func (s *stubUserRepo) Create(user *model.User) (*model.User, error) {
	return s.createFn(user)
}

func (s *stubUserRepo) UsernameTaken(username string) (bool, error) {
	return s.usernameTakenFn(username)
}

func (s *stubUserRepo) SearchByPrefix(prefix string, viewerID, limit int) ([]model.User, error) {
	return s.searchFn(prefix, viewerID, limit)
}

func (s *stubUserRepo) StreetCred(userID int) (*model.StreetCred, error) {
	return s.streetCredFn(userID)
}

type stubFriendshipRepo struct {
	addFn      func(friendship *model.Friendship) error
	areFriends bool
	hasPending bool
	acceptFn   func(userOne, userTwo, actionUser int) error
	declineFn  func(userOne, userTwo, actionUser int) error
	removeFn   func(userOne, userTwo int) error
	findFn     func(start, count, userID int) ([]int, error)
	findPendFn func(start, count, userID int) ([]int, error)
}

func (s *stubFriendshipRepo) Add(friendship *model.Friendship) error {
	if s.addFn == nil {
		return nil
	}
	return s.addFn(friendship)
}

func (s *stubFriendshipRepo) Find(start, count, userID int) ([]int, error) {
	if s.findFn == nil {
		return []int{}, nil
	}
	return s.findFn(start, count, userID)
}

func (s *stubFriendshipRepo) FindPending(start, count, userID int) ([]int, error) {
	if s.findPendFn == nil {
		return []int{}, nil
	}
	return s.findPendFn(start, count, userID)
}

func (s *stubFriendshipRepo) AcceptInvite(userOne, userTwo, actionUser int) error {
	if s.acceptFn == nil {
		return nil
	}
	return s.acceptFn(userOne, userTwo, actionUser)
}

func (s *stubFriendshipRepo) DeclineInvite(userOne, userTwo, actionUser int) error {
	if s.declineFn == nil {
		return nil
	}
	return s.declineFn(userOne, userTwo, actionUser)
}

func (s *stubFriendshipRepo) Remove(userOne, userTwo int) error {
	if s.removeFn == nil {
		return nil
	}
	return s.removeFn(userOne, userTwo)
}

func (s *stubFriendshipRepo) AreFriends(userOne, userTwo int) (bool, error) {
	return s.areFriends, nil
}

func (s *stubFriendshipRepo) HasPending(userOne, userTwo int) (bool, error) {
	return s.hasPending, nil
}

type stubIOURepo struct {
	createFn   func(iou *model.IOU) (*model.IOU, error)
	findByIDFn func(id int) (*model.IOU, error)
	findFn     func(userID int, role, status string, start, count int) ([]model.IOU, error)
	acceptFn   func(id, actorID int) error
	declineFn  func(id, actorID int) error
	cancelFn   func(id, actorID int) error
}

func (s *stubIOURepo) Create(iou *model.IOU) (*model.IOU, error) {
	return s.createFn(iou)
}

func (s *stubIOURepo) FindByID(id int) (*model.IOU, error) {
	return s.findByIDFn(id)
}

func (s *stubIOURepo) FindByUser(userID int, role, status string, start, count int) ([]model.IOU, error) {
	if s.findFn == nil {
		return []model.IOU{}, nil
	}
	return s.findFn(userID, role, status, start, count)
}

func (s *stubIOURepo) Accept(id, actorID int) error  { return s.acceptFn(id, actorID) }
func (s *stubIOURepo) Decline(id, actorID int) error { return s.declineFn(id, actorID) }
func (s *stubIOURepo) Cancel(id, actorID int) error  { return s.cancelFn(id, actorID) }

type stubPaymentRepo struct {
	logFn       func(payment *model.Payment) (*model.Payment, error)
	findByIDFn  func(id int) (*model.Payment, error)
	findByIOUFn func(iouID int) ([]model.Payment, error)
	confirmFn   func(id int) error
	rejectFn    func(id int) error
}

func (s *stubPaymentRepo) Log(payment *model.Payment) (*model.Payment, error) {
	return s.logFn(payment)
}

func (s *stubPaymentRepo) FindByID(id int) (*model.Payment, error) {
	return s.findByIDFn(id)
}

func (s *stubPaymentRepo) FindByIOU(iouID int) ([]model.Payment, error) {
	if s.findByIOUFn == nil {
		return []model.Payment{}, nil
	}
	return s.findByIOUFn(iouID)
}

func (s *stubPaymentRepo) Confirm(id int) error { return s.confirmFn(id) }
func (s *stubPaymentRepo) Reject(id int) error  { return s.rejectFn(id) }

type stubRecurringRepo struct {
	createFn     func(recurring *model.RecurringIOU) (*model.RecurringIOU, error)
	findByUserFn func(userID int) ([]model.RecurringIOU, error)
	deactivateFn func(id, ownerID int) error
	findDueFn    func(today time.Time) ([]model.RecurringIOU, error)
	advanceFn    func(id int, next time.Time) error
}

func (s *stubRecurringRepo) Create(recurring *model.RecurringIOU) (*model.RecurringIOU, error) {
	return s.createFn(recurring)
}

func (s *stubRecurringRepo) FindByUser(userID int) ([]model.RecurringIOU, error) {
	if s.findByUserFn == nil {
		return []model.RecurringIOU{}, nil
	}
	return s.findByUserFn(userID)
}

func (s *stubRecurringRepo) Deactivate(id, ownerID int) error {
	return s.deactivateFn(id, ownerID)
}

func (s *stubRecurringRepo) FindDue(today time.Time) ([]model.RecurringIOU, error) {
	return s.findDueFn(today)
}

func (s *stubRecurringRepo) AdvanceNextDue(id int, next time.Time) error {
	if s.advanceFn == nil {
		return nil
	}
	return s.advanceFn(id, next)
}

type stubInviteRepo struct {
	createFn     func(inviterID int, token string, expiresAt time.Time) (*model.Invite, error)
	findByUserFn func(userID int) ([]model.Invite, error)
	findTokenFn  func(token string) (*model.Invite, error)
	revokeFn     func(id, inviterID int) error
	acceptFn     func(id int) error
}

func (s *stubInviteRepo) Create(inviterID int, token string, expiresAt time.Time) (*model.Invite, error) {
	return s.createFn(inviterID, token, expiresAt)
}

func (s *stubInviteRepo) FindByUser(userID int) ([]model.Invite, error) {
	return s.findByUserFn(userID)
}

func (s *stubInviteRepo) FindByToken(token string) (*model.Invite, error) {
	return s.findTokenFn(token)
}

func (s *stubInviteRepo) Revoke(id, inviterID int) error { return s.revokeFn(id, inviterID) }

func (s *stubInviteRepo) MarkAccepted(id int) error {
	if s.acceptFn == nil {
		return nil
	}
	return s.acceptFn(id)
}

type stubNotificationRepo struct {
	added []model.Notification
}

func (s *stubNotificationRepo) Add(userID int, kind, body string) error {
	s.added = append(s.added, model.Notification{UserID: userID, Kind: kind, Body: body})
	return nil
}

func (s *stubNotificationRepo) Find(userID int, unreadOnly bool, start, count int) ([]model.Notification, error) {
	return s.added, nil
}

func (s *stubNotificationRepo) CountUnread(userID int) (int, error) {
	return len(s.added), nil
}

func (s *stubNotificationRepo) MarkRead(id, userID int) error { return nil }
func (s *stubNotificationRepo) MarkAllRead(userID int) error  { return nil }

type stubBlockRepo struct {
	blocked   bool
	blockFn   func(blockerID, blockedID int) error
	unblockFn func(blockerID, blockedID int) error
	findFn    func(blockerID int) ([]model.Friend, error)
}

func (s *stubBlockRepo) Block(blockerID, blockedID int) error {
	if s.blockFn == nil {
		return nil
	}
	return s.blockFn(blockerID, blockedID)
}

func (s *stubBlockRepo) Unblock(blockerID, blockedID int) error {
	if s.unblockFn == nil {
		return nil
	}
	return s.unblockFn(blockerID, blockedID)
}

func (s *stubBlockRepo) IsBlocked(userOne, userTwo int) (bool, error) {
	return s.blocked, nil
}

func (s *stubBlockRepo) Find(blockerID int) ([]model.Friend, error) {
	if s.findFn == nil {
		return []model.Friend{}, nil
	}
	return s.findFn(blockerID)
}

type stubFeedRepo struct {
	items []model.FeedItem
}

func (s *stubFeedRepo) Find(userID, limit int) ([]model.FeedItem, error) {
	return s.items, nil
}
