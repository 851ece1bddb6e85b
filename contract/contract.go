package contract

import (
	"time"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type UserRepo interface {
	Find(start, count int) ([]model.User, error)
	FindByID(id int) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindNamesByIDs(ids []int) ([]string, error)
	Create(user *model.User) (*model.User, error)
	UsernameTaken(username string) (bool, error)
	SearchByPrefix(prefix string, viewerID, limit int) ([]model.User, error)
	StreetCred(userID int) (*model.StreetCred, error)
}

type FriendshipRepo interface {
	Add(friendship *model.Friendship) error
	Find(start, count, userID int) ([]int, error)
	FindPending(start, count, userID int) ([]int, error)
	AcceptInvite(userOne, userTwo, actionUser int) error
	DeclineInvite(userOne, userTwo, actionUser int) error
	Remove(userOne, userTwo int) error
	AreFriends(userOne, userTwo int) (bool, error)
	HasPending(userOne, userTwo int) (bool, error)
}

type IOURepo interface {
	Create(iou *model.IOU) (*model.IOU, error)
	FindByID(id int) (*model.IOU, error)
	FindByUser(userID int, role, status string, start, count int) ([]model.IOU, error)
	Accept(id, actorID int) error
	Decline(id, actorID int) error
	Cancel(id, actorID int) error
}

type PaymentRepo interface {
	Log(payment *model.Payment) (*model.Payment, error)
	FindByID(id int) (*model.Payment, error)
	FindByIOU(iouID int) ([]model.Payment, error)
	Confirm(id int) error
	Reject(id int) error
}

type RecurringRepo interface {
	Create(recurring *model.RecurringIOU) (*model.RecurringIOU, error)
	FindByUser(userID int) ([]model.RecurringIOU, error)
	Deactivate(id, ownerID int) error
	FindDue(today time.Time) ([]model.RecurringIOU, error)
	AdvanceNextDue(id int, next time.Time) error
}

type InviteRepo interface {
	Create(inviterID int, token string, expiresAt time.Time) (*model.Invite, error)
	FindByUser(userID int) ([]model.Invite, error)
	FindByToken(token string) (*model.Invite, error)
	Revoke(id, inviterID int) error
	MarkAccepted(id int) error
}

type NotificationRepo interface {
	Add(userID int, kind, body string) error
	Find(userID int, unreadOnly bool, start, count int) ([]model.Notification, error)
	CountUnread(userID int) (int, error)
	MarkRead(id, userID int) error
	MarkAllRead(userID int) error
}

type BlockRepo interface {
	Block(blockerID, blockedID int) error
	Unblock(blockerID, blockedID int) error
	IsBlocked(userOne, userTwo int) (bool, error)
	Find(blockerID int) ([]model.Friend, error)
}

type FeedRepo interface {
	Find(userID, limit int) ([]model.FeedItem, error)
}
