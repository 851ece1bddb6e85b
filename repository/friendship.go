package repository

import (
	"database/sql"
	"errors"

	"github.com/kdimitrova/IOU-Tracker/model"
)

const (
	pending  = "pending"
	accepted = "accepted"
	declined = "declined"
)

type FriendshipRepoMysql struct {
	db *sql.DB
}

func NewFriendRepoMysql(db *sql.DB) *FriendshipRepoMysql {
	return &FriendshipRepoMysql{db: db}
}

func (f *FriendshipRepoMysql) Add(friends *model.Friendship) error {
	if ok, _ := f.AreFriends(friends.UserOne, friends.UserTwo); ok {
		return errors.New("you are already friends")
	}
	statement := `INSERT INTO friendship(user_one_id, user_two_id, status, action_user_id) VALUES(?, ?, ?, ?)
					ON DUPLICATE KEY UPDATE status = VALUES(status), action_user_id = VALUES(action_user_id)`
	_, err := f.db.Exec(statement, friends.UserOne, friends.UserTwo, pending, friends.ActionUser)
	if err != nil {
		return err
	}

	return nil
}

func (f *FriendshipRepoMysql) AreFriends(userOne, userTwo int) (bool, error) {
	statement := "SELECT EXISTS(SELECT 1 FROM friendship WHERE user_one_id = ? AND user_two_id = ? AND status = ?)"
	var exists bool
	err := f.db.QueryRow(statement, userOne, userTwo, accepted).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (f *FriendshipRepoMysql) HasPending(userOne, userTwo int) (bool, error) {
	statement := "SELECT EXISTS(SELECT 1 FROM friendship WHERE user_one_id = ? AND user_two_id = ? AND status = ?)"
	var exists bool
	err := f.db.QueryRow(statement, userOne, userTwo, pending).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (f FriendshipRepoMysql) Find(start, count, userID int) ([]int, error) {
	statement := `SELECT user_one_id, user_two_id FROM friendship
					WHERE (user_one_id = ? OR user_two_id = ?) AND status = ?
					LIMIT ? OFFSET ?`
	rows, err := f.db.Query(statement, userID, userID, accepted, count, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := []int{}
	for rows.Next() {
		var userOne, userTwo int
		err := rows.Scan(&userOne, &userTwo)
		if err != nil {
			return nil, err
		}

		var friendID int
		if userOne != userID {
			friendID = userOne
		} else {
			friendID = userTwo
		}

		friends = append(friends, friendID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return friends, nil
}

func (f FriendshipRepoMysql) FindPending(start, count, userID int) ([]int, error) {
	statement := `SELECT user_one_id, user_two_id FROM friendship
					WHERE (user_one_id = ? OR user_two_id = ?) AND status = ? AND action_user_id != ?
					LIMIT ? OFFSET ?`
	rows, err := f.db.Query(statement, userID, userID, pending, userID, count, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := []int{}
	for rows.Next() {
		var userOne, userTwo int
		err := rows.Scan(&userOne, &userTwo)
		if err != nil {
			return nil, err
		}

		var friendID int
		if userOne != userID {
			friendID = userOne
		} else {
			friendID = userTwo
		}

		friends = append(friends, friendID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return friends, nil
}

// AcceptInvite flips a pending request to accepted. The action user must not
// be the one who sent the request.
func (f FriendshipRepoMysql) AcceptInvite(userOne, userTwo, actionUser int) error {
	statement := `UPDATE friendship SET status = ?, action_user_id = ?
					WHERE user_one_id = ? AND user_two_id = ? AND status = ? AND action_user_id != ?`
	result, err := f.db.Exec(statement, accepted, actionUser, userOne, userTwo, pending, actionUser)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}

func (f FriendshipRepoMysql) DeclineInvite(userOne, userTwo, actionUser int) error {
	statement := `UPDATE friendship SET status = ?, action_user_id = ?
					WHERE user_one_id = ? AND user_two_id = ? AND status = ? AND action_user_id != ?`
	result, err := f.db.Exec(statement, declined, actionUser, userOne, userTwo, pending, actionUser)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}

func (f FriendshipRepoMysql) Remove(userOne, userTwo int) error {
	statement := "DELETE FROM friendship WHERE user_one_id = ? AND user_two_id = ? AND status = ?"
	result, err := f.db.Exec(statement, userOne, userTwo, accepted)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}
