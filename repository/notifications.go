package repository

import (
	"database/sql"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type NotificationRepoMysql struct {
	db *sql.DB
}

func NewNotificationRepoMysql(db *sql.DB) *NotificationRepoMysql {
	return &NotificationRepoMysql{db: db}
}

func (n *NotificationRepoMysql) Add(userID int, kind, body string) error {
	statement := "INSERT INTO notifications(user_id, kind, body) VALUES(?, ?, ?)"
	_, err := n.db.Exec(statement, userID, kind, body)
	return err
}

func (n *NotificationRepoMysql) Find(userID int, unreadOnly bool, start, count int) ([]model.Notification, error) {
	statement := `SELECT id, user_id, kind, body, read_flag, created_at
					FROM notifications WHERE user_id = ?`
	args := []interface{}{userID}

	if unreadOnly {
		statement += " AND read_flag = FALSE"
	}

	statement += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, count, start)

	rows, err := n.db.Query(statement, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var notification model.Notification
		err := rows.Scan(
			&notification.ID, &notification.UserID, &notification.Kind,
			&notification.Body, &notification.Read, &notification.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (n *NotificationRepoMysql) CountUnread(userID int) (int, error) {
	statement := "SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_flag = FALSE"
	var count int
	if err := n.db.QueryRow(statement, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (n *NotificationRepoMysql) MarkRead(id, userID int) error {
	statement := "UPDATE notifications SET read_flag = TRUE WHERE id = ? AND user_id = ? AND read_flag = FALSE"
	result, err := n.db.Exec(statement, id, userID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}

func (n *NotificationRepoMysql) MarkAllRead(userID int) error {
	statement := "UPDATE notifications SET read_flag = TRUE WHERE user_id = ? AND read_flag = FALSE"
	_, err := n.db.Exec(statement, userID)
	return err
}
