package repository

import (
	"database/sql"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type FeedRepoMysql struct {
	db *sql.DB
}

func NewFeedRepoMysql(db *sql.DB) *FeedRepoMysql {
	return &FeedRepoMysql{db: db}
}

// Find returns the user's recent activity: their IOUs, confirmed payments on
// them and friendship events, newest first.
func (f *FeedRepoMysql) Find(userID, limit int) ([]model.FeedItem, error) {
	statement := `SELECT CONCAT('iou_', i.status), i.id, u.username, i.amount_cents, i.description, i.created_at
					FROM ious i
					JOIN users u ON u.id = IF(i.creditor_id = ?, i.debtor_id, i.creditor_id)
					WHERE i.creditor_id = ? OR i.debtor_id = ?
				UNION ALL
				SELECT 'payment', p.id, u.username, p.amount_cents, p.note, p.created_at
					FROM payments p
					JOIN ious i ON i.id = p.iou_id
					JOIN users u ON u.id = IF(i.creditor_id = ?, i.debtor_id, i.creditor_id)
					WHERE p.status = 'confirmed' AND (i.creditor_id = ? OR i.debtor_id = ?)
				UNION ALL
				SELECT CONCAT('friend_', fr.status), 0, u.username, 0, '', fr.created_at
					FROM friendship fr
					JOIN users u ON u.id = IF(fr.user_one_id = ?, fr.user_two_id, fr.user_one_id)
					WHERE (fr.user_one_id = ? OR fr.user_two_id = ?) AND fr.status IN ('pending', 'accepted')
				ORDER BY created_at DESC
				LIMIT ?`

	rows, err := f.db.Query(statement,
		userID, userID, userID,
		userID, userID, userID,
		userID, userID, userID,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.FeedItem{}
	for rows.Next() {
		var item model.FeedItem
		err := rows.Scan(
			&item.Kind, &item.RefID, &item.OtherUser,
			&item.AmountCents, &item.Description, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
