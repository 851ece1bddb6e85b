package repository

import (
	"database/sql"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type BlockRepoMysql struct {
	db *sql.DB
}

func NewBlockRepoMysql(db *sql.DB) *BlockRepoMysql {
	return &BlockRepoMysql{db: db}
}

func (b *BlockRepoMysql) Block(blockerID, blockedID int) error {
	statement := "INSERT IGNORE INTO blocked_users(blocker_id, blocked_id) VALUES(?, ?)"
	_, err := b.db.Exec(statement, blockerID, blockedID)
	return err
}

func (b *BlockRepoMysql) Unblock(blockerID, blockedID int) error {
	statement := "DELETE FROM blocked_users WHERE blocker_id = ? AND blocked_id = ?"
	result, err := b.db.Exec(statement, blockerID, blockedID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}

// IsBlocked reports a block in either direction between the two users.
func (b *BlockRepoMysql) IsBlocked(userOne, userTwo int) (bool, error) {
	statement := `SELECT EXISTS(SELECT 1 FROM blocked_users
					WHERE (blocker_id = ? AND blocked_id = ?)
					   OR (blocker_id = ? AND blocked_id = ?))`
	var blocked bool
	err := b.db.QueryRow(statement, userOne, userTwo, userTwo, userOne).Scan(&blocked)
	if err != nil {
		return false, err
	}
	return blocked, nil
}

func (b *BlockRepoMysql) Find(blockerID int) ([]model.Friend, error) {
	statement := `SELECT u.id, u.username FROM blocked_users b
					JOIN users u ON u.id = b.blocked_id
					WHERE b.blocker_id = ? ORDER BY u.username`
	rows, err := b.db.Query(statement, blockerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocked := []model.Friend{}
	for rows.Next() {
		var user model.Friend
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, err
		}
		blocked = append(blocked, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return blocked, nil
}
