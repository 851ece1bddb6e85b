package repository

import (
	"database/sql"
	"time"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type InviteRepoMysql struct {
	db *sql.DB
}

func NewInviteRepoMysql(db *sql.DB) *InviteRepoMysql {
	return &InviteRepoMysql{db: db}
}

func (i *InviteRepoMysql) Create(inviterID int, token string, expiresAt time.Time) (*model.Invite, error) {
	statement := "INSERT INTO invites(inviter_id, token, status, expires_at) VALUES(?, ?, ?, ?)"
	result, err := i.db.Exec(statement, inviterID, token, model.InviteStatusPending, expiresAt)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.Invite{
		ID:        int(id),
		InviterID: inviterID,
		Token:     token,
		Status:    model.InviteStatusPending,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}, nil
}

func (i *InviteRepoMysql) FindByUser(userID int) ([]model.Invite, error) {
	statement := `SELECT id, inviter_id, token, status, created_at, expires_at
					FROM invites WHERE inviter_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := i.db.Query(statement, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := []model.Invite{}
	for rows.Next() {
		var invite model.Invite
		err := rows.Scan(
			&invite.ID, &invite.InviterID, &invite.Token,
			&invite.Status, &invite.CreatedAt, &invite.ExpiresAt)
		if err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return invites, nil
}

func (i *InviteRepoMysql) FindByToken(token string) (*model.Invite, error) {
	statement := "SELECT id, inviter_id, token, status, created_at, expires_at FROM invites WHERE token = ?"
	invite := &model.Invite{}
	err := i.db.QueryRow(statement, token).Scan(
		&invite.ID, &invite.InviterID, &invite.Token,
		&invite.Status, &invite.CreatedAt, &invite.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return invite, nil
}

func (i *InviteRepoMysql) Revoke(id, inviterID int) error {
	statement := "UPDATE invites SET status = ? WHERE id = ? AND inviter_id = ? AND status = ?"
	result, err := i.db.Exec(statement, model.InviteStatusRevoked, id, inviterID, model.InviteStatusPending)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}

func (i *InviteRepoMysql) MarkAccepted(id int) error {
	statement := "UPDATE invites SET status = ? WHERE id = ? AND status = ?"
	result, err := i.db.Exec(statement, model.InviteStatusAccepted, id, model.InviteStatusPending)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}
