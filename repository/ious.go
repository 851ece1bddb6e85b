package repository

import (
	"database/sql"
	"time"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type IOURepoMysql struct {
	db *sql.DB
}

func NewIOURepoMysql(db *sql.DB) *IOURepoMysql {
	return &IOURepoMysql{db: db}
}

func (d *IOURepoMysql) Create(iou *model.IOU) (*model.IOU, error) {
	statement := `INSERT INTO ious(creditor_id, debtor_id, created_by, amount_cents, description, status, recurring_id)
					VALUES(?, ?, ?, ?, ?, ?, ?)`

	var recurringID interface{}
	if iou.RecurringID != 0 {
		recurringID = iou.RecurringID
	}

	result, err := d.db.Exec(statement,
		iou.CreditorID, iou.DebtorID, iou.CreatedBy, iou.AmountCents,
		iou.Description, model.IOUStatusPending, recurringID)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	iou.ID = int(id)
	iou.Status = model.IOUStatusPending
	iou.CreatedAt = time.Now()
	return iou, nil
}

func (d *IOURepoMysql) FindByID(id int) (*model.IOU, error) {
	statement := `SELECT id, creditor_id, debtor_id, created_by, amount_cents, paid_cents,
					description, status, recurring_id, created_at
					FROM ious WHERE id = ?`
	iou := &model.IOU{}
	var recurringID sql.NullInt64
	err := d.db.QueryRow(statement, id).Scan(
		&iou.ID, &iou.CreditorID, &iou.DebtorID, &iou.CreatedBy,
		&iou.AmountCents, &iou.PaidCents, &iou.Description, &iou.Status,
		&recurringID, &iou.CreatedAt)
	if err != nil {
		return nil, err
	}
	if recurringID.Valid {
		iou.RecurringID = int(recurringID.Int64)
	}
	return iou, nil
}

func (d *IOURepoMysql) FindByUser(userID int, role, status string, start, count int) ([]model.IOU, error) {
	statement := `SELECT id, creditor_id, debtor_id, created_by, amount_cents, paid_cents,
					description, status, recurring_id, created_at FROM ious WHERE `
	args := []interface{}{}

	switch role {
	case "debtor":
		statement += "debtor_id = ?"
		args = append(args, userID)
	case "creditor":
		statement += "creditor_id = ?"
		args = append(args, userID)
	default:
		statement += "(creditor_id = ? OR debtor_id = ?)"
		args = append(args, userID, userID)
	}

	if status != "" {
		statement += " AND status = ?"
		args = append(args, status)
	}

	statement += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, count, start)

	rows, err := d.db.Query(statement, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ious := []model.IOU{}
	for rows.Next() {
		var iou model.IOU
		var recurringID sql.NullInt64
		err := rows.Scan(
			&iou.ID, &iou.CreditorID, &iou.DebtorID, &iou.CreatedBy,
			&iou.AmountCents, &iou.PaidCents, &iou.Description, &iou.Status,
			&recurringID, &iou.CreatedAt)
		if err != nil {
			return nil, err
		}
		if recurringID.Valid {
			iou.RecurringID = int(recurringID.Int64)
		}
		ious = append(ious, iou)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ious, nil
}

// Accept flips pending to active. Only a party that did not create the IOU
// may accept it.
func (d *IOURepoMysql) Accept(id, actorID int) error {
	return d.transition(id, actorID, model.IOUStatusActive)
}

func (d *IOURepoMysql) Decline(id, actorID int) error {
	return d.transition(id, actorID, model.IOUStatusDeclined)
}

func (d *IOURepoMysql) transition(id, actorID int, to string) error {
	statement := `UPDATE ious SET status = ?, updated_at = NOW()
					WHERE id = ? AND status = ? AND created_by != ?
					AND (creditor_id = ? OR debtor_id = ?)`
	result, err := d.db.Exec(statement, to, id, model.IOUStatusPending, actorID, actorID, actorID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}

// Cancel is the creator withdrawing a still-pending IOU.
func (d *IOURepoMysql) Cancel(id, actorID int) error {
	statement := `UPDATE ious SET status = ?, updated_at = NOW()
					WHERE id = ? AND status = ? AND created_by = ?`
	result, err := d.db.Exec(statement, model.IOUStatusCancelled, id, model.IOUStatusPending, actorID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}
