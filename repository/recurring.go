package repository

import (
	"database/sql"
	"time"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type RecurringRepoMysql struct {
	db *sql.DB
}

func NewRecurringRepoMysql(db *sql.DB) *RecurringRepoMysql {
	return &RecurringRepoMysql{db: db}
}

func (r *RecurringRepoMysql) Create(recurring *model.RecurringIOU) (*model.RecurringIOU, error) {
	statement := `INSERT INTO recurring_ious(creditor_id, debtor_id, created_by, amount_cents, description, frequency, next_due)
					VALUES(?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(statement,
		recurring.CreditorID, recurring.DebtorID, recurring.CreatedBy,
		recurring.AmountCents, recurring.Description, recurring.Frequency,
		recurring.NextDue.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	recurring.ID = int(id)
	recurring.Active = true
	return recurring, nil
}

func (r *RecurringRepoMysql) FindByUser(userID int) ([]model.RecurringIOU, error) {
	statement := `SELECT id, creditor_id, debtor_id, created_by, amount_cents, description, frequency, next_due, active
					FROM recurring_ious WHERE creditor_id = ? OR debtor_id = ? ORDER BY id`
	rows, err := r.db.Query(statement, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recurring := []model.RecurringIOU{}
	for rows.Next() {
		var item model.RecurringIOU
		err := rows.Scan(
			&item.ID, &item.CreditorID, &item.DebtorID, &item.CreatedBy,
			&item.AmountCents, &item.Description, &item.Frequency,
			&item.NextDue, &item.Active)
		if err != nil {
			return nil, err
		}
		recurring = append(recurring, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return recurring, nil
}

func (r *RecurringRepoMysql) Deactivate(id, ownerID int) error {
	statement := "UPDATE recurring_ious SET active = FALSE WHERE id = ? AND created_by = ? AND active = TRUE"
	result, err := r.db.Exec(statement, id, ownerID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}

func (r *RecurringRepoMysql) FindDue(today time.Time) ([]model.RecurringIOU, error) {
	statement := `SELECT id, creditor_id, debtor_id, created_by, amount_cents, description, frequency, next_due, active
					FROM recurring_ious WHERE active = TRUE AND next_due <= ? ORDER BY id`
	rows, err := r.db.Query(statement, today.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	due := []model.RecurringIOU{}
	for rows.Next() {
		var item model.RecurringIOU
		err := rows.Scan(
			&item.ID, &item.CreditorID, &item.DebtorID, &item.CreatedBy,
			&item.AmountCents, &item.Description, &item.Frequency,
			&item.NextDue, &item.Active)
		if err != nil {
			return nil, err
		}
		due = append(due, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return due, nil
}

func (r *RecurringRepoMysql) AdvanceNextDue(id int, next time.Time) error {
	statement := "UPDATE recurring_ious SET next_due = ? WHERE id = ?"
	_, err := r.db.Exec(statement, next.Format("2006-01-02"), id)
	return err
}
