package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type PaymentRepoMysql struct {
	db *sql.DB
}

func NewPaymentRepoMysql(db *sql.DB) *PaymentRepoMysql {
	return &PaymentRepoMysql{db: db}
}

// Log records a pending partial payment. The amount is clamped to what is
// still owed on the IOU; the IOU must be active.
func (p *PaymentRepoMysql) Log(payment *model.Payment) (*model.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	statement := "SELECT amount_cents - paid_cents FROM ious WHERE id = ? AND status = ?"
	var remaining int
	err = tx.QueryRowContext(ctx, statement, payment.IOUID, model.IOUStatusActive).Scan(&remaining)
	if err != nil {
		return nil, err
	}

	if payment.AmountCents > remaining {
		payment.AmountCents = remaining
	}

	statement = "INSERT INTO payments(iou_id, amount_cents, note, status) VALUES(?, ?, ?, ?)"
	result, err := tx.ExecContext(ctx, statement,
		payment.IOUID, payment.AmountCents, payment.Note, model.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	payment.ID = int(id)
	payment.Status = model.PaymentStatusPending
	payment.CreatedAt = time.Now()
	return payment, nil
}

func (p *PaymentRepoMysql) FindByID(id int) (*model.Payment, error) {
	statement := "SELECT id, iou_id, amount_cents, note, status, created_at FROM payments WHERE id = ?"
	payment := &model.Payment{}
	err := p.db.QueryRow(statement, id).Scan(
		&payment.ID, &payment.IOUID, &payment.AmountCents,
		&payment.Note, &payment.Status, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (p *PaymentRepoMysql) FindByIOU(iouID int) ([]model.Payment, error) {
	statement := `SELECT id, iou_id, amount_cents, note, status, created_at
					FROM payments WHERE iou_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := p.db.Query(statement, iouID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		var payment model.Payment
		err := rows.Scan(
			&payment.ID, &payment.IOUID, &payment.AmountCents,
			&payment.Note, &payment.Status, &payment.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

// Confirm marks a pending payment confirmed, rolls it into the IOU paid
// total and flips the IOU to paid once the amount is covered. The remaining
// amount is re-checked inside the transaction: the clamp in Log only sees
// confirmed payments, so a second pending payment can still overshoot.
func (p *PaymentRepoMysql) Confirm(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statement := "SELECT iou_id, amount_cents FROM payments WHERE id = ? AND status = ?"
	var iouID, amount int
	err = tx.QueryRowContext(ctx, statement, id, model.PaymentStatusPending).Scan(&iouID, &amount)
	if err == sql.ErrNoRows {
		return ErrNotAllowed
	}
	if err != nil {
		return err
	}

	statement = "SELECT amount_cents - paid_cents FROM ious WHERE id = ? AND status = ? FOR UPDATE"
	var remaining int
	err = tx.QueryRowContext(ctx, statement, iouID, model.IOUStatusActive).Scan(&remaining)
	if err == sql.ErrNoRows {
		return ErrNotAllowed
	}
	if err != nil {
		return err
	}
	if amount > remaining {
		amount = remaining
	}

	statement = "UPDATE payments SET status = ?, amount_cents = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, statement, model.PaymentStatusConfirmed, amount, id); err != nil {
		return err
	}

	statement = "UPDATE ious SET paid_cents = paid_cents + ?, updated_at = NOW() WHERE id = ?"
	if _, err := tx.ExecContext(ctx, statement, amount, iouID); err != nil {
		return err
	}

	statement = `UPDATE ious SET status = ?, updated_at = NOW()
					WHERE id = ? AND status = ? AND paid_cents >= amount_cents`
	if _, err := tx.ExecContext(ctx, statement, model.IOUStatusPaid, iouID, model.IOUStatusActive); err != nil {
		return err
	}

	return tx.Commit()
}

func (p *PaymentRepoMysql) Reject(id int) error {
	statement := "UPDATE payments SET status = ? WHERE id = ? AND status = ?"
	result, err := p.db.Exec(statement, model.PaymentStatusRejected, id, model.PaymentStatusPending)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotAllowed
	}
	return nil
}
