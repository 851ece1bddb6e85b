package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ErrNotAllowed is returned by conditional status updates that matched no row:
// the transition is illegal, the actor is wrong or the row does not exist.
var ErrNotAllowed = errors.New("operation not allowed")

// ErrDuplicate is returned when an insert hits a unique key.
var ErrDuplicate = errors.New("duplicate entry")

func Open(user, password, dbname string) *sql.DB {
	connectionString := fmt.Sprintf("%s:%s@/%s?parseTime=true", user, password, dbname)
	db, err := sql.Open("mysql", connectionString)
	if err != nil {
		log.Fatal(err)
	}

	db.SetConnMaxLifetime(time.Minute * 5)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(time.Minute * 3)

	return db
}

// Migrate runs the idempotent schema pass at startup.
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(32) NOT NULL UNIQUE,
			password VARCHAR(100) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS friendship (
			user_one_id INT NOT NULL,
			user_two_id INT NOT NULL,
			status VARCHAR(16) NOT NULL,
			action_user_id INT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_one_id, user_two_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ious (
			id INT AUTO_INCREMENT PRIMARY KEY,
			creditor_id INT NOT NULL,
			debtor_id INT NOT NULL,
			created_by INT NOT NULL,
			amount_cents INT NOT NULL,
			paid_cents INT NOT NULL DEFAULT 0,
			description VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(16) NOT NULL,
			recurring_id INT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_ious_creditor (creditor_id),
			INDEX idx_ious_debtor (debtor_id)
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id INT AUTO_INCREMENT PRIMARY KEY,
			iou_id INT NOT NULL,
			amount_cents INT NOT NULL,
			note VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(16) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_payments_iou (iou_id)
		)`,
		`CREATE TABLE IF NOT EXISTS recurring_ious (
			id INT AUTO_INCREMENT PRIMARY KEY,
			creditor_id INT NOT NULL,
			debtor_id INT NOT NULL,
			created_by INT NOT NULL,
			amount_cents INT NOT NULL,
			description VARCHAR(255) NOT NULL DEFAULT '',
			frequency VARCHAR(8) NOT NULL,
			next_due DATE NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS invites (
			id INT AUTO_INCREMENT PRIMARY KEY,
			inviter_id INT NOT NULL,
			token VARCHAR(36) NOT NULL UNIQUE,
			status VARCHAR(16) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			expires_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			kind VARCHAR(32) NOT NULL,
			body VARCHAR(255) NOT NULL,
			read_flag BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_notifications_user (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS blocked_users (
			blocker_id INT NOT NULL,
			blocked_id INT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (blocker_id, blocked_id)
		)`,
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return err
		}
	}
	return nil
}
