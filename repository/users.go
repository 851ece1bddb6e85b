package repository

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"

	"github.com/kdimitrova/IOU-Tracker/model"
)

type UserRepoMysql struct {
	db *sql.DB
}

func NewUserRepoMysql(db *sql.DB) *UserRepoMysql {
	return &UserRepoMysql{db: db}
}

func (u *UserRepoMysql) Find(start, count int) ([]model.User, error) {
	statement := "SELECT id, username FROM users ORDER BY id LIMIT ? OFFSET ?"
	rows, err := u.db.Query(statement, count, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (u *UserRepoMysql) FindByID(id int) (*model.User, error) {
	statement := "SELECT id, username, password FROM users WHERE id = ?"
	user := &model.User{}
	err := u.db.QueryRow(statement, id).Scan(&user.ID, &user.Username, &user.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *UserRepoMysql) FindByUsername(username string) (*model.User, error) {
	statement := "SELECT id, username, password FROM users WHERE username = ?"
	user := &model.User{}
	err := u.db.QueryRow(statement, username).Scan(&user.ID, &user.Username, &user.Password)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *UserRepoMysql) FindNamesByIDs(ids []int) ([]string, error) {
	usernames := []string{}
	statement := "SELECT username FROM users WHERE id = ?"
	for _, id := range ids {
		var username string
		if err := u.db.QueryRow(statement, id).Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	return usernames, nil
}

func (u *UserRepoMysql) Create(user *model.User) (*model.User, error) {
	statement := "INSERT INTO users(username, password) VALUES(?, ?)"
	result, err := u.db.Exec(statement, user.Username, user.Password)
	if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
		// the UsernameTaken check races with concurrent registrations
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	user.ID = int(id)

	return user, nil
}

func (u *UserRepoMysql) UsernameTaken(username string) (bool, error) {
	statement := "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)"
	var taken bool
	if err := u.db.QueryRow(statement, username).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

// SearchByPrefix skips users that block, or are blocked by, the viewer.
func (u *UserRepoMysql) SearchByPrefix(prefix string, viewerID, limit int) ([]model.User, error) {
	statement := `SELECT id, username FROM users
					WHERE username LIKE CONCAT(?, '%') AND id != ?
					AND NOT EXISTS (
						SELECT 1 FROM blocked_users b
						WHERE (b.blocker_id = users.id AND b.blocked_id = ?)
						   OR (b.blocker_id = ? AND b.blocked_id = users.id)
					)
					ORDER BY username LIMIT ?`
	rows, err := u.db.Query(statement, prefix, viewerID, viewerID, viewerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (u *UserRepoMysql) StreetCred(userID int) (*model.StreetCred, error) {
	statement := `SELECT
					COALESCE(SUM(CASE WHEN status = 'paid' THEN 1 ELSE 0 END), 0),
					COALESCE(SUM(CASE WHEN status = 'paid' THEN amount_cents ELSE 0 END), 0),
					COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
					COALESCE(SUM(CASE WHEN status = 'active' THEN amount_cents - paid_cents ELSE 0 END), 0)
					FROM ious WHERE debtor_id = ?`
	cred := &model.StreetCred{UserID: userID}
	err := u.db.QueryRow(statement, userID).Scan(
		&cred.PaidCount, &cred.PaidCents, &cred.OutstandingCount, &cred.OutstandingCents)
	if err != nil {
		return nil, err
	}
	return cred, nil
}
