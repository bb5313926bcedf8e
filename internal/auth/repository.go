package auth

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"studentportal/internal/models"
)

// Repository encapsulates the logic to access users and sessions from a database.
type Repository interface {
	// GetUserByID returns the user corresponding to the specified user ID.
	GetUserByID(id int) (*models.User, error)
	// GetUserByEmail returns the user registered with the given email.
	GetUserByEmail(email string) (*models.User, error)
	// CreateUser saves a new user into the database.
	CreateUser(name, email, passwordHash string) (*models.User, error)

	// CreateSession persists a new login session.
	CreateSession(session *models.Session) error
	// GetSession returns the session with the given ID.
	GetSession(id string) (*models.Session, error)
	// DeleteSession removes the session with the given ID.
	DeleteSession(id string) error
}

// postgresRepository queries and persists users and sessions in Postgres.
type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new user repository with Postgres as the database.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetUserByID(id int) (*models.User, error) {
	row := r.db.QueryRow(
		`SELECT user_id, email, name, password_hash, created_at FROM users WHERE user_id = $1`, id)
	return scanUser(row)
}

func (r *postgresRepository) GetUserByEmail(email string) (*models.User, error) {
	row := r.db.QueryRow(
		`SELECT user_id, email, name, password_hash, created_at FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *postgresRepository) CreateUser(name, email, passwordHash string) (*models.User, error) {
	user := &models.User{Name: name, Email: email, PasswordHash: passwordHash}
	err := r.db.QueryRow(
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)
		 RETURNING user_id, created_at`,
		name, email, passwordHash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, EmailExistsError
		}
		return nil, err
	}
	return user, nil
}

func (r *postgresRepository) CreateSession(session *models.Session) error {
	_, err := r.db.Exec(
		`INSERT INTO sessions (session_id, user_id, expires_at) VALUES ($1, $2, $3)`,
		session.ID, session.UserID, session.ExpiresAt)
	return err
}

func (r *postgresRepository) GetSession(id string) (*models.Session, error) {
	session := &models.Session{}
	err := r.db.QueryRow(
		`SELECT session_id, user_id, expires_at, created_at FROM sessions WHERE session_id = $1`, id).
		Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, SessionNotFoundError
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		// Expired rows are reaped lazily.
		_ = r.DeleteSession(id)
		return nil, SessionExpiredError
	}
	return session, nil
}

func (r *postgresRepository) DeleteSession(id string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE session_id = $1`, id)
	return err
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, UserNotFoundError
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
