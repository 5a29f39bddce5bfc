package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{db: db, log: logger}
}

func (r *postgresUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (username, password_hash, email, first_name, last_name, is_admin)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	err := r.db.QueryRow(query,
		user.Username, user.PasswordHash, user.Email,
		nullString(user.FirstName), nullString(user.LastName), user.IsAdmin,
	).Scan(&user.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Repository: attempted to create user with duplicate username: %s", user.Username)
			return nil, fmt.Errorf("user with username '%s': %w", user.Username, domain.ErrAlreadyExists)
		}
		r.log.Errorf("Repository: failed to create user '%s': %v", user.Username, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	r.log.Infof("Repository: user created with ID %d, username %s", user.ID, user.Username)
	return user, nil
}

func (r *postgresUserRepository) GetUserByID(id int) (*domain.User, error) {
	return r.getUser(`WHERE id = $1`, id, fmt.Sprintf("user with id %d", id))
}

func (r *postgresUserRepository) GetUserByUsername(username string) (*domain.User, error) {
	return r.getUser(`WHERE username = $1`, username, fmt.Sprintf("user with username '%s'", username))
}

func (r *postgresUserRepository) getUser(where string, arg interface{}, desc string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, email, first_name, last_name, is_admin FROM users ` + where

	user := &domain.User{}
	var firstName, lastName sql.NullString
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&firstName, &lastName, &user.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", desc, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: failed to get %s: %v", desc, err)
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	user.FirstName = firstName.String
	user.LastName = lastName.String
	return user, nil
}
