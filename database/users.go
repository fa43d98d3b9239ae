package database

import (
	"context"

	"forum/models"
)

// CreateUser inserts the user as given and sets its generated id.
// No uniqueness pre-check: a taken username or email comes back as a
// *UniqueViolationError from the UNIQUE columns.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := s.rebind(`INSERT INTO "user" (username, password, email) VALUES (?, ?, ?) RETURNING id`)
	err := s.db.QueryRowxContext(ctx, query, user.Username, user.Password, user.Email).Scan(&user.ID)
	return translateError("user", err)
}

// FindUserByCredentials returns the user whose username and password both
// match exactly, or ErrNotFound
func (s *Store) FindUserByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	query := s.rebind(`SELECT id, username, password, email FROM "user" WHERE username = ? AND password = ? LIMIT 1`)
	if err := s.db.GetContext(ctx, &user, query, username, password); err != nil {
		return nil, translateError("user", err)
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := s.rebind(`SELECT id, username, password, email FROM "user" WHERE id = ?`)
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translateError("user", err)
	}
	return &user, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM "user"`)
	return count, err
}
