package db

import (
	"context"
	"fmt"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetOrCreateUser retrieves a user by email or lazily registers one.
func (db *DB) GetOrCreateUser(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, created_at
		FROM users
		WHERE email = $1`

	user := &models.User{}
	err := db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		user = &models.User{
			ID:        uuid.New(),
			Email:     email,
			CreatedAt: time.Now(),
		}

		insertQuery := `
			INSERT INTO users (id, email, created_at)
			VALUES ($1, $2, $3)`

		_, err = db.Exec(ctx, insertQuery,
			user.ID.String(),
			user.Email,
			user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error creating user: %w", err)
		}
		return user, nil
	}

	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by id.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, created_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := db.QueryRow(ctx, query, id.String()).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
