package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

func (r *UserPostgres) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.LastUpdatedAt = now

	query := `
        INSERT INTO users (
            email, password_hash, password_salt, picture_url, is_admin,
            created_at, last_updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.PasswordSalt,
		user.PictureURL, user.IsAdmin, user.CreatedAt, user.LastUpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == codeUniqueViolation {
			return app_errors.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *UserPostgres) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
        SELECT id, email, password_hash, password_salt, picture_url, is_admin,
               created_at, last_updated_at
          FROM users
         WHERE email = $1
    `
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.PasswordSalt,
		&user.PictureURL, &user.IsAdmin, &user.CreatedAt, &user.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
