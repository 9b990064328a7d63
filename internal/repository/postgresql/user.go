package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workly-hq/hrms-backend-go/internal/domain/user"
	"github.com/workly-hq/hrms-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.password_hash, u.role, u.created_at, u.updated_at, e.id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.email = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID, &found.Email, &found.PasswordHash, &found.Role,
		&found.CreatedAt, &found.UpdatedAt, &found.EmployeeID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return found, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.password_hash, u.role, u.created_at, u.updated_at, e.id
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.id = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.Email, &found.PasswordHash, &found.Role,
		&found.CreatedAt, &found.UpdatedAt, &found.EmployeeID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return found, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, newUser.Email, newUser.PasswordHash, newUser.Role).Scan(
		&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt,
	)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return newUser, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ListIDs implements user.UserRepository.
func (r *userRepositoryImpl) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
