package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// ListIDs returns every user ID; used by attendance housekeeping jobs.
	ListIDs(ctx context.Context) ([]string, error)
}
