package ports

import (
	"context"

	"github.com/inest/inest-backend/internal/core/domain"
)

// UserRepository defines the persistence operations for registered users.
type UserRepository interface {
	// FindByEmail looks up a user by normalised email. Returns
	// domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists user. A violated uniqueness constraint on email is
	// reported as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// LoginThrottle tracks failed logins per account.
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
