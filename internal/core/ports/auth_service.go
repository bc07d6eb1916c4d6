package ports

import (
	"context"

	"github.com/inest/inest-backend/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by both register and login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID string, role domain.Role) (string, error)
}

// TokenVerifier validates a token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
