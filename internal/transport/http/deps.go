package http

import (
	"context"

	"github.com/carzilla/auth-api/internal/domain"
	jwtinfra "github.com/carzilla/auth-api/internal/infrastructure/jwt"
	"github.com/carzilla/auth-api/internal/infrastructure/smtp"
	"github.com/carzilla/auth-api/internal/infrastructure/sns"
)

// OtpRepository is the minimal interface the router requires from the
// credential store.
type OtpRepository interface {
	Put(ctx context.Context, rec *domain.OtpRecord) error
	Get(ctx context.Context, email string) (*domain.OtpRecord, error)
	Delete(ctx context.Context, email string) error
	IncrementAttempts(ctx context.Context, email string) (int, error)
}

// UserRepository is the minimal interface the router requires from the
// account store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OtpRepo     OtpRepository
	UserRepo    UserRepository
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender // may be nil; disables the profile confirmation SMS
	JWTProvider *jwtinfra.Provider
}
