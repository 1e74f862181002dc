package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/carzilla/auth-api/internal/domain"
	"github.com/carzilla/auth-api/internal/infrastructure/smtp"
	"github.com/carzilla/auth-api/internal/pkg/clock"
	"github.com/carzilla/auth-api/internal/pkg/id"
	"github.com/carzilla/auth-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpLength  = 4
	bcryptCost = 10
)

// OtpStore persists live sign-in codes keyed by email.
type OtpStore interface {
	Put(ctx context.Context, rec *domain.OtpRecord) error
	Get(ctx context.Context, email string) (*domain.OtpRecord, error)
	Delete(ctx context.Context, email string) error
	IncrementAttempts(ctx context.Context, email string) (int, error)
}

// UserStore persists accounts keyed by id with an email lookup.
type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenSigner mints the stateless session token pair.
type TokenSigner interface {
	SignAccess(u *domain.User) (string, error)
	SignRefresh(u *domain.User) (string, error)
	AccessExpiry() time.Duration
}

// VerifyResult is the terminal outcome of a successful verification.
type VerifyResult struct {
	User              *domain.User
	AccessToken       string
	RefreshToken      string
	ExpiresIn         int // access token validity in seconds
	IsProfileComplete bool
}

type Service interface {
	// SendOTP issues a fresh code for the email and returns its validity
	// window in seconds.
	SendOTP(ctx context.Context, email string) (expiresIn int, err error)
	// VerifyOTP runs the verification state machine and, on a match, signs
	// the caller in (creating the account on first login).
	VerifyOTP(ctx context.Context, email, code string) (*VerifyResult, error)
}

// ServiceDeps collects the collaborators SendOTP/VerifyOTP need.
type ServiceDeps struct {
	OtpRepo  OtpStore
	UserRepo UserStore
	Mailer   smtp.Mailer
	Signer   TokenSigner
	Clock    clock.Clock
	AppName  string
	OTPTTL   time.Duration
}

type service struct {
	otpRepo  OtpStore
	userRepo UserStore
	mailer   smtp.Mailer
	signer   TokenSigner
	clock    clock.Clock
	appName  string
	otpTTL   time.Duration
}

func NewService(deps ServiceDeps) Service {
	c := deps.Clock
	if c == nil {
		c = clock.Real{}
	}
	ttl := deps.OTPTTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &service{
		otpRepo:  deps.OtpRepo,
		userRepo: deps.UserRepo,
		mailer:   deps.Mailer,
		signer:   deps.Signer,
		clock:    c,
		appName:  deps.AppName,
		otpTTL:   ttl,
	}
}

func (s *service) SendOTP(ctx context.Context, email string) (int, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return 0, fmt.Errorf("email %q: %w", email, domain.ErrInvalidEmail)
	}

	otp, err := generateCode()
	if err != nil {
		return 0, fmt.Errorf("generate otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash otp: %w", err)
	}

	now := s.clock.Now().UTC()

	// Delete-then-put keeps at most one live code per email; a resend
	// always invalidates the previous code.
	if err := s.otpRepo.Delete(ctx, email); err != nil {
		return 0, fmt.Errorf("invalidate previous otp: %w", err)
	}
	rec := &domain.OtpRecord{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(s.otpTTL).Unix(),
		Attempts:  0,
		CreatedAt: now.Format(time.RFC3339),
	}
	if err := s.otpRepo.Put(ctx, rec); err != nil {
		return 0, fmt.Errorf("store otp: %w", err)
	}

	subject := fmt.Sprintf("Your %s Sign-In Code", s.appName)
	body := smtp.OTPEmailBody(s.appName, otp, int(s.otpTTL.Minutes()))
	if err := s.mailer.SendEmail(email, subject, body); err != nil {
		// The record stays; the client recovers by requesting a resend.
		slog.Warn("otp email delivery failed", "email", email, "err", err)
		return 0, fmt.Errorf("send otp email: %w", domain.ErrDeliveryFailed)
	}

	return int(s.otpTTL.Seconds()), nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (*VerifyResult, error) {
	rec, err := s.otpRepo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no otp for %s: %w", email, domain.ErrNoActiveCode)
		}
		return nil, fmt.Errorf("load otp: %w", err)
	}

	// Expiry and exhaustion are checked before comparing the code: an
	// expired correct code is still rejected as expired.
	if s.clock.Now().Unix() > rec.ExpiresAt {
		if err := s.otpRepo.Delete(ctx, email); err != nil {
			slog.Warn("failed to delete expired otp", "email", email, "err", err)
		}
		return nil, fmt.Errorf("otp for %s: %w", email, domain.ErrCodeExpired)
	}

	if rec.Attempts >= domain.MaxOTPAttempts {
		if err := s.otpRepo.Delete(ctx, email); err != nil {
			slog.Warn("failed to delete exhausted otp", "email", email, "err", err)
		}
		return nil, fmt.Errorf("otp for %s: %w", email, domain.ErrTooManyAttempts)
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)) != nil {
		attempts, err := s.otpRepo.IncrementAttempts(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("record failed attempt: %w", err)
		}
		return nil, &domain.InvalidCodeError{Remaining: domain.MaxOTPAttempts - attempts}
	}

	// Single-use: the record is gone before any tokens are minted, so a
	// second verify with the same code lands in NoActiveCode.
	if err := s.otpRepo.Delete(ctx, email); err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load user: %w", err)
		}
		u = &domain.User{
			UserID:    id.New(),
			Email:     email,
			CreatedAt: s.clock.Now().UTC(),
		}
		if err := s.userRepo.Put(ctx, u); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		slog.Info("created account on first login", "user_id", u.UserID, "email", email)
	}

	accessToken, err := s.signer.SignAccess(u)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, err := s.signer.SignRefresh(u)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &VerifyResult{
		User:              u,
		AccessToken:       accessToken,
		RefreshToken:      refreshToken,
		ExpiresIn:         int(s.signer.AccessExpiry().Seconds()),
		IsProfileComplete: u.IsProfileComplete(),
	}, nil
}

// generateCode draws a 4-digit code uniformly from [0, 10000), keeping
// leading zeros as text.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpLength, n.Int64()), nil
}
