package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carzilla/auth-api/internal/domain"
	"github.com/carzilla/auth-api/internal/infrastructure/sns"
	"github.com/carzilla/auth-api/internal/pkg/validate"
)

// UserStore is the account persistence the profile gate needs.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type Service interface {
	// Get returns the account for the id, or ErrNotFound.
	Get(ctx context.Context, userID string) (*domain.User, error)
	// Update overwrites both mandatory profile fields and returns the
	// updated account. Rejected input performs no mutation.
	Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
}

type service struct {
	userRepo  UserStore
	smsSender sns.SMSSender // optional, nil disables the confirmation SMS
	appName   string
}

func NewService(userRepo UserStore, smsSender sns.SMSSender, appName string) Service {
	return &service{userRepo: userRepo, smsSender: smsSender, appName: appName}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, &domain.ValidationError{Msg: "Name and phone are required"}
	}
	if err := validate.Var(req.Phone, "len=10,numeric"); err != nil {
		return nil, &domain.ValidationError{Msg: "Please enter a valid 10-digit phone number"}
	}

	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"name":  req.Name,
		"phone": req.Phone,
	}); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}

	// Best effort: the freshly saved number gets a confirmation text.
	// Delivery problems never fail the update.
	if s.smsSender != nil {
		msg := fmt.Sprintf("Hi %s, your %s profile is all set.", req.Name, s.appName)
		if err := s.smsSender.SendSMS(ctx, req.Phone, msg); err != nil {
			slog.Warn("profile confirmation sms failed", "user_id", userID, "err", err)
		}
	}

	return u, nil
}
