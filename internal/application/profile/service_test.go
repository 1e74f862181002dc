package profile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/carzilla/auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, msg string) error {
	return m.Called(ctx, to, msg).Error(0)
}

func TestUpdate_MissingFields(t *testing.T) {
	us := &mockUserStore{}
	svc := NewService(us, nil, "Carzilla")

	for _, req := range []domain.UpdateProfileRequest{
		{Name: "", Phone: "9876543210"},
		{Name: "Ann", Phone: ""},
	} {
		_, err := svc.Update(context.Background(), "u1", req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.Equal(t, "Name and phone are required", domain.UserMessage(err))
	}
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PhoneLengthRejected(t *testing.T) {
	us := &mockUserStore{}
	svc := NewService(us, nil, "Carzilla")

	for _, phone := range []string{"987654321", "98765432101", "98765abc10"} {
		_, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{Name: "Ann", Phone: phone})
		require.Error(t, err, "phone %q", phone)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.Equal(t, "Please enter a valid 10-digit phone number", domain.UserMessage(err))
	}
	// Rejected input performs no mutation.
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_UnknownUser(t *testing.T) {
	us := &mockUserStore{}
	us.On("Update", mock.Anything, "ghost", mock.Anything).
		Return(fmt.Errorf("user not found: %w", domain.ErrNotFound))

	svc := NewService(us, nil, "Carzilla")
	_, err := svc.Update(context.Background(), "ghost", domain.UpdateProfileRequest{Name: "Ann", Phone: "9876543210"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_HappyPath_OverwritesBothFields(t *testing.T) {
	us := &mockUserStore{}
	sms := &mockSMSSender{}

	name, phone := "Ann", "9876543210"
	updated := &domain.User{UserID: "u1", Email: "a@b.com", Name: &name, Phone: &phone}

	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		"name":  "Ann",
		"phone": "9876543210",
	}).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(updated, nil)
	sms.On("SendSMS", mock.Anything, "9876543210", mock.AnythingOfType("string")).Return(nil)

	svc := NewService(us, sms, "Carzilla")
	u, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{Name: name, Phone: phone})

	require.NoError(t, err)
	assert.True(t, u.IsProfileComplete())
	us.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestUpdate_SMSFailureDoesNotFailUpdate(t *testing.T) {
	us := &mockUserStore{}
	sms := &mockSMSSender{}

	name, phone := "Ann", "9876543210"
	updated := &domain.User{UserID: "u1", Email: "a@b.com", Name: &name, Phone: &phone}

	us.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(updated, nil)
	sms.On("SendSMS", mock.Anything, "9876543210", mock.Anything).Return(errors.New("sns down"))

	svc := NewService(us, sms, "Carzilla")
	u, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{Name: name, Phone: phone})

	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestGet_PassesThrough(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)

	svc := NewService(us, nil, "Carzilla")
	u, err := svc.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.False(t, u.IsProfileComplete())
}
