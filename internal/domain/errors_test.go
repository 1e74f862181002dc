package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidCodeError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("verify: %w", &InvalidCodeError{Remaining: 1})
	assert.True(t, errors.Is(err, ErrInvalidCode))

	var ic *InvalidCodeError
	assert.True(t, errors.As(err, &ic))
	assert.Equal(t, 1, ic.Remaining)
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("x: %w", ErrInvalidEmail), "Invalid email format"},
		{fmt.Errorf("x: %w", ErrNoActiveCode), "No OTP found. Please request a new one."},
		{fmt.Errorf("x: %w", ErrCodeExpired), "OTP has expired. Please request a new one."},
		{fmt.Errorf("x: %w", ErrTooManyAttempts), "Too many failed attempts. Please request a new OTP."},
		{&InvalidCodeError{Remaining: 0}, "Invalid OTP. 0 attempt(s) remaining."},
		{&ValidationError{Msg: "Name and phone are required"}, "Name and phone are required"},
		{fmt.Errorf("x: %w", ErrNotFound), "User not found"},
		{errors.New("pq: connection refused"), "Something went wrong. Please try again."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UserMessage(tc.err))
	}
}

func TestIsProfileComplete(t *testing.T) {
	name, phone := "Ann", "9876543210"

	u := &User{UserID: "u1", Email: "a@b.com"}
	assert.False(t, u.IsProfileComplete())

	u.Name = &name
	assert.False(t, u.IsProfileComplete())

	u.Phone = &phone
	assert.True(t, u.IsProfileComplete())
}
