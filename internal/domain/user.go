package domain

import "time"

// User is an account keyed by email, created lazily on the first successful
// OTP verification. Name and Phone stay nil until the profile is completed.
type User struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Name      *string   `json:"name" dynamodbav:"name"`
	Phone     *string   `json:"phone" dynamodbav:"phone"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
}

// IsProfileComplete reports whether the mandatory profile fields are set.
func (u *User) IsProfileComplete() bool {
	return u.Name != nil && u.Phone != nil
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=4,numeric"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}
