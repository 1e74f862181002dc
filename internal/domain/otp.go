package domain

// OtpRecord is the live sign-in code for one email address.
// PK: email — at most one record per email at any time.
// The plaintext code is never stored; CodeHash is a bcrypt hash.
// ExpiresAt is a Unix timestamp doubling as the DynamoDB TTL attribute.
type OtpRecord struct {
	Email     string `json:"email" dynamodbav:"email"`
	CodeHash  string `json:"-" dynamodbav:"code_hash"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
	Attempts  int    `json:"attempts" dynamodbav:"attempts"`
	CreatedAt string `json:"created_at" dynamodbav:"created_at"`
}

// MaxOTPAttempts is the number of failed comparisons after which the next
// verification call rejects the record outright.
const MaxOTPAttempts = 3
