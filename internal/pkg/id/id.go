package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string for account IDs. ULIDs sort
// lexicographically by creation time and are safe DynamoDB partition keys.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
