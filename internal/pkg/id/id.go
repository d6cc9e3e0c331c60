package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string, used as the document id on user records.
// ULIDs are lexicographically sortable by creation time.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
