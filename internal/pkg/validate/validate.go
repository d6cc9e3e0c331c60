package validate

import (
	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time.
var v = validator.New()

// Struct validates the given struct using its validate tags. Handlers only
// branch on failure; the user-facing message is chosen per endpoint.
func Struct(s interface{}) error {
	return v.Struct(s)
}
