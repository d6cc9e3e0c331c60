package http

import (
	"context"

	"github.com/tu-foodies/api/internal/domain"
	googleinfra "github.com/tu-foodies/api/internal/infrastructure/google"
)

// UserRepository is the minimal interface the router requires from the
// credential store.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	PutNew(ctx context.Context, u *domain.User) error
}

// OTPRegistry is the minimal interface the router requires from the
// in-memory challenge store.
type OTPRegistry interface {
	Issue(email string) (string, error)
	Verify(email, submitted string) error
}

// Mailer is the minimal interface the router requires from a mail transport.
type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

// GoogleVerifier is the minimal interface the router requires for Google
// sign-in.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*googleinfra.Payload, error)
}
