package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tu-foodies/api/internal/domain"
	googleinfra "github.com/tu-foodies/api/internal/infrastructure/google"
	"github.com/tu-foodies/api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

const otpMailSubject = "Your TU Foodies OTP Code"

type Service interface {
	// SendOTP issues a fresh code for email and mails it. A reissue replaces
	// any code still pending for the address.
	SendOTP(ctx context.Context, email string) error
	// VerifyOTP consumes the pending code on success. Failures surface as
	// otp.ErrNotFound / otp.ErrExpired / otp.ErrMismatch.
	VerifyOTP(ctx context.Context, email, code string) error
	Register(ctx context.Context, req domain.RegisterRequest) error
	// Login returns the stored username on success. No session or token is
	// issued; a success response is proof for this request only.
	Login(ctx context.Context, req domain.LoginRequest) (username string, err error)
	// GoogleLogin verifies a Google ID token, creating the user record on
	// first sign-in, and returns the username.
	GoogleLogin(ctx context.Context, idToken string) (username string, err error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	PutNew(ctx context.Context, u *domain.User) error
}

type otpRegistry interface {
	Issue(email string) (string, error)
	Verify(email, submitted string) error
}

type mailSender interface {
	SendEmail(to, subject, htmlBody string) error
}

type googleVerifier interface {
	Verify(ctx context.Context, token string) (*googleinfra.Payload, error)
}

type service struct {
	users    userStore
	registry otpRegistry
	mailer   mailSender
	google   googleVerifier
}

type ServiceDeps struct {
	UserRepo       userStore
	Registry       otpRegistry
	Mailer         mailSender
	GoogleVerifier googleVerifier // nil when GOOGLE_CLIENT_ID is unset
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:    deps.UserRepo,
		registry: deps.Registry,
		mailer:   deps.Mailer,
		google:   deps.GoogleVerifier,
	}
}

func (s *service) SendOTP(ctx context.Context, email string) error {
	code, err := s.registry.Issue(email)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(`<div style="font-family:sans-serif;line-height:1.5">
  <p>Hello,</p>
  <p>Your OTP for TU Foodies signup is:</p>
  <h2 style="color:#e63946;">%s</h2>
  <p>This code will expire in 2 minutes.</p>
  <p>TU Foodies Team</p>
</div>`, code)
	if err := s.mailer.SendEmail(email, otpMailSubject, body); err != nil {
		// The issued code stays in the registry even though the mail never
		// went out; a later reissue overwrites it.
		slog.Error("otp mail delivery failed", "email", email, "err", err)
		return fmt.Errorf("send otp mail: %w", domain.ErrDependency)
	}
	slog.Info("otp sent", "email", email)
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) error {
	return s.registry.Verify(email, code)
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("lookup user: %w", domain.ErrDependency)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &domain.User{
		UserID:       id.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Verified:     true,
		AuthProvider: "local",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.PutNew(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("insert user: %w", domain.ErrDependency)
	}
	slog.Info("user registered", "username", u.Username, "email", u.Email)
	return nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("lookup user: %w", domain.ErrDependency)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", fmt.Errorf("incorrect password: %w", domain.ErrUnauthorized)
	}
	return u.Username, nil
}

func (s *service) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	if s.google == nil {
		return "", fmt.Errorf("google sign-in not configured: %w", domain.ErrDependency)
	}
	p, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", err
	}
	u, err := s.users.GetByEmail(ctx, p.Email)
	if err == nil {
		return u.Username, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("lookup user: %w", domain.ErrDependency)
	}

	// First Google sign-in: create the record. No password hash is stored,
	// so the account cannot be logged into with a password.
	username := p.Name
	if username == "" {
		username = strings.SplitN(p.Email, "@", 2)[0]
	}
	u = &domain.User{
		UserID:       id.New(),
		Username:     username,
		Email:        p.Email,
		Verified:     p.EmailVerified,
		AuthProvider: "google",
		GoogleSub:    p.Sub,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.PutNew(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost an insert race; the record is there now.
			existing, gerr := s.users.GetByEmail(ctx, p.Email)
			if gerr != nil {
				return "", fmt.Errorf("lookup user: %w", domain.ErrDependency)
			}
			return existing.Username, nil
		}
		return "", fmt.Errorf("insert user: %w", domain.ErrDependency)
	}
	slog.Info("google user registered", "username", u.Username, "email", u.Email)
	return u.Username, nil
}
