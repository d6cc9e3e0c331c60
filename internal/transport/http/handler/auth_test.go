package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tu-foodies/api/internal/domain"
	"github.com/tu-foodies/api/internal/otp"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockAuthSvc) VerifyOTP(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}
func (m *mockAuthSvc) Register(ctx context.Context, req domain.RegisterRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *mockAuthSvc) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	args := m.Called(ctx, idToken)
	return args.String(0), args.Error(1)
}

// --- helpers ---

func newRouter(svc *mockAuthSvc) http.Handler {
	h := NewAuthHandler(svc)
	r := chi.NewRouter()
	r.Post("/send-otp", h.SendOTP)
	r.Post("/verify-otp", h.VerifyOTP)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/google-login", h.GoogleLogin)
	return r
}

func post(t *testing.T, router http.Handler, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

// --- /send-otp ---

func TestSendOTP_MissingEmail(t *testing.T) {
	svc := &mockAuthSvc{}
	_, resp := post(t, newRouter(svc), "/send-otp", map[string]string{})

	assert.False(t, resp.Success)
	assert.Equal(t, "Email is required.", resp.Message)
	svc.AssertNotCalled(t, "SendOTP")
}

func TestSendOTP_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendOTP", mock.Anything, "a@x.com").Return(nil)

	rec, resp := post(t, newRouter(svc), "/send-otp", map[string]string{"email": "a@x.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "OTP sent successfully!", resp.Message)
}

func TestSendOTP_MailFailure_Still200(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendOTP", mock.Anything, "a@x.com").Return(domain.ErrDependency)

	rec, resp := post(t, newRouter(svc), "/send-otp", map[string]string{"email": "a@x.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to send OTP. Try again.", resp.Message)
}

// --- /verify-otp ---

func TestVerifyOTP_MessageMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		success bool
		message string
	}{
		{"verified", nil, true, "OTP verified successfully!"},
		{"not found", otp.ErrNotFound, false, "No OTP found or OTP expired."},
		{"expired", otp.ErrExpired, false, "OTP expired. Please request again."},
		{"mismatch", otp.ErrMismatch, false, "Invalid OTP. Please try again."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAuthSvc{}
			svc.On("VerifyOTP", mock.Anything, "a@x.com", "482913").Return(tc.err)

			rec, resp := post(t, newRouter(svc), "/verify-otp",
				map[string]string{"email": "a@x.com", "otp": "482913"})

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.success, resp.Success)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestVerifyOTP_MissingFields(t *testing.T) {
	svc := &mockAuthSvc{}
	_, resp := post(t, newRouter(svc), "/verify-otp", map[string]string{"email": "a@x.com"})

	assert.False(t, resp.Success)
	assert.Equal(t, "Email and OTP are required.", resp.Message)
	svc.AssertNotCalled(t, "VerifyOTP")
}

// --- /register ---

func TestRegister_MissingFields(t *testing.T) {
	svc := &mockAuthSvc{}
	_, resp := post(t, newRouter(svc), "/register",
		map[string]string{"username": "bob", "email": "bob@x.com"})

	assert.False(t, resp.Success)
	assert.Equal(t, "All fields are required.", resp.Message)
}

func TestRegister_Conflict(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	_, resp := post(t, newRouter(svc), "/register",
		map[string]string{"username": "bob", "email": "bob@x.com", "password": "pw1"})

	assert.False(t, resp.Success)
	assert.Equal(t, "User already exists!", resp.Message)
}

func TestRegister_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Register", mock.Anything, domain.RegisterRequest{
		Username: "bob", Email: "bob@x.com", Password: "pw1",
	}).Return(nil)

	_, resp := post(t, newRouter(svc), "/register",
		map[string]string{"username": "bob", "email": "bob@x.com", "password": "pw1"})

	assert.True(t, resp.Success)
	assert.Equal(t, "Signup successful!", resp.Message)
	svc.AssertExpectations(t)
}

// --- /login ---

func TestLogin_MissingFields(t *testing.T) {
	svc := &mockAuthSvc{}
	_, resp := post(t, newRouter(svc), "/login", map[string]string{"email": "bob@x.com"})

	assert.False(t, resp.Success)
	assert.Equal(t, "Enter email and password.", resp.Message)
}

func TestLogin_NotFound(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return("", domain.ErrNotFound)

	_, resp := post(t, newRouter(svc), "/login",
		map[string]string{"email": "ghost@x.com", "password": "pw"})

	assert.False(t, resp.Success)
	assert.Equal(t, "User not found.", resp.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return("", domain.ErrUnauthorized)

	_, resp := post(t, newRouter(svc), "/login",
		map[string]string{"email": "bob@x.com", "password": "wrong"})

	assert.False(t, resp.Success)
	assert.Equal(t, "Incorrect password.", resp.Message)
}

func TestLogin_HappyPath_ReturnsUsername(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, domain.LoginRequest{
		Email: "bob@x.com", Password: "pw1",
	}).Return("bob", nil)

	_, resp := post(t, newRouter(svc), "/login",
		map[string]string{"email": "bob@x.com", "password": "pw1"})

	assert.True(t, resp.Success)
	assert.Equal(t, "Login successful!", resp.Message)
	assert.Equal(t, "bob", resp.Username)
}

// --- /google-login ---

func TestGoogleLogin_InvalidToken(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("GoogleLogin", mock.Anything, "bad").Return("", domain.ErrUnauthorized)

	_, resp := post(t, newRouter(svc), "/google-login", map[string]string{"id_token": "bad"})

	assert.False(t, resp.Success)
	assert.Equal(t, "Google sign-in failed.", resp.Message)
}

func TestGoogleLogin_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("GoogleLogin", mock.Anything, "tok").Return("carol", nil)

	_, resp := post(t, newRouter(svc), "/google-login", map[string]string{"id_token": "tok"})

	assert.True(t, resp.Success)
	assert.Equal(t, "carol", resp.Username)
}
