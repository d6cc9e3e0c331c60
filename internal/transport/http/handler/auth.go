package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tu-foodies/api/internal/application/auth"
	"github.com/tu-foodies/api/internal/domain"
	"github.com/tu-foodies/api/internal/otp"
	"github.com/tu-foodies/api/internal/pkg/validate"
)

// AuthHandler handles the OTP, registration and login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || validate.Struct(&req) != nil {
		fail(w, "Email is required.")
		return
	}
	if err := h.svc.SendOTP(r.Context(), req.Email); err != nil {
		fail(w, "Failed to send OTP. Try again.")
		return
	}
	ok(w, "OTP sent successfully!")
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || validate.Struct(&req) != nil {
		fail(w, "Email and OTP are required.")
		return
	}
	switch err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP); {
	case err == nil:
		ok(w, "OTP verified successfully!")
	case errors.Is(err, otp.ErrNotFound):
		fail(w, "No OTP found or OTP expired.")
	case errors.Is(err, otp.ErrExpired):
		fail(w, "OTP expired. Please request again.")
	case errors.Is(err, otp.ErrMismatch):
		fail(w, "Invalid OTP. Please try again.")
	default:
		fail(w, "Server error.")
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || validate.Struct(&req) != nil {
		fail(w, "All fields are required.")
		return
	}
	switch err := h.svc.Register(r.Context(), req); {
	case err == nil:
		ok(w, "Signup successful!")
	case errors.Is(err, domain.ErrConflict):
		fail(w, "User already exists!")
	default:
		fail(w, "Error registering user.")
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || validate.Struct(&req) != nil {
		fail(w, "Enter email and password.")
		return
	}
	username, err := h.svc.Login(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, Response{Success: true, Message: "Login successful!", Username: username})
	case errors.Is(err, domain.ErrNotFound):
		fail(w, "User not found.")
	case errors.Is(err, domain.ErrUnauthorized):
		fail(w, "Incorrect password.")
	default:
		fail(w, "Server error.")
	}
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || validate.Struct(&req) != nil {
		fail(w, "ID token is required.")
		return
	}
	username, err := h.svc.GoogleLogin(r.Context(), req.IDToken)
	switch {
	case err == nil:
		writeJSON(w, Response{Success: true, Message: "Login successful!", Username: username})
	case errors.Is(err, domain.ErrUnauthorized):
		fail(w, "Google sign-in failed.")
	default:
		fail(w, "Server error.")
	}
}
