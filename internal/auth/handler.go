package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
)

const minPasswordLength = 8

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupForm struct {
	credentials
	DisplayName string `json:"displayName"`
}

// problem returns the first reason the signup cannot proceed, or "".
func (f *signupForm) problem() string {
	f.Email = strings.TrimSpace(f.Email)
	f.DisplayName = strings.TrimSpace(f.DisplayName)
	switch {
	case f.Email == "" || f.Password == "" || f.DisplayName == "":
		return "email, password, and displayName are required"
	case !validEmail(f.Email):
		return "invalid email"
	case len(f.Password) < minPasswordLength:
		return "password must be at least 8 characters"
	}
	return ""
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var form signupForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := form.problem(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.service.Register(r.Context(), form.Email, form.Password, form.DisplayName)
	switch {
	case errors.Is(err, ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case err != nil:
		slog.Error("account signup failed", "email", form.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		slog.Info("account created", "account", result.Account.ID)
		writeJSON(w, http.StatusCreated, result)
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.service.Login(r.Context(), creds.Email, creds.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case err != nil:
		slog.Error("account sign-in failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

// Me returns the account behind the request's token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GetAccount(r.Context(), AccountIDFromContext(r.Context()))
	switch {
	case errors.Is(err, ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	case err != nil:
		slog.Error("load account failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, account)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
