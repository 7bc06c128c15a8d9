package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/service"
)

type AuthHandler struct {
	auth     service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validator.New()}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Richiesta non valida")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email e password sono obbligatorie")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Credenziali non valide")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Errore interno")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// RegisterAuthRoutes registers the public authentication endpoints
func RegisterAuthRoutes(router *mux.Router, auth service.AuthService) {
	handler := NewAuthHandler(auth)
	router.HandleFunc("/api/v1/auth/login", handler.Login).Methods("POST")
}
