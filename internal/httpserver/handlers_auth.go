package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authdomain "realty/backend/internal/domain/auth"
	authusecase "realty/backend/internal/usecase/auth"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.services.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, authdomain.ErrInvalidCredentials.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.issueTokens(w, r, user)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Surname  string `json:"surname"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.services.Auth.Register(r.Context(), authusecase.RegisterInput{
		Surname:  payload.Surname,
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrEmailInUse) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.issueTokens(w, r, user)
}

// issueTokens mints a fresh bearer/CSRF token pair bound by a shared nonce,
// sets both cookies, and writes the user view with the tokens in the body.
func (s *Server) issueTokens(w http.ResponseWriter, r *http.Request, user *authdomain.User) {
	csrfToken, nonce, err := s.csrf.Generate()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue CSRF token")
		return
	}
	authToken, err := s.tokens.Generate(authdomain.IdentityOf(user), nonce)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	maxAge := int(s.tokenExpiry.Seconds())
	setAuthCookie(w, authToken, maxAge)
	setCSRFCookie(w, csrfToken, maxAge)

	writeJSON(w, http.StatusOK, map[string]any{
		"user":      user,
		"token":     authToken,
		"csrfToken": csrfToken,
	})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email       string `json:"email"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.services.Auth.ChangePassword(r.Context(), payload.Email, payload.OldPassword, payload.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeMessage(w, "Password changed successfully")
}

func (s *Server) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.services.PasswordReset.Initiate(r.Context(), payload.Email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeMessage(w, "Password reset link sent to your email")
}

func (s *Server) handleResetComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.services.PasswordReset.Complete(r.Context(), payload.Token, payload.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeMessage(w, "Password reset successfully")
}
