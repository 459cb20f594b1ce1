package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	authdomain "realty/backend/internal/domain/auth"
	userusecase "realty/backend/internal/usecase/user"
)

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}
	users, err := s.services.Users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleUserSubroutes(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/users/"), "/")
	segments := strings.Split(remainder, "/")

	switch {
	case len(segments) == 2 && segments[0] == "find":
		s.handleUserFindByID(w, r, segments[1])
	case len(segments) == 3 && segments[0] == "find" && segments[1] == "surname":
		s.handleUserFindBySurname(w, r, segments[2])
	case len(segments) == 3 && segments[0] == "find" && segments[1] == "email":
		s.handleUserFindByEmail(w, r, segments[2])
	case len(segments) == 2 && segments[0] == "update" && segments[1] == "admin":
		s.handleUserUpdateByAdmin(w, r)
	case len(segments) == 2 && segments[0] == "update" && segments[1] == "self":
		s.handleUserUpdateBySelf(w, r)
	case len(segments) == 2 && segments[0] == "delete":
		s.handleUserDelete(w, r, segments[1])
	default:
		writeError(w, http.StatusNotFound, "resource not found")
	}
}

func (s *Server) handleUserFindByID(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := s.services.Users.GetByID(r.Context(), id)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserFindBySurname(w http.ResponseWriter, r *http.Request, surname string) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	user, err := s.services.Users.GetBySurname(r.Context(), surname)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserFindByEmail(w http.ResponseWriter, r *http.Request, email string) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	user, err := s.services.Users.GetByEmail(r.Context(), email)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserUpdateByAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, http.MethodPut)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}
	identity, _ := identityFromContext(r.Context())
	if !s.csrfTokenBound(r.Header.Get(csrfHeaderName), identity) {
		writeError(w, http.StatusForbidden, authdomain.ErrCSRFInvalid.Error())
		return
	}

	var payload userusecase.AdminUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	user, err := s.services.Users.UpdateByAdmin(r.Context(), payload)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserUpdateBySelf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, http.MethodPut)
		return
	}
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !s.csrfTokenBound(r.Header.Get(csrfHeaderName), identity) {
		writeError(w, http.StatusForbidden, authdomain.ErrCSRFInvalid.Error())
		return
	}

	var payload userusecase.SelfUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if payload.ID != identity.ID && identity.Role != authdomain.RoleAdmin {
		writeError(w, http.StatusForbidden, "cannot update another user's profile")
		return
	}
	user, err := s.services.Users.UpdateBySelf(r.Context(), payload)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, http.MethodDelete)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !s.csrfTokenBound(r.Header.Get(csrfHeaderName), identity) {
		writeError(w, http.StatusForbidden, authdomain.ErrCSRFInvalid.Error())
		return
	}
	if id != identity.ID && identity.Role != authdomain.RoleAdmin {
		writeError(w, http.StatusForbidden, "cannot delete another user's account")
		return
	}

	if err := s.services.Users.Delete(r.Context(), id); err != nil {
		s.writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, authdomain.ErrEmailInUse):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, authdomain.ErrPasswordTooShort), errors.Is(err, authdomain.ErrPasswordReused):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
