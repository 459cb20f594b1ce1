package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	domain "realty/backend/internal/domain/property"
	propertyusecase "realty/backend/internal/usecase/property"
)

func (s *Server) handlePropertyCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	var payload propertyusecase.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	property, err := s.services.Properties.Create(r.Context(), payload)
	if err != nil {
		s.writePropertyError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

func (s *Server) handlePropertyUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMethodNotAllowed(w, http.MethodPut)
		return
	}
	var payload propertyusecase.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	property, err := s.services.Properties.Update(r.Context(), payload)
	if err != nil {
		s.writePropertyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (s *Server) handlePropertyDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, http.MethodDelete)
		return
	}
	rawID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/properties/delete/"), "/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	if err := s.services.Properties.Delete(r.Context(), id); err != nil {
		s.writePropertyError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePropertyFind(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/properties/find/"), "/")
	if remainder == "all" {
		properties, err := s.services.Properties.List(r.Context())
		if err != nil {
			s.writePropertyError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"properties": properties})
		return
	}

	id, err := strconv.ParseInt(remainder, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid property id")
		return
	}
	property, err := s.services.Properties.Get(r.Context(), id)
	if err != nil {
		s.writePropertyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (s *Server) handlePropertyFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()

	var types []string
	for _, raw := range query["type"] {
		types = append(types, strings.Split(raw, ",")...)
	}

	properties, err := s.services.Properties.Filter(r.Context(), types, query.Get("category"), query.Get("location"))
	if err != nil {
		s.writePropertyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": properties})
}

func (s *Server) writePropertyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoneMatch):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidType), errors.Is(err, domain.ErrInvalidCategory), errors.Is(err, domain.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
