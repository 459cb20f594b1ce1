package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	domain "realty/backend/internal/domain/article"
	articleusecase "realty/backend/internal/usecase/article"
)

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		articles, err := s.services.Articles.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
	case http.MethodPost:
		if _, ok := s.requireGuard(w, r); !ok {
			return
		}
		var payload articleusecase.Input
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		article, err := s.services.Articles.Create(r.Context(), payload)
		if err != nil {
			s.writeArticleError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, article)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleArticleByID(w http.ResponseWriter, r *http.Request) {
	rawID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/articles/"), "/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		article, err := s.services.Articles.Get(r.Context(), id)
		if err != nil {
			s.writeArticleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, article)
	case http.MethodPut:
		if _, ok := s.requireGuard(w, r); !ok {
			return
		}
		var payload articleusecase.Input
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		article, err := s.services.Articles.Update(r.Context(), id, payload)
		if err != nil {
			s.writeArticleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, article)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handleArticleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	article, err := s.services.Articles.Search(r.Context(), query.Get("title"), query.Get("author"))
	if err != nil {
		s.writeArticleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleArticleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, http.MethodDelete)
		return
	}
	rawID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/articles/delete/"), "/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}
	if err := s.services.Articles.Delete(r.Context(), id); err != nil {
		s.writeArticleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeArticleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
