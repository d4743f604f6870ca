package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/repository"
	"github.com/Tomlord1122/todoey/internal/service"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/sections", func(r chi.Router) {
		r.Get("/", s.listSectionsHandler)
		r.Post("/", s.createSectionHandler)
		r.Route("/{sectionID}", func(r chi.Router) {
			r.Put("/", s.updateSectionHandler)
			r.Delete("/", s.deleteSectionHandler)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", s.listItemsHandler)
				r.Post("/", s.createItemHandler)
				r.Put("/{itemID}", s.updateItemHandler)
				r.Delete("/{itemID}", s.deleteItemHandler)
				r.Post("/{itemID}/complete", s.completeItemHandler)
			})
		})
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.health.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

// --- Sections ---

func (s *Server) listSectionsHandler(w http.ResponseWriter, r *http.Request) {
	rec := &service.Recorder[domain.Section]{}
	s.sections.WithObserver(rec).FetchSections(r.Context())
	respondWithSections(w, http.StatusOK, rec)
}

func (s *Server) createSectionHandler(w http.ResponseWriter, r *http.Request) {
	var req SectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	rec := &service.Recorder[domain.Section]{}
	s.sections.WithObserver(rec).CreateSection(r.Context(), req.Name)
	respondWithSections(w, http.StatusCreated, rec)
}

func (s *Server) updateSectionHandler(w http.ResponseWriter, r *http.Request) {
	section, ok := s.resolveSection(w, r)
	if !ok {
		return
	}
	var req SectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	rec := &service.Recorder[domain.Section]{}
	s.sections.WithObserver(rec).EditSection(r.Context(), section, req.Name)
	respondWithSections(w, http.StatusOK, rec)
}

func (s *Server) deleteSectionHandler(w http.ResponseWriter, r *http.Request) {
	section, ok := s.resolveSection(w, r)
	if !ok {
		return
	}

	rec := &service.Recorder[domain.Section]{}
	s.sections.WithObserver(rec).DeleteSection(r.Context(), section)
	respondWithSections(w, http.StatusOK, rec)
}

// --- Items ---

func (s *Server) listItemsHandler(w http.ResponseWriter, r *http.Request) {
	section, ok := s.resolveSection(w, r)
	if !ok {
		return
	}

	showCompleted := false
	if v := r.URL.Query().Get("show_completed"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid show_completed value %q", v))
			return
		}
		showCompleted = parsed
	}

	rec := &service.Recorder[domain.Item]{}
	s.items.WithObserver(rec).FetchItems(r.Context(), service.ItemQuery{
		SearchText:    r.URL.Query().Get("q"),
		SectionID:     section.ID,
		ShowCompleted: showCompleted,
	})
	respondWithItems(w, http.StatusOK, rec)
}

func (s *Server) createItemHandler(w http.ResponseWriter, r *http.Request) {
	section, ok := s.resolveSection(w, r)
	if !ok {
		return
	}
	req, ok := decodeItemRequest(w, r)
	if !ok {
		return
	}

	rec := &service.Recorder[domain.Item]{}
	s.items.WithObserver(rec).CreateItem(r.Context(), req.Name, req.Description, domain.Priority(req.Priority), section)
	respondWithItems(w, http.StatusCreated, rec)
}

func (s *Server) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	_, item, ok := s.resolveItem(w, r)
	if !ok {
		return
	}
	req, ok := decodeItemRequest(w, r)
	if !ok {
		return
	}

	rec := &service.Recorder[domain.Item]{}
	s.items.WithObserver(rec).EditItem(r.Context(), item, req.Name, req.Description, domain.Priority(req.Priority))
	respondWithItems(w, http.StatusOK, rec)
}

func (s *Server) completeItemHandler(w http.ResponseWriter, r *http.Request) {
	_, item, ok := s.resolveItem(w, r)
	if !ok {
		return
	}

	rec := &service.Recorder[domain.Item]{}
	s.items.WithObserver(rec).CompleteItem(r.Context(), item)
	respondWithItems(w, http.StatusOK, rec)
}

func (s *Server) deleteItemHandler(w http.ResponseWriter, r *http.Request) {
	section, item, ok := s.resolveItem(w, r)
	if !ok {
		return
	}

	rec := &service.Recorder[domain.Item]{}
	s.items.WithObserver(rec).DeleteItem(r.Context(), item, section)
	respondWithItems(w, http.StatusOK, rec)
}

// --- Helpers ---

func (s *Server) resolveSection(w http.ResponseWriter, r *http.Request) (*domain.Section, bool) {
	section, err := s.sections.FindSection(r.Context(), chi.URLParam(r, "sectionID"))
	if err != nil {
		respondWithServiceError(w, err)
		return nil, false
	}
	return section, true
}

// resolveItem loads the section and item named in the URL. An item that
// exists but belongs to another section is reported as not found.
func (s *Server) resolveItem(w http.ResponseWriter, r *http.Request) (*domain.Section, *domain.Item, bool) {
	section, ok := s.resolveSection(w, r)
	if !ok {
		return nil, nil, false
	}
	itemID := chi.URLParam(r, "itemID")
	item, err := s.items.FindItem(r.Context(), itemID)
	if err != nil {
		respondWithServiceError(w, err)
		return nil, nil, false
	}
	if item.SectionID != section.ID {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("item %s not found in section %s", itemID, section.ID))
		return nil, nil, false
	}
	return section, item, true
}

func decodeItemRequest(w http.ResponseWriter, r *http.Request) (ItemRequest, bool) {
	var req ItemRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if strings.TrimSpace(req.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "name cannot be empty")
		return req, false
	}
	if !domain.Priority(req.Priority).Valid() {
		respondWithError(w, http.StatusBadRequest, "priority is required")
		return req, false
	}
	return req, true
}

// decodeJSON decodes the request body into dst, writing a 400 response and
// returning false if the body is not acceptable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if err == nil {
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))
	case errors.Is(err, io.EOF):
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
	default:
		respondWithError(w, http.StatusBadRequest, err.Error())
	}
	return false
}

func respondWithSections(w http.ResponseWriter, code int, rec *service.Recorder[domain.Section]) {
	sections, err := rec.Result()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, code, convertAll(sections, toSectionResponse))
}

func respondWithItems(w http.ResponseWriter, code int, rec *service.Recorder[domain.Item]) {
	items, err := rec.Result()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, code, convertAll(items, toItemResponse))
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrConstraint):
		respondWithError(w, http.StatusConflict, "request conflicts with stored data")
	default:
		log.Printf("Error calling service: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
