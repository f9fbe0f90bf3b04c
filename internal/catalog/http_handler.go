package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Create handles POST /books/
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}

	id, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, map[string]string{"id": id}, nil)
}

// List handles GET /books/
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSONSuccess(w, books, nil)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, book, nil)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}

	book, err := h.service.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, book, nil)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, map[string]string{"message": "book deleted"}, nil)
}

// Search handles GET /search?title&author&min_price&max_price
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := SearchFilters{
		Title:  query.Get("title"),
		Author: query.Get("author"),
	}
	if raw := query.Get("min_price"); raw != "" {
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinPrice = &val
		}
	}
	if raw := query.Get("max_price"); raw != "" {
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &val
		}
	}

	books, err := h.service.Search(r.Context(), filters)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSONSuccess(w, books, nil)
}

// Report handles GET /books/aggregation/
func (h *HTTPHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSONSuccess(w, report, nil)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]httpx.ErrorDetail, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			details = append(details, httpx.ErrorDetail{Field: v.Field, Message: v.Message})
		}
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book data", details)
	case errors.Is(err, ErrInvalidID):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_ID", "Invalid book ID", nil)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrUnavailable):
		httpx.JSONError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store is unavailable", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
