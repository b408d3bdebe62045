package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

type LinkHandler struct {
	links ports.LinkService
}

func NewLinkHandler(links ports.LinkService) *LinkHandler {
	return &LinkHandler{links: links}
}

// CreateLinkRequest payload
type CreateLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

// UpdateLinkRequest payload. Active is a pointer so an omitted field is
// distinguishable from an explicit false; omitted defaults to true.
type UpdateLinkRequest struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Icon   string `json:"icon,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

// DeleteLinkRequest payload
type DeleteLinkRequest struct {
	ID string `json:"id"`
}

// List returns every link for the session owner, inactive ones included.
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	links, err := h.links.ListForOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"links": emptyIfNil(links)})
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Message: "invalid request body"})
		return
	}

	links, err := h.links.Create(r.Context(), user.ID, req.Title, req.URL, req.Icon)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "links": links})
}

func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Message: "invalid request body"})
		return
	}

	links, err := h.links.Update(r.Context(), user.ID, req.ID, req.Title, req.URL, req.Icon, req.Active)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "links": links})
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req DeleteLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Message: "invalid request body"})
		return
	}

	links, err := h.links.Delete(r.Context(), user.ID, req.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "links": emptyIfNil(links)})
}

// --- shared response helpers ---

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the domain error taxonomy onto HTTP statuses.
// Conflicts return 400 following the original API's convention.
// Unexpected errors are logged with detail and answered generically.
func writeError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	var auth *domain.AuthError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Message})
	case errors.As(err, &auth):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": auth.Message})
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": conflict.Message})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func emptyIfNil(links []domain.Link) []domain.Link {
	if links == nil {
		return []domain.Link{}
	}
	return links
}
