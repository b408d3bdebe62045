package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

type ClickHandler struct {
	clicks ports.ClickService
}

func NewClickHandler(clicks ports.ClickService) *ClickHandler {
	return &ClickHandler{clicks: clicks}
}

type recordClickRequest struct {
	LinkID string `json:"linkId"`
}

// Record stores a click asynchronously. The response never waits for
// the write: the public page calls this just before navigating the
// visitor away, and analytics must not block or break that.
func (h *ClickHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &domain.ValidationError{Message: "invalid request body"})
		return
	}
	if req.LinkID == "" {
		writeError(w, &domain.ValidationError{Message: "link id is required"})
		return
	}

	referrer := r.Header.Get("Referer")

	// Background context: the request context dies with the response.
	go func() {
		if err := h.clicks.Record(context.Background(), req.LinkID, referrer); err != nil {
			slog.Warn("click recording failed", "link_id", req.LinkID, "error", err)
		}
	}()

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
