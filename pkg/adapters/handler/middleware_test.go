package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pooke74/LinkForge/pkg/adapters/repository/jsonfile"
	"github.com/pooke74/LinkForge/pkg/core/services"
)

func TestRequireSession(t *testing.T) {
	repo, err := jsonfile.NewJSONFileRepository(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	identity := services.NewIdentityService(repo, "testservlet")

	user, err := identity.Register(context.Background(), "alice", "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	token, err := identity.IssueSession(user.ID)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}

	staleToken, err := services.NewIdentityService(repo, "other-secret").IssueSession(user.ID)
	if err != nil {
		t.Fatalf("failed to issue foreign session: %v", err)
	}

	mw := NewMiddleware(identity)

	tests := []struct {
		name           string
		cookieValue    string
		expectedStatus int
	}{
		{
			name:           "No Cookie",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage Token",
			cookieValue:    "invalid",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Secret",
			cookieValue:    staleToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Token",
			cookieValue:    token,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/links", nil)
			if tt.cookieValue != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookieValue})
			}

			rr := httptest.NewRecorder()
			handler := mw.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if UserFromContext(r.Context()) == nil {
					t.Error("session user missing from context")
				}
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					status, tt.expectedStatus)
			}
		})
	}
}
