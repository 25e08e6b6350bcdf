package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/model"
)

func TestRequireStaff(t *testing.T) {
	tests := []struct {
		name       string
		identity   *model.AuthContext
		wantStatus int
	}{
		{
			name:       "no auth context",
			identity:   nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "regular user forbidden",
			identity:   &model.AuthContext{UserID: "user123", Email: "user@example.com"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "staff user allowed",
			identity:   &model.AuthContext{UserID: "user456", Email: "admin@example.com", IsStaff: true},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireStaff()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
			if tt.identity != nil {
				req = req.WithContext(auth.ContextWithAuth(req.Context(), tt.identity))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
