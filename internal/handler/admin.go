package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/recipebox/recipebox/internal/handler/dto"
	"github.com/recipebox/recipebox/internal/model"
)

// AdminUserLister defines the interface for listing accounts.
type AdminUserLister interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// AdminHandler provides staff-only endpoints for operations.
type AdminHandler struct {
	users  AdminUserLister
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users AdminUserLister, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		users:  users,
		logger: logger,
	}
}

// ListUsers handles GET /api/v1/admin/users.
// Guarded by the staff middleware.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.ToAdminUserResponse(user))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": responses,
		"total": len(responses),
	})
}
