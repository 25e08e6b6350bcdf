package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/cache"
	"github.com/recipebox/recipebox/internal/model"
	"github.com/recipebox/recipebox/internal/repository"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger     *slog.Logger
	Repository *repository.Repository
	Cache      *cache.Cache
}

// Auth returns a middleware that authenticates API requests.
// It extracts the opaque token from the Authorization header, verifies it
// against the stored hash, and injects the auth context into the request.
// Any failure yields 401 with an identical body to prevent enumeration.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			parsed, err := auth.ParseToken(token)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "invalid_format")
				writeAuthError(w)
				return
			}

			// Check cache first
			cacheKey := auth.QuickHash(token)
			authCtx, _ := cfg.Cache.GetAuthContext(r.Context(), cacheKey)

			if authCtx == nil {
				authCtx = cfg.verifyToken(w, r, token, parsed.Prefix, cacheKey)
				if authCtx == nil {
					return // response already written
				}
			}

			cfg.Logger.Info("authentication successful",
				slog.String("user_id", authCtx.UserID),
				slog.String("token_id", authCtx.TokenID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyToken performs the database-backed verification on cache miss.
// It writes the 401 response itself and returns nil on failure.
func (cfg AuthConfig) verifyToken(w http.ResponseWriter, r *http.Request, token, prefix, cacheKey string) *model.AuthContext {
	tokens, err := cfg.Repository.GetTokensByPrefix(r.Context(), prefix)
	if err != nil {
		cfg.Logger.Error("database error during auth",
			slog.String("error", err.Error()),
			slog.String("request_id", GetRequestID(r.Context())),
		)
		writeAuthError(w)
		return nil
	}

	// Verify against each candidate (handles prefix collisions)
	var matched *model.Token
	for _, candidate := range tokens {
		match, err := auth.VerifyPassword(token, candidate.SecretHash)
		if err != nil {
			continue
		}
		if match {
			matched = candidate
			break
		}
	}

	if matched == nil {
		logAuthFailure(cfg.Logger, r, "invalid_token")
		writeAuthError(w)
		return nil
	}

	user, err := cfg.Repository.GetUserByID(r.Context(), matched.UserID)
	if err != nil || !user.IsActive {
		logAuthFailure(cfg.Logger, r, "inactive_or_missing_user")
		writeAuthError(w)
		return nil
	}

	authCtx := &model.AuthContext{
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
		TokenID: matched.ID,
	}

	// Cache the result
	_ = cfg.Cache.SetAuthContext(r.Context(), cacheKey, authCtx)

	// Update last_used_at asynchronously, detached from the request lifetime
	go func(ctx context.Context, tokenID string) {
		_ = cfg.Repository.UpdateTokenLastUsed(ctx, tokenID)
	}(context.WithoutCancel(r.Context()), matched.ID)

	return authCtx
}

// extractToken extracts the opaque token from the request.
// Supports both "Authorization: Bearer <token>" and "Authorization: Token <token>".
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if strings.HasPrefix(authHeader, "Token ") {
		return strings.TrimPrefix(authHeader, "Token ")
	}

	return ""
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or missing token","code":"UNAUTHORIZED"}`))
}
