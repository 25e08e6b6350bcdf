package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recipebox/recipebox/internal/auth"
	"github.com/recipebox/recipebox/internal/handler/dto"
	"github.com/recipebox/recipebox/internal/service"
)

// RecipeHandler handles the recipe catalog endpoints.
type RecipeHandler struct {
	svc           *service.RecipeService
	logger        *slog.Logger
	maxUploadSize int64
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService, logger *slog.Logger, maxUploadSize int64) *RecipeHandler {
	return &RecipeHandler{
		svc:           svc,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// List handles GET /api/v1/recipes.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustAuthFromContext(r.Context())

	recipes, err := h.svc.List(r.Context(), identity)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeListResponse(recipes))
}

// Create handles POST /api/v1/recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustAuthFromContext(r.Context())

	var req dto.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	recipe, err := h.svc.Create(r.Context(), identity, service.CreateRecipeInput{
		Name:          req.Name,
		CookTime:      req.CookTime,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("recipe_created",
		"recipe_id", recipe.ID,
		"user_id", identity.UserID,
		"tag_count", len(recipe.Tags),
		"ingredient_count", len(recipe.Ingredients),
	)

	writeJSON(w, http.StatusCreated, dto.ToRecipeDetailResponse(recipe))
}

// Get handles GET /api/v1/recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Recipe ID is required")
		return
	}

	recipe, err := h.svc.Get(r.Context(), identity, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeDetailResponse(recipe))
}

// Replace handles PUT /api/v1/recipes/{id}.
// Omitted tags/ingredients fields clear the associations.
func (h *RecipeHandler) Replace(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Recipe ID is required")
		return
	}

	var req dto.ReplaceRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	recipe, err := h.svc.Replace(r.Context(), identity, id, service.ReplaceRecipeInput{
		Name:          req.Name,
		CookTime:      req.CookTime,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("recipe_replaced",
		"recipe_id", recipe.ID,
		"user_id", identity.UserID,
	)

	writeJSON(w, http.StatusOK, dto.ToRecipeDetailResponse(recipe))
}

// PartialUpdate handles PATCH /api/v1/recipes/{id}.
// Omitted relational fields are left untouched.
func (h *RecipeHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Recipe ID is required")
		return
	}

	var req dto.UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	recipe, err := h.svc.PartialUpdate(r.Context(), identity, id, service.UpdateRecipeInput{
		Name:          req.Name,
		CookTime:      req.CookTime,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRecipeDetailResponse(recipe))
}

// Delete handles DELETE /api/v1/recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Recipe ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), identity, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("recipe_deleted",
		"recipe_id", id,
		"user_id", identity.UserID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/v1/recipes/{id}/image.
// Expects a multipart form with the file in the "image" field.
func (h *RecipeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustAuthFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Recipe ID is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Invalid multipart upload")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_IMAGE", "Image file is required")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Unable to read image payload")
		return
	}

	recipe, err := h.svc.UploadImage(r.Context(), identity, id, payload)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("recipe_image_uploaded",
		"recipe_id", recipe.ID,
		"user_id", identity.UserID,
		"image", recipe.ImagePath,
	)

	writeJSON(w, http.StatusOK, dto.RecipeImageResponse{
		ID:    recipe.ID,
		Image: recipe.ImagePath,
	})
}

// handleServiceError maps recipe service errors to HTTP responses.
func (h *RecipeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "NAME_REQUIRED", "Name is required")
	case errors.Is(err, service.ErrNameTooLong):
		writeError(w, http.StatusBadRequest, "NAME_TOO_LONG", "Name exceeds maximum length")
	case errors.Is(err, service.ErrInvalidCookTime):
		writeError(w, http.StatusBadRequest, "INVALID_COOK_TIME", "Cook time must be a positive number of minutes")
	case errors.Is(err, service.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, "INVALID_PRICE", "Price must be a non-negative decimal with up to two fractional digits")
	case errors.Is(err, service.ErrInvalidLink):
		writeError(w, http.StatusBadRequest, "INVALID_LINK", "Link must be a valid http or https URL")
	case errors.Is(err, service.ErrTagNotOwned):
		writeError(w, http.StatusBadRequest, "TAG_NOT_OWNED", "One or more tags do not exist or are not owned by the user")
	case errors.Is(err, service.ErrIngredientNotOwned):
		writeError(w, http.StatusBadRequest, "INGREDIENT_NOT_OWNED", "One or more ingredients do not exist or are not owned by the user")
	case errors.Is(err, service.ErrInvalidImage):
		writeError(w, http.StatusBadRequest, "INVALID_IMAGE", "Payload is not a decodable image")
	case errors.Is(err, service.ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "RECIPE_NOT_FOUND", "Recipe not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
