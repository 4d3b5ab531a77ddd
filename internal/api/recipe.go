package api

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/pageza/fridge-chef/backend/internal/middleware"
	"github.com/pageza/fridge-chef/backend/internal/service"
	"github.com/pageza/fridge-chef/backend/internal/types"
	"github.com/pageza/fridge-chef/backend/internal/upload"
)

// formOverhead is the room left for text fields on top of the image size limit
const formOverhead = 1 << 20

// RecipeHandler serves the ingredient and recipe endpoints
type RecipeHandler struct {
	extractor   service.IIngredientExtractor
	generator   service.IRecipeGenerator
	uploads     *upload.Store
	archive     service.IImageArchive
	rateLimiter *middleware.RateLimiter
	logger      *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler. archive and rateLimiter may be nil.
func NewRecipeHandler(
	extractor service.IIngredientExtractor,
	generator service.IRecipeGenerator,
	uploads *upload.Store,
	archive service.IImageArchive,
	rateLimiter *middleware.RateLimiter,
	logger *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		extractor:   extractor,
		generator:   generator,
		uploads:     uploads,
		archive:     archive,
		rateLimiter: rateLimiter,
		logger:      logger.Named("api"),
	}
}

// RegisterRoutes registers the ingredient and recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	routes := router.Group("")

	// Apply rate limiting if available
	if h.rateLimiter != nil {
		routes.Use(h.rateLimiter.RateLimitMiddleware())
	}

	routes.POST("/ingredients", h.ResolveIngredients)
	routes.POST("/recipes", h.GenerateRecipe)
}

// ResolveIngredients returns the ingredient list from the form, or from the uploaded image when present
func (h *RecipeHandler) ResolveIngredients(c *gin.Context) {
	req, image, err := h.bindRequest(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ingredients, err := h.resolveIngredients(c.Request.Context(), req, image)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.IngredientsResponse{Ingredients: ingredients})
}

// GenerateRecipe resolves the ingredients and asks the text model for a recipe
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	req, image, err := h.bindRequest(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ingredients, err := h.resolveIngredients(c.Request.Context(), req, image)
	if err != nil {
		h.respondError(c, err)
		return
	}

	recipe, err := h.generator.GenerateRecipe(c.Request.Context(), ingredients, req.DietaryRestriction)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// bindRequest reads the text fields and the optional image from a multipart,
// urlencoded or JSON body.
func (h *RecipeHandler) bindRequest(c *gin.Context) (*types.RecipeRequest, *multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploads.MaxBytes()+formOverhead)

	var req types.RecipeRequest
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, nil, bodyError(err)
		}
		return &req, nil, nil
	}

	if err := c.Request.ParseMultipartForm(h.uploads.MaxBytes()); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, bodyError(err)
	}
	req.Ingredients = c.Request.FormValue("ingredients")
	req.DietaryRestriction = c.Request.FormValue("dietaryRestriction")

	var image *multipart.FileHeader
	if form := c.Request.MultipartForm; form != nil {
		if files := form.File["image"]; len(files) > 0 {
			image = files[0]
		}
	}
	return &req, image, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return upload.ErrTooLarge
	}
	return fmt.Errorf("%w: %v", errInvalidForm, err)
}

// resolveIngredients prefers the image over the text field whenever an image is uploaded
func (h *RecipeHandler) resolveIngredients(ctx context.Context, req *types.RecipeRequest, image *multipart.FileHeader) (string, error) {
	ingredients := strings.TrimSpace(req.Ingredients)

	if image != nil {
		if ingredients != "" {
			h.logger.Warn("both image and ingredients supplied, using image")
		}
		var err error
		ingredients, err = h.ingredientsFromImage(ctx, image)
		if err != nil {
			return "", err
		}
	}

	if ingredients == "" {
		return "", service.ErrMissingInput
	}
	return ingredients, nil
}

// ingredientsFromImage stores the upload for the duration of the call and
// removes it on every exit path.
func (h *RecipeHandler) ingredientsFromImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	mimeType, err := service.MIMETypeForFile(image.Filename)
	if err != nil {
		return "", err
	}

	file, err := h.uploads.Save(image)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := file.Remove(); err != nil {
			h.logger.Warn("failed to remove upload", zap.String("path", file.Path), zap.Error(err))
		}
	}()

	data, err := file.Read()
	if err != nil {
		return "", err
	}

	ingredients, err := h.extractor.ExtractIngredients(ctx, data, mimeType)
	if err != nil {
		return "", err
	}

	if h.archive != nil {
		location, err := h.archive.ArchiveImage(ctx, data, file.OriginalName, mimeType)
		if err != nil {
			h.logger.Warn("failed to archive upload", zap.String("filename", file.OriginalName), zap.Error(err))
		} else {
			h.logger.Debug("archived upload", zap.String("location", location))
		}
	}

	return strings.TrimSpace(ingredients), nil
}

func (h *RecipeHandler) respondError(c *gin.Context, err error) {
	status := statusForError(err)
	_ = c.Error(err)

	fields := []zap.Field{
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	var malformed *service.MalformedOutputError
	if errors.As(err, &malformed) {
		fields = append(fields, zap.String("raw_output", malformed.Raw))
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Info("request rejected", fields...)
	}

	c.JSON(status, types.ErrorResponse{Error: messageForError(err)})
}
