package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const ingredientPrompt = "Identify the ingredients visible in this fridge, pantry, or food image. " +
	"If the image shows a finished dish or packaged product, include the ingredients it is most likely made from. " +
	"Return only a comma-separated list of ingredient names (e.g., 'chicken, spinach, quinoa') with no extra text or formatting."

// IngredientExtractor asks a vision model for the ingredients shown in an image
type IngredientExtractor struct {
	models ContentGenerator
	model  string
	logger *zap.Logger
}

// NewIngredientExtractor creates a new IngredientExtractor instance
func NewIngredientExtractor(models ContentGenerator, model string, logger *zap.Logger) *IngredientExtractor {
	return &IngredientExtractor{
		models: models,
		model:  model,
		logger: logger.Named("ingredients"),
	}
}

// ExtractIngredients returns a comma-separated ingredient list inferred from the image
func (e *IngredientExtractor) ExtractIngredients(ctx context.Context, image []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(ingredientPrompt),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}

	e.logger.Debug("requesting ingredients from image",
		zap.String("model", e.model),
		zap.String("mime_type", mimeType),
		zap.Int("image_bytes", len(image)),
	)

	resp, err := e.models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return "", &BackendError{Op: "extract ingredients", Model: e.model, Err: err}
	}

	text, err := firstText(resp)
	if err != nil {
		return "", &BackendError{Op: "extract ingredients", Model: e.model, Err: err}
	}

	return strings.TrimSpace(text), nil
}
