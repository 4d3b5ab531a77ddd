package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/pageza/fridge-chef/backend/internal/types"
)

const (
	// DefaultMaxOutputTokens caps the text model's output. Verbose recipes can
	// be cut off at this length and then fail sanitization.
	DefaultMaxOutputTokens = 256

	recipeSystemInstruction = "You are a healthy cooking expert."

	recipePromptTemplate = `You are a professional chef and nutritionist.
Suggest a healthy %srecipe using these ingredients: %s.
Use as many of the listed ingredients as possible.
If the ingredients describe an already-assembled product or finished dish, infer a coherent recipe for making it.
Return a complete JSON object with exactly these fields:
- "name": string (recipe name)
- "steps": string (cooking instructions)
- "calories": number (total calories)
- "nutrition": object with "protein", "carbs", "fat" (each as strings with units, e.g., "20g")
Provide only the JSON object, no extra text, markdown, or incomplete data.`
)

// RecipeGenerator asks a text model for a recipe built from a list of ingredients
type RecipeGenerator struct {
	models          ContentGenerator
	model           string
	maxOutputTokens int32
	logger          *zap.Logger
}

// NewRecipeGenerator creates a new RecipeGenerator instance. A non-positive
// maxOutputTokens falls back to DefaultMaxOutputTokens.
func NewRecipeGenerator(models ContentGenerator, model string, maxOutputTokens int, logger *zap.Logger) *RecipeGenerator {
	if maxOutputTokens <= 0 {
		maxOutputTokens = DefaultMaxOutputTokens
	}
	return &RecipeGenerator{
		models:          models,
		model:           model,
		maxOutputTokens: int32(maxOutputTokens),
		logger:          logger.Named("recipes"),
	}
}

// BuildRecipePrompt renders the recipe prompt. The dietary restriction, when
// given, qualifies the word "recipe" directly.
func BuildRecipePrompt(ingredients, dietaryRestriction string) string {
	qualifier := ""
	if restriction := strings.TrimSpace(dietaryRestriction); restriction != "" {
		qualifier = restriction + " "
	}
	return fmt.Sprintf(recipePromptTemplate, qualifier, ingredients)
}

func (g *RecipeGenerator) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(recipeSystemInstruction, genai.RoleUser),
		MaxOutputTokens:   g.maxOutputTokens,
		SafetySettings: []*genai.SafetySetting{
			{
				Category:  genai.HarmCategoryDangerousContent,
				Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
			},
		},
	}
}

// GenerateRecipe generates a recipe for the ingredients, honoring an optional dietary restriction
func (g *RecipeGenerator) GenerateRecipe(ctx context.Context, ingredients, dietaryRestriction string) (*types.Recipe, error) {
	prompt := BuildRecipePrompt(ingredients, dietaryRestriction)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), g.generationConfig())
	if err != nil {
		return nil, &BackendError{Op: "generate recipe", Model: g.model, Err: err}
	}

	text, err := firstText(resp)
	if err != nil {
		return nil, &BackendError{Op: "generate recipe", Model: g.model, Err: err}
	}
	g.logger.Debug("raw recipe text", zap.String("text", text))

	cleaned, err := SanitizeRecipeJSON(text)
	if err != nil {
		g.logger.Warn("recipe output could not be sanitized", zap.String("text", text), zap.Error(err))
		return nil, err
	}

	var recipe types.Recipe
	if err := json.Unmarshal([]byte(cleaned), &recipe); err != nil {
		g.logger.Warn("recipe output has unexpected shape", zap.String("text", cleaned), zap.Error(err))
		return nil, &MalformedOutputError{Raw: text, Err: err}
	}

	return &recipe, nil
}
