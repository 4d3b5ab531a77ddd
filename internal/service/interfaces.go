package service

import (
	"context"

	"github.com/pageza/fridge-chef/backend/internal/types"
)

// IIngredientExtractor defines the interface for image ingredient extraction
type IIngredientExtractor interface {
	ExtractIngredients(ctx context.Context, image []byte, mimeType string) (string, error)
}

// IRecipeGenerator defines the interface for recipe generation
type IRecipeGenerator interface {
	GenerateRecipe(ctx context.Context, ingredients, dietaryRestriction string) (*types.Recipe, error)
}

// IImageArchive defines the interface for keeping a copy of uploaded images
type IImageArchive interface {
	ArchiveImage(ctx context.Context, image []byte, filename, mimeType string) (string, error)
}
