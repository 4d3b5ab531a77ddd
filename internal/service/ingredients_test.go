package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestExtractIngredients(t *testing.T) {
	t.Run("sends prompt then image", func(t *testing.T) {
		gen := &recordingGenerator{resp: textResponse("  chicken, spinach, quinoa\n")}
		extractor := NewIngredientExtractor(gen, "vision-model", zap.NewNop())
		image := []byte{0x89, 'P', 'N', 'G'}

		got, err := extractor.ExtractIngredients(context.Background(), image, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "chicken, spinach, quinoa", got)

		assert.Equal(t, 1, gen.calls)
		assert.Equal(t, "vision-model", gen.model)
		assert.Nil(t, gen.config)
		require.Len(t, gen.contents, 1)
		content := gen.contents[0]
		assert.Equal(t, string(genai.RoleUser), content.Role)
		require.Len(t, content.Parts, 2)
		assert.Equal(t, ingredientPrompt, content.Parts[0].Text)
		require.NotNil(t, content.Parts[1].InlineData)
		assert.Equal(t, image, content.Parts[1].InlineData.Data)
		assert.Equal(t, "image/png", content.Parts[1].InlineData.MIMEType)
	})

	t.Run("backend failure", func(t *testing.T) {
		cause := errors.New("permission denied")
		gen := &recordingGenerator{err: cause}
		extractor := NewIngredientExtractor(gen, "vision-model", zap.NewNop())

		_, err := extractor.ExtractIngredients(context.Background(), []byte("img"), "image/jpeg")

		var backend *BackendError
		require.True(t, errors.As(err, &backend))
		assert.Equal(t, "vision-model", backend.Model)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("empty response", func(t *testing.T) {
		gen := &recordingGenerator{resp: &genai.GenerateContentResponse{}}
		extractor := NewIngredientExtractor(gen, "vision-model", zap.NewNop())

		_, err := extractor.ExtractIngredients(context.Background(), []byte("img"), "image/jpeg")

		var backend *BackendError
		assert.True(t, errors.As(err, &backend))
		assert.True(t, errors.Is(err, ErrEmptyResponse))
	})
}
