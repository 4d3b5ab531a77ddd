package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/fridge-chef/backend/internal/types"
	"github.com/pageza/fridge-chef/backend/internal/upload"
)

// MockIngredientExtractor is a mock implementation of IIngredientExtractor
type MockIngredientExtractor struct {
	mock.Mock
}

func (m *MockIngredientExtractor) ExtractIngredients(ctx context.Context, image []byte, mimeType string) (string, error) {
	args := m.Called(ctx, image, mimeType)
	return args.String(0), args.Error(1)
}

// MockRecipeGenerator is a mock implementation of IRecipeGenerator
type MockRecipeGenerator struct {
	mock.Mock
}

func (m *MockRecipeGenerator) GenerateRecipe(ctx context.Context, ingredients, dietaryRestriction string) (*types.Recipe, error) {
	args := m.Called(ctx, ingredients, dietaryRestriction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// MockImageArchive is a mock implementation of IImageArchive
type MockImageArchive struct {
	mock.Mock
}

func (m *MockImageArchive) ArchiveImage(ctx context.Context, image []byte, filename, mimeType string) (string, error) {
	args := m.Called(ctx, image, filename, mimeType)
	return args.String(0), args.Error(1)
}

// testUpload describes an image part in a multipart test request
type testUpload struct {
	Filename string
	Content  []byte
}

// newMultipartRequest builds a multipart POST request with the given text fields and optional image
func newMultipartRequest(t *testing.T, path string, fields map[string]string, image *testUpload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", image.Filename)
		require.NoError(t, err)
		_, err = part.Write(image.Content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// setupRecipeTestRouter wires a RecipeHandler with mocks into a bare gin engine
func setupRecipeTestRouter(t *testing.T, extractor *MockIngredientExtractor, generator *MockRecipeGenerator, archive *MockImageArchive, maxBytes int64) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := upload.NewStore(dir, maxBytes)
	require.NoError(t, err)

	var handler *RecipeHandler
	if archive != nil {
		handler = NewRecipeHandler(extractor, generator, store, archive, nil, zap.NewNop())
	} else {
		handler = NewRecipeHandler(extractor, generator, store, nil, nil, zap.NewNop())
	}

	router := gin.New()
	RegisterRoutes(router, handler)
	return router, dir
}
