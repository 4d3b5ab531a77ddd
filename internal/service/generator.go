package service

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"

	"github.com/pageza/fridge-chef/backend/config"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// ContentGenerator submits a multi-part request to a generative backend. It is
// satisfied by (*genai.Client).Models.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGenAIClient creates a Vertex AI client. Explicit service-account
// credentials are used when configured; otherwise the client falls back to
// application default credentials such as a locally configured gcloud identity.
func NewGenAIClient(ctx context.Context, cfg *config.Config) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.GCPProject,
		Location: cfg.GCPLocation,
	}

	if cfg.HasServiceAccount() {
		creds, err := serviceAccountCredentials(cfg.GCPClientEmail, cfg.GCPPrivateKey)
		if err != nil {
			return nil, err
		}
		clientConfig.Credentials = creds
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

func serviceAccountCredentials(email, privateKey string) (*auth.Credentials, error) {
	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": email,
		"private_key":  privateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account: %w", err)
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes:          []string{cloudPlatformScope},
		CredentialsJSON: raw,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load service account credentials: %w", err)
	}
	return creds, nil
}

// firstText returns the first text part of the first candidate
func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", ErrEmptyResponse
	}
	for _, part := range content.Parts {
		if part != nil && part.Text != "" {
			return part.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
