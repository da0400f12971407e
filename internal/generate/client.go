// Package generate talks to the Gemini API to produce journaling prompts and
// decorative sticker images.
package generate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Default model identifiers.
const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image"
)

var (
	// ErrConfiguration is returned before any network call when no API key is set.
	ErrConfiguration = errors.New("generative service API key is not configured")

	// ErrGeneration wraps failures of the image call. Prompt failures never
	// surface; they fall back to FallbackPrompts.
	ErrGeneration = errors.New("generation failed")
)

// Generator is the subset of *genai.Models used by Client.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds the client settings. Empty model names use the defaults.
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

// Client wraps the Gemini models API.
type Client struct {
	models     Generator
	apiKey     string
	textModel  string
	imageModel string
	log        *zap.Logger
}

// New creates a client around an existing Generator.
func New(cfg Config, models Generator, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	return &Client{
		models:     models,
		apiKey:     cfg.APIKey,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		log:        log.Named("Generate"),
	}
}

// NewFromConfig creates the underlying GenAI client. A missing API key is not
// an error here: the returned client fails each call with ErrConfiguration.
func NewFromConfig(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return New(cfg, nil, log), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return New(cfg, client.Models, log), nil
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.models != nil
}

func (c *Client) checkConfigured() error {
	if !c.Configured() {
		return ErrConfiguration
	}
	return nil
}
