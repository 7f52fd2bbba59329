// Package advisor turns the stored financial state into a natural-language
// analysis: it builds prompts, talks to a hosted language model, extracts a
// recommended savings target from the reply and tracks the analysis session
// state machine.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Client is the boundary to the hosted language model. The core treats it as
// an opaque capability: credentials, regions and retries are the client's
// problem, not the advisor's.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient builds a Client backed by the Gemini API. Credentials are
// read from the environment by the genai SDK.
func NewGeminiClient(ctx context.Context, model string) (Client, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client, model: model}, nil
}

func (g *geminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	prompt := systemPrompt + "\n\n" + userPrompt

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		log.Printf("ERROR: Gemini request failed: %v", err)
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}
