package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModelName = "gemini-1.5-pro-latest"

// Gemini generates text through the Google generative language API using an
// API key.
type Gemini struct {
	client    *genai.Client
	modelName string
}

func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = defaultModelName
	}
	return &Gemini{client: client, modelName: modelName}, nil
}

func (g *Gemini) Close() error { return g.client.Close() }

func (g *Gemini) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	model := g.client.GenerativeModel(g.modelName)

	if opts.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(opts.SystemInstruction)},
		}
	}

	temp := opts.Temperature
	topP := float32(0.95)
	topK := int32(40)
	maxTokens := opts.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini returned a non-text response")
	}
	return sb.String(), nil
}
