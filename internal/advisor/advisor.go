// Package advisor produces short career plans through a text-generation model.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Fallback is returned whenever generation fails.
const Fallback = "I'm currently unable to generate career advice. Please try again later."

const (
	DefaultModel = "gemini-2.5-flash"
	temperature  = 0.7
	topP         = 0.95
)

var errNoText = errors.New("advisor: empty response")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("advisor: missing API key")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](temperature),
		TopP:        genai.Ptr[float32](topP),
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errNoText
	}
	return text, nil
}

// Advisor wraps a Generator with the career prompt and the fallback.
type Advisor struct {
	gen Generator
	log zerolog.Logger
}

// New returns an Advisor. A nil generator always answers with Fallback.
func New(gen Generator, log zerolog.Logger) *Advisor {
	return &Advisor{gen: gen, log: log}
}

// Prompt renders the career-plan prompt.
func Prompt(skills []string, goal string) string {
	return fmt.Sprintf(
		"I am a B.Sc graduate web developer with skills in %s. My goal is %s. Please provide a 3-step action plan for my career. Format as clean text with points.",
		strings.Join(skills, ", "), goal,
	)
}

func (a *Advisor) CareerAdvice(ctx context.Context, skills []string, goal string) string {
	if a.gen == nil {
		return Fallback
	}
	text, err := a.gen.Generate(ctx, Prompt(skills, goal))
	if err != nil {
		a.log.Error().Err(err).Msg("career advice generation failed")
		return Fallback
	}
	return text
}
