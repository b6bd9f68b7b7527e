package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type stubGenerator struct {
	prompt string
	text   string
	err    error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestCareerAdvice_ReturnsGeneratedText(t *testing.T) {
	gen := &stubGenerator{text: "1. Learn Go"}
	a := New(gen, zerolog.Nop())

	got := a.CareerAdvice(context.Background(), []string{"Laravel", "React"}, "become a senior engineer")
	if got != "1. Learn Go" {
		t.Fatalf("unexpected advice: %q", got)
	}
	want := "I am a B.Sc graduate web developer with skills in Laravel, React. My goal is become a senior engineer. Please provide a 3-step action plan for my career. Format as clean text with points."
	if gen.prompt != want {
		t.Fatalf("unexpected prompt:\n%s", gen.prompt)
	}
}

func TestCareerAdvice_Fallback(t *testing.T) {
	a := New(&stubGenerator{err: errors.New("quota exceeded")}, zerolog.Nop())
	if got := a.CareerAdvice(context.Background(), nil, "x"); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}

	if got := New(nil, zerolog.Nop()).CareerAdvice(context.Background(), nil, "x"); got != Fallback {
		t.Fatalf("expected fallback without generator, got %q", got)
	}
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	if _, err := NewGeminiGenerator(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
