// Package assistant produces narrative business-plan sections with
// interchangeable text-generation backends. Nothing here feeds the
// projection engine; generated text only lands in the plan's Narrative.
package assistant

import (
	"context"
	"errors"
)

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrProviderNotReady = errors.New("provider not ready")
	ErrUnknownSection   = errors.New("unknown section")
)

// Provider ids
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderLocal  = "local"
)

// GenerationOptions tune a single generation. Zero values fall back to the
// provider defaults.
type GenerationOptions struct {
	MaxTokens         int     `json:"max_tokens,omitempty"`
	Temperature       float64 `json:"temperature,omitempty"`
	SystemInstruction string  `json:"system_instruction,omitempty"`
}

// Provider is one text-generation backend.
type Provider interface {
	ID() string
	Name() string
	// IsReady reports whether Generate can be called without Init.
	IsReady() bool
	Init(ctx context.Context) error
	Generate(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
}
