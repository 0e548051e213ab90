package assistant

import (
	"go.uber.org/zap"

	"bizplan_forecast/pkg/config"
)

// NewFromConfig registers the gemini, groq and local providers and returns
// a Manager plus a Writer using the built-in prompt library.
func NewFromConfig(cfg config.AssistantConfig, log *zap.Logger) (*Manager, *Writer, error) {
	manager, err := NewManager(cfg.ActiveProvider, cfg.CacheSize, log,
		NewGeminiProvider(cfg.Gemini.APIKey, cfg.Gemini.Model),
		NewGroqProvider(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.BaseURL),
		NewLocalProvider(cfg.Local.Model, cfg.Local.BaseURL),
	)
	if err != nil {
		return nil, nil, err
	}

	prompts, err := DefaultPromptLibrary()
	if err != nil {
		return nil, nil, err
	}

	writer := NewWriter(manager, prompts, GenerationOptions{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}, log)
	return manager, writer, nil
}
