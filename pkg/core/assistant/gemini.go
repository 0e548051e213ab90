package assistant

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider generates text through the Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

var _ Provider = (*GeminiProvider)(nil)

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (p *GeminiProvider) ID() string   { return ProviderGemini }
func (p *GeminiProvider) Name() string { return "Google Gemini" }

func (p *GeminiProvider) IsReady() bool {
	return p.apiKey != ""
}

// Init creates the SDK client. It needs an API key.
func (p *GeminiProvider) Init(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return nil
	}
	if p.apiKey == "" {
		return fmt.Errorf("%w: gemini api key not configured", ErrProviderNotReady)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to create GenAI client: %w", err)
	}
	p.client = client
	return nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	if err := p.Init(ctx); err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: opts.SystemInstruction},
			},
		}
	}

	p.mu.Lock()
	client := p.client
	p.mu.Unlock()

	result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}
