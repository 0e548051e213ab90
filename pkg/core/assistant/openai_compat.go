package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Fallbacks for chat-completion requests.
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
)

// ChatProvider talks to an OpenAI-compatible chat-completions endpoint.
// Groq and local Ollama servers both speak this protocol.
type ChatProvider struct {
	id         string
	name       string
	baseURL    string
	apiKey     string
	model      string
	requireKey bool
	httpClient *http.Client

	mu    sync.Mutex
	ready bool
}

var _ Provider = (*ChatProvider)(nil)

// NewGroqProvider needs an API key; Init only checks that it is set.
func NewGroqProvider(apiKey, model, baseURL string) *ChatProvider {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	return &ChatProvider{
		id:         ProviderGroq,
		name:       "Groq",
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		requireKey: true,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewLocalProvider targets a self-hosted server; Init probes GET /models.
func NewLocalProvider(model, baseURL string) *ChatProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}
	if model == "" {
		model = "llama3"
	}
	return &ChatProvider{
		id:         ProviderLocal,
		name:       "Local model",
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *ChatProvider) ID() string   { return p.id }
func (p *ChatProvider) Name() string { return p.name }

func (p *ChatProvider) IsReady() bool {
	if p.requireKey {
		return p.apiKey != ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

func (p *ChatProvider) Init(ctx context.Context) error {
	if p.requireKey {
		if p.apiKey == "" {
			return fmt.Errorf("%w: %s api key not configured", ErrProviderNotReady, p.id)
		}
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("failed to build probe request: %w", err)
	}
	res, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s unreachable: %v", ErrProviderNotReady, p.id, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s probe returned %d", ErrProviderNotReady, p.id, res.StatusCode)
	}

	p.ready = true
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *ChatProvider) Generate(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	if err := p.Init(ctx); err != nil {
		return "", err
	}

	reqBody := chatRequest{
		Model:       p.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if reqBody.Temperature <= 0 {
		reqBody.Temperature = defaultTemperature
	}
	if reqBody.MaxTokens <= 0 {
		reqBody.MaxTokens = defaultMaxTokens
	}
	if opts.SystemInstruction != "" {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: "system", Content: opts.SystemInstruction})
	}
	reqBody.Messages = append(reqBody.Messages, chatMessage{Role: "user", Content: prompt})

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s request: %w", p.id, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build %s request: %w", p.id, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	res, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s api call failed: %w", p.id, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s response: %w", p.id, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil && res.StatusCode == http.StatusOK {
		return "", fmt.Errorf("failed to decode %s response: %w", p.id, err)
	}
	if res.StatusCode != http.StatusOK {
		msg := http.StatusText(res.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("%s error (%d): %s", p.id, res.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
