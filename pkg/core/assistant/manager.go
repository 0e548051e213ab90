package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// ProviderInfo describes a registered provider.
type ProviderInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Active bool   `json:"active"`
}

// Manager owns the registered providers, the active selection and a
// response cache. Construct one per service or session; it is safe for
// concurrent use.
type Manager struct {
	mu        sync.RWMutex
	providers map[string]Provider
	order     []string
	active    string

	cache *lru.Cache[string, string]
	log   *zap.Logger
}

// NewManager registers providers in order. active must name one of them.
func NewManager(active string, cacheSize int, log *zap.Logger, providers ...Provider) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	m := &Manager{
		providers: make(map[string]Provider, len(providers)),
		cache:     cache,
		log:       log,
	}
	for _, p := range providers {
		if _, dup := m.providers[p.ID()]; !dup {
			m.order = append(m.order, p.ID())
		}
		m.providers[p.ID()] = p
	}

	if err := m.SetProvider(active); err != nil {
		return nil, err
	}
	return m, nil
}

// Providers lists every registered provider in registration order.
func (m *Manager) Providers() []ProviderInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ProviderInfo, 0, len(m.order))
	for _, id := range m.order {
		p := m.providers[id]
		out = append(out, ProviderInfo{
			ID:     id,
			Name:   p.Name(),
			Ready:  p.IsReady(),
			Active: id == m.active,
		})
	}
	return out
}

// SetProvider switches the active provider.
func (m *Manager) SetProvider(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[id]; !ok {
		return fmt.Errorf("%w: %q", ErrProviderNotFound, id)
	}
	if m.active != id {
		m.log.Info("active provider changed", zap.String("provider", id), zap.String("previous", m.active))
	}
	m.active = id
	return nil
}

// ActiveID returns the id of the active provider.
func (m *Manager) ActiveID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

func (m *Manager) activeProvider() Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providers[m.active]
}

// Init prepares the active provider.
func (m *Manager) Init(ctx context.Context) error {
	return m.activeProvider().Init(ctx)
}

// IsReady reports whether the active provider can generate.
func (m *Manager) IsReady() bool {
	return m.activeProvider().IsReady()
}

type cacheKey struct {
	Provider string            `json:"provider"`
	Prompt   string            `json:"prompt"`
	Options  GenerationOptions `json:"options"`
}

// Generate runs prompt on the active provider. Identical requests on the
// same provider are served from the cache; failures are never cached.
func (m *Manager) Generate(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	p := m.activeProvider()

	raw, err := json.Marshal(cacheKey{Provider: p.ID(), Prompt: prompt, Options: opts})
	if err != nil {
		return "", fmt.Errorf("failed to build cache key: %w", err)
	}
	key := string(raw)

	if text, ok := m.cache.Get(key); ok {
		m.log.Debug("generation served from cache", zap.String("provider", p.ID()))
		return text, nil
	}

	if !p.IsReady() {
		if err := p.Init(ctx); err != nil {
			if errors.Is(err, ErrProviderNotReady) {
				return "", err
			}
			return "", fmt.Errorf("%w: %v", ErrProviderNotReady, err)
		}
	}

	text, err := p.Generate(ctx, prompt, opts)
	if err != nil {
		m.log.Warn("generation failed", zap.String("provider", p.ID()), zap.Error(err))
		return "", err
	}

	m.cache.Add(key, text)
	return text, nil
}
