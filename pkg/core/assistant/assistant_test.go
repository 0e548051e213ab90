package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bizplan_forecast/pkg/config"
	"bizplan_forecast/pkg/core/projection"
	"bizplan_forecast/pkg/models"
)

// fakeProvider records prompts and answers with a fixed reply.
type fakeProvider struct {
	id      string
	ready   bool
	initErr error
	reply   string
	genErr  error

	mu      sync.Mutex
	calls   int
	prompts []string
	opts    []GenerationOptions
}

func (f *fakeProvider) ID() string    { return f.id }
func (f *fakeProvider) Name() string  { return "Fake " + f.id }
func (f *fakeProvider) IsReady() bool { return f.ready }

func (f *fakeProvider) Init(context.Context) error {
	if f.initErr != nil {
		return f.initErr
	}
	f.ready = true
	return nil
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, opts GenerationOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.reply, nil
}

func TestManager_SelectAndList(t *testing.T) {
	a := &fakeProvider{id: "a", ready: true}
	b := &fakeProvider{id: "b"}

	m, err := NewManager("a", 4, zaptest.NewLogger(t), a, b)
	require.NoError(t, err)
	assert.Equal(t, "a", m.ActiveID())

	list := m.Providers()
	require.Len(t, list, 2)
	assert.Equal(t, ProviderInfo{ID: "a", Name: "Fake a", Ready: true, Active: true}, list[0])
	assert.Equal(t, ProviderInfo{ID: "b", Name: "Fake b", Ready: false, Active: false}, list[1])

	require.NoError(t, m.SetProvider("b"))
	assert.Equal(t, "b", m.ActiveID())

	err = m.SetProvider("nope")
	assert.ErrorIs(t, err, ErrProviderNotFound)
	assert.Equal(t, "b", m.ActiveID())

	_, err = NewManager("missing", 4, nil, a)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestManager_CachesPerProvider(t *testing.T) {
	ctx := context.Background()
	a := &fakeProvider{id: "a", ready: true, reply: "from a"}
	b := &fakeProvider{id: "b", ready: true, reply: "from b"}
	m, err := NewManager("a", 4, nil, a, b)
	require.NoError(t, err)

	opts := GenerationOptions{Temperature: 0.5}
	for i := 0; i < 3; i++ {
		text, err := m.Generate(ctx, "hello", opts)
		require.NoError(t, err)
		assert.Equal(t, "from a", text)
	}
	assert.Equal(t, 1, a.calls)

	// different options are a different entry
	_, err = m.Generate(ctx, "hello", GenerationOptions{Temperature: 0.9})
	require.NoError(t, err)
	assert.Equal(t, 2, a.calls)

	require.NoError(t, m.SetProvider("b"))
	text, err := m.Generate(ctx, "hello", opts)
	require.NoError(t, err)
	assert.Equal(t, "from b", text)
	assert.Equal(t, 1, b.calls)
}

func TestManager_DoesNotCacheFailures(t *testing.T) {
	p := &fakeProvider{id: "a", ready: true, genErr: errors.New("rate limited")}
	m, err := NewManager("a", 4, nil, p)
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), "x", GenerationOptions{})
	require.Error(t, err)

	p.genErr, p.reply = nil, "ok"
	text, err := m.Generate(context.Background(), "x", GenerationOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 2, p.calls)
}

func TestManager_NotReady(t *testing.T) {
	p := &fakeProvider{id: "a", initErr: errors.New("no key")}
	m, err := NewManager("a", 4, nil, p)
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), "x", GenerationOptions{})
	assert.ErrorIs(t, err, ErrProviderNotReady)
	assert.Zero(t, p.calls)
}

func TestChatProvider_Generate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"generated text"}}]}`))
	}))
	defer srv.Close()

	p := NewGroqProvider("secret", "test-model", srv.URL+"/")
	require.True(t, p.IsReady())

	text, err := p.Generate(context.Background(), "write", GenerationOptions{SystemInstruction: "be brief", MaxTokens: 50})
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 50, got.MaxTokens)
	assert.Equal(t, defaultTemperature, got.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "be brief"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "write"}, got.Messages[1])
}

func TestChatProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer srv.Close()

	_, err := NewGroqProvider("k", "", srv.URL).Generate(context.Background(), "x", GenerationOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "slow down")
}

func TestChatProvider_GroqWithoutKey(t *testing.T) {
	p := NewGroqProvider("", "", "")
	assert.False(t, p.IsReady())
	assert.ErrorIs(t, p.Init(context.Background()), ErrProviderNotReady)
}

func TestChatProvider_LocalProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			_, _ = w.Write([]byte(`{"data":[{"id":"llama3"}]}`))
		case "/chat/completions":
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"local"}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewLocalProvider("", srv.URL)
	assert.False(t, p.IsReady())
	require.NoError(t, p.Init(context.Background()))
	assert.True(t, p.IsReady())

	text, err := p.Generate(context.Background(), "x", GenerationOptions{})
	require.NoError(t, err)
	assert.Equal(t, "local", text)
}

func TestChatProvider_LocalUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := NewLocalProvider("", srv.URL).Init(context.Background())
	assert.ErrorIs(t, err, ErrProviderNotReady)
}

func TestGeminiProvider_RequiresKey(t *testing.T) {
	p := NewGeminiProvider("", "")
	assert.False(t, p.IsReady())
	assert.Equal(t, ProviderGemini, p.ID())

	_, err := p.Generate(context.Background(), "x", GenerationOptions{})
	assert.ErrorIs(t, err, ErrProviderNotReady)
}

func TestSmartParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"strict", `{"strengths": "team"}`},
		{"code fence and trailing comma", "```json\n{\"strengths\": \"team\",}\n```"},
		{"hjson", "{\n  strengths: team\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Strengths string `json:"strengths"`
			}
			require.NoError(t, SmartParse(tt.input, &out))
			assert.Equal(t, "team", out.Strengths)
		})
	}
}

func TestParseSWOT(t *testing.T) {
	s, err := ParseSWOT(`{"Strengths": ["skilled team", "low costs"], "weaknesses": "small", "opportunities": "digitalisation", "threats": "competition"}`)
	require.NoError(t, err)
	assert.Equal(t, "- skilled team\n- low costs", s.Strengths)
	assert.Equal(t, "small", s.Weaknesses)
	assert.Equal(t, "digitalisation", s.Opportunities)
	assert.Equal(t, "competition", s.Threats)

	_, err = ParseSWOT(`{"unrelated": 1}`)
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "# Title\n\nBody", CleanText("```markdown\n# Title\n\nBody\n```"))
	assert.Equal(t, "plain", CleanText("  plain \n"))
}

func TestPromptLibrary(t *testing.T) {
	lib, err := DefaultPromptLibrary()
	require.NoError(t, err)

	for _, id := range []string{
		SectionExecutiveSummary, SectionProjectDescription, SectionMarketStudy, SectionMarketingStrategy,
		SectionProfitabilityAnalysis, SectionSWOT, SectionConclusion, SectionEditorAdvice,
	} {
		_, err := lib.Section(id)
		assert.NoError(t, err, id)
	}

	_, err = lib.Section("appendix")
	assert.ErrorIs(t, err, ErrUnknownSection)

	section, _ := lib.Section(SectionConclusion)
	prompt, system, err := lib.Build(section, "CTX", "")
	require.NoError(t, err)
	assert.Contains(t, prompt, "SECTION TO WRITE: Conclusion")
	assert.Contains(t, prompt, "CTX")
	assert.Contains(t, system, lib.Tasks["draft"])

	prompt, system, err = lib.Build(section, "CTX", "our project is promising")
	require.NoError(t, err)
	assert.Contains(t, prompt, `"our project is promising"`)
	assert.Contains(t, system, lib.Tasks["reformulate"])
}

func TestParsePromptLibrary_Invalid(t *testing.T) {
	_, err := ParsePromptLibrary([]byte("sections: {}"))
	assert.Error(t, err)

	_, err = ParsePromptLibrary([]byte("draft_template: \"{{.Broken\"\nsections:\n  a:\n    label: A\n"))
	assert.Error(t, err)
}

func newTestWriter(t *testing.T, reply string) (*Writer, *fakeProvider) {
	p := &fakeProvider{id: "fake", ready: true, reply: reply}
	m, err := NewManager("fake", 8, zaptest.NewLogger(t), p)
	require.NoError(t, err)
	lib, err := DefaultPromptLibrary()
	require.NoError(t, err)
	return NewWriter(m, lib, GenerationOptions{MaxTokens: 1500, Temperature: 0.7}, zaptest.NewLogger(t)), p
}

func TestWriter_GenerateSection(t *testing.T) {
	w, p := newTestWriter(t, "```\nA promising agency.\n```")
	plan := models.DemoPlan()
	res := projection.Calculate(plan)

	out, err := w.GenerateSection(context.Background(), SectionRequest{Section: SectionConclusion, Plan: plan, Results: res})
	require.NoError(t, err)
	assert.Equal(t, "A promising agency.", out.Text)
	assert.Equal(t, "fake", out.Provider)

	require.Len(t, p.prompts, 1)
	assert.Contains(t, p.prompts[0], "Company: DigiTech Solutions")
	assert.Contains(t, p.prompts[0], "Total investment: 25,000.00")
	assert.Equal(t, 1500, p.opts[0].MaxTokens)
	assert.NotEmpty(t, p.opts[0].SystemInstruction)

	require.NoError(t, ApplyNarrative(&plan, out))
	assert.Equal(t, "A promising agency.", plan.Narrative.Conclusion)
}

func TestWriter_SectionWithoutFigures(t *testing.T) {
	w, p := newTestWriter(t, "text")
	plan := models.DemoPlan()

	_, err := w.GenerateSection(context.Background(), SectionRequest{
		Section: SectionMarketStudy,
		Plan:    plan,
		Results: projection.Calculate(plan),
	})
	require.NoError(t, err)
	assert.False(t, strings.Contains(p.prompts[0], "KEY FIGURES"))
}

func TestWriter_SWOT(t *testing.T) {
	w, _ := newTestWriter(t, `{strengths: "team", weaknesses: "size", opportunities: "market", threats: "rivals",}`)
	plan := models.DemoPlan()

	out, err := w.GenerateSection(context.Background(), SectionRequest{Section: SectionSWOT, Plan: plan})
	require.NoError(t, err)
	require.NotNil(t, out.SWOT)
	assert.Contains(t, out.Text, "### Strengths")

	require.NoError(t, ApplyNarrative(&plan, out))
	assert.Equal(t, "team", plan.Narrative.Strengths)
	assert.Equal(t, "rivals", plan.Narrative.Threats)
}

func TestWriter_UnknownSection(t *testing.T) {
	w, p := newTestWriter(t, "x")
	_, err := w.GenerateSection(context.Background(), SectionRequest{Section: "appendix"})
	assert.ErrorIs(t, err, ErrUnknownSection)
	assert.Zero(t, p.calls)

	err = ApplyNarrative(&models.BusinessPlanData{}, &SectionResult{Section: "appendix"})
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestNewFromConfig(t *testing.T) {
	m, w, err := NewFromConfig(config.AssistantConfig{ActiveProvider: ProviderGroq, CacheSize: 8}, nil)
	require.NoError(t, err)
	require.NotNil(t, w)

	ids := make([]string, 0)
	for _, p := range m.Providers() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{ProviderGemini, ProviderGroq, ProviderLocal}, ids)
	assert.Equal(t, ProviderGroq, m.ActiveID())
}
