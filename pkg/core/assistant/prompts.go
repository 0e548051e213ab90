package assistant

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v2"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// SectionPrompt describes how one narrative section is requested.
type SectionPrompt struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Instruction string `yaml:"instruction"`
	UsesResults bool   `yaml:"uses_results"` // include computed indicators in the context
	JSON        bool   `yaml:"json"`         // answer is a JSON object
}

// PromptLibrary is the parsed prompt file.
type PromptLibrary struct {
	Version             string                   `yaml:"version"`
	System              string                   `yaml:"system"`
	Tasks               map[string]string        `yaml:"tasks"`
	DraftTemplate       string                   `yaml:"draft_template"`
	ReformulateTemplate string                   `yaml:"reformulate_template"`
	Sections            map[string]SectionPrompt `yaml:"sections"`

	draft       *template.Template
	reformulate *template.Template
}

// promptData is the template input.
type promptData struct {
	Context     string
	Label       string
	Description string
	Instruction string
	Draft       string
}

// ParsePromptLibrary decodes a YAML prompt library and compiles its templates.
func ParsePromptLibrary(data []byte) (*PromptLibrary, error) {
	var lib PromptLibrary
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse prompt library: %w", err)
	}
	if len(lib.Sections) == 0 {
		return nil, fmt.Errorf("prompt library defines no sections")
	}

	var err error
	if lib.draft, err = template.New("draft").Parse(lib.DraftTemplate); err != nil {
		return nil, fmt.Errorf("invalid draft_template: %w", err)
	}
	if lib.reformulate, err = template.New("reformulate").Parse(lib.ReformulateTemplate); err != nil {
		return nil, fmt.Errorf("invalid reformulate_template: %w", err)
	}
	return &lib, nil
}

// LoadPromptLibrary reads a prompt library file. An empty path returns the
// built-in library.
func LoadPromptLibrary(path string) (*PromptLibrary, error) {
	if path == "" {
		return DefaultPromptLibrary()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParsePromptLibrary(data)
}

// DefaultPromptLibrary returns the built-in library.
func DefaultPromptLibrary() (*PromptLibrary, error) {
	return ParsePromptLibrary(defaultPrompts)
}

// Section looks up a section prompt by id.
func (l *PromptLibrary) Section(id string) (SectionPrompt, error) {
	s, ok := l.Sections[id]
	if !ok {
		return SectionPrompt{}, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return s, nil
}

// Build renders the user prompt and the system instruction for a section.
// A draft longer than ten characters switches to reformulation.
func (l *PromptLibrary) Build(section SectionPrompt, context, draft string) (prompt, system string, err error) {
	data := promptData{
		Context:     context,
		Label:       section.Label,
		Description: section.Description,
		Instruction: section.Instruction,
		Draft:       draft,
	}

	tmpl, task := l.draft, l.Tasks["draft"]
	if len([]rune(draft)) > 10 {
		tmpl, task = l.reformulate, l.Tasks["reformulate"]
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}

	system = l.System + "\n\n" + task
	if section.Instruction != "" {
		system += "\nSpecial directive: " + section.Instruction
	}
	return buf.String(), system, nil
}
