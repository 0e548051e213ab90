package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// SmartParse decodes model output into v, trying in order:
// 1. standard JSON
// 2. json-repair (unquoted keys, trailing commas, code fences)
// 3. Hjson (most lenient)
func SmartParse(input string, v interface{}) error {
	input = CleanText(input)

	if err := json.Unmarshal([]byte(input), v); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	var loose interface{}
	if err := hjson.Unmarshal([]byte(input), &loose); err == nil {
		if normalized, err := json.Marshal(loose); err == nil {
			if err := json.Unmarshal(normalized, v); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("could not parse structured output: all parsing strategies failed")
}

// CleanText strips an outer code fence and surrounding whitespace so the
// text can be stored as plain Markdown.
func CleanText(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		return cleaned
	}

	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimPrefix(cleaned, "```")
	// drop the language tag of the opening fence
	if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 && !strings.Contains(cleaned[:nl], " ") {
		cleaned = cleaned[nl+1:]
	}
	return strings.TrimSpace(cleaned)
}

// SWOT is the structured answer of the swot section.
type SWOT struct {
	Strengths     string `json:"strengths"`
	Weaknesses    string `json:"weaknesses"`
	Opportunities string `json:"opportunities"`
	Threats       string `json:"threats"`
}

// ParseSWOT reads a SWOT object from model output. List values are joined
// into bullet lines.
func ParseSWOT(input string) (SWOT, error) {
	var raw map[string]interface{}
	if err := SmartParse(input, &raw); err != nil {
		return SWOT{}, err
	}

	lookup := func(key string) string {
		for k, v := range raw {
			if strings.EqualFold(k, key) {
				return flattenText(v)
			}
		}
		return ""
	}

	s := SWOT{
		Strengths:     lookup("strengths"),
		Weaknesses:    lookup("weaknesses"),
		Opportunities: lookup("opportunities"),
		Threats:       lookup("threats"),
	}
	if s == (SWOT{}) {
		return SWOT{}, fmt.Errorf("swot output has none of the expected keys")
	}
	return s, nil
}

func flattenText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		lines := make([]string, 0, len(t))
		for _, item := range t {
			if s := flattenText(item); s != "" {
				lines = append(lines, "- "+s)
			}
		}
		return strings.Join(lines, "\n")
	case nil:
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
