package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"bizplan_forecast/pkg/models"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat accepts xlsx, md (or markdown) and html, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the HTTP media type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// Filename builds a download name from the project title.
func (f Format) Filename(title string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, title)
	if base == "" {
		base = "business_plan"
	}
	return base + "." + string(f)
}

// Write renders plan and res in the given format.
func Write(w io.Writer, f Format, plan models.BusinessPlanData, res *models.OperatingResults) error {
	switch f {
	case FormatXLSX:
		return WriteWorkbook(w, plan, res)
	case FormatMarkdown:
		_, err := io.WriteString(w, RenderMarkdown(plan, res))
		return err
	case FormatHTML:
		html, err := RenderHTML(plan, res)
		if err != nil {
			return err
		}
		_, err = w.Write(html)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
