package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"bizplan_forecast/pkg/models"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 1100px; margin: 2em auto; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
th { background: #1f4e78; color: #fff; }
</style>
</head>
<body>
`

// RenderHTML converts the Markdown report into a standalone HTML page.
func RenderHTML(plan models.BusinessPlanData, res *models.OperatingResults) ([]byte, error) {
	src := RenderMarkdown(plan, res)

	var body bytes.Buffer
	if err := markdown.Convert([]byte(src), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	title := plan.ProjectTitle
	if title == "" {
		title = "Business plan"
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, htmlHead, html.EscapeString(title))
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}
