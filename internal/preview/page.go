package preview

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed page.html
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// PageData parameterizes the preview page with the configured default limits.
type PageData struct {
	MaxChars int
	MaxLines int
}

// RenderPage returns the preview UI as a complete HTML document.
func RenderPage(data PageData) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render preview page: %w", err)
	}
	return buf.String(), nil
}
