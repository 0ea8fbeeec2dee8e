// Package render produces the daily HTML report artifact.
package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"VideosCurator/internal/domain"
	"VideosCurator/internal/ports"
)

//go:embed daily_report.html.tmpl
var reportTemplate string

// HTMLRenderer renders domain.Report into a standalone HTML page.
type HTMLRenderer struct {
	tmpl *template.Template
}

var _ ports.ReportRenderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer parses the embedded template once.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("daily_report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render implements ports.ReportRenderer.
func (r *HTMLRenderer) Render(w io.Writer, report domain.Report) error {
	if err := r.tmpl.Execute(w, report); err != nil {
		return fmt.Errorf("execute report template: %w", err)
	}
	return nil
}
