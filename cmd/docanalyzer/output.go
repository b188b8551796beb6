package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
)

var (
	// titleStyle for section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for labels and metadata
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// headerBoxStyle frames the document metadata
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// renderExtraction prints the document header box followed by its text.
func renderExtraction(w io.Writer, doc *models.UploadedDocument, extracted *models.ExtractedText, full bool) {
	truncated := successStyle.Render("no")
	if extracted.WasTruncated {
		truncated = warnStyle.Render("yes")
	}

	header := fmt.Sprintf("%s %s\n%s %s\n%s %d  %s %s",
		dimStyle.Render("File:"), titleStyle.Render(doc.Filename),
		dimStyle.Render("Type:"), doc.ContentType,
		dimStyle.Render("Characters:"), len([]rune(extracted.FullText)),
		dimStyle.Render("Truncated:"), truncated,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(header))

	if full {
		fmt.Fprintln(w, extracted.FullText)
		return
	}
	fmt.Fprintln(w, extracted.TruncatedPreview)
}

// renderResult prints an analysis result, either as the raw HTTP payload or
// formatted per kind.
func renderResult(w io.Writer, result *models.AnalysisResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Payload())
	}

	if result.ParseError != nil {
		fmt.Fprintln(w, errorStyle.Render(result.ParseError.Message))
		fmt.Fprintln(w, dimStyle.Render("Model output:"))
		fmt.Fprintln(w, result.ParseError.Raw)
		return nil
	}

	if !result.Kind.Structured() {
		fmt.Fprintln(w, titleStyle.Render(result.Kind.ResponseKey()))
		fmt.Fprintln(w, result.Text)
		return nil
	}

	for _, key := range result.Kind.Keys() {
		fmt.Fprintln(w, titleStyle.Render(key))
		items := result.Fields[key]
		if len(items) == 0 {
			fmt.Fprintln(w, dimStyle.Render("  (none)"))
			continue
		}
		for _, item := range items {
			fmt.Fprintf(w, "  - %s\n", formatItem(item))
		}
	}
	return nil
}

func formatItem(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
