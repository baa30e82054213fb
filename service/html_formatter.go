package service

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ludo-technologies/srcmatch/domain"
)

// Colors of the confidence buckets in HTML reports
const (
	htmlColorHigh   = "#0CCE6B"
	htmlColorMedium = "#FFA500"
	htmlColorLow    = "#FF5722"
	htmlColorNone   = "#9E9E9E"
)

// HTMLFormatterImpl renders match results as a standalone HTML page
type HTMLFormatterImpl struct {
	tmpl *template.Template
}

// NewHTMLFormatter creates a new HTML formatter service
func NewHTMLFormatter() *HTMLFormatterImpl {
	return &HTMLFormatterImpl{
		tmpl: template.Must(template.New("html_report").Parse(htmlReportTemplate)),
	}
}

// HTMLReportData is the root value of the report template
type HTMLReportData struct {
	Title           string
	TotalCandidates int
	GeneratedAt     string
	Version         string
	DurationMs      int64
	Results         []HTMLResultData
}

// HTMLResultData describes one snippet in the report
type HTMLResultData struct {
	Name           string
	SnippetTokens  int
	VocabularySize int
	BestMatch      string
	BestScore      float64
	Percent        float64
	Confidence     Confidence
	Color          string
	Warnings       []string
	ShowTokens     bool
	Rows           []HTMLRowData
}

// HTMLRowData is one ranked candidate
type HTMLRowData struct {
	Rank    int
	ID      string
	Score   float64
	Percent float64
	Color   string
	Tokens  int
	Winner  bool
}

// ConfidenceColor returns the report color of score
func (f *HTMLFormatterImpl) ConfidenceColor(score float64) string {
	switch ConfidenceOf(score) {
	case ConfidenceHigh:
		return htmlColorHigh
	case ConfidenceMedium:
		return htmlColorMedium
	case ConfidenceLow:
		return htmlColorLow
	default:
		return htmlColorNone
	}
}

// FormatMatchAsHTML renders a single match
func (f *HTMLFormatterImpl) FormatMatchAsHTML(response *domain.MatchResponse) (string, error) {
	if response == nil {
		return "", fmt.Errorf("response cannot be nil")
	}

	data := HTMLReportData{
		Title:           response.Snippet.Name,
		TotalCandidates: response.TotalCandidates,
		GeneratedAt:     response.GeneratedAt,
		Version:         response.Version,
		DurationMs:      response.DurationMs,
		Results:         []HTMLResultData{f.resultData(response)},
	}
	return f.render(data)
}

// FormatBatchAsHTML renders several matches on one page
func (f *HTMLFormatterImpl) FormatBatchAsHTML(batch *domain.BatchMatchResponse) (string, error) {
	if batch == nil {
		return "", fmt.Errorf("response cannot be nil")
	}

	data := HTMLReportData{
		Title:           fmt.Sprintf("%d snippets", len(batch.Results)),
		TotalCandidates: batch.TotalCandidates,
		GeneratedAt:     batch.GeneratedAt,
		Version:         batch.Version,
		DurationMs:      batch.DurationMs,
		Results:         make([]HTMLResultData, len(batch.Results)),
	}
	for i := range batch.Results {
		data.Results[i] = f.resultData(&batch.Results[i])
	}
	return f.render(data)
}

func (f *HTMLFormatterImpl) resultData(response *domain.MatchResponse) HTMLResultData {
	result := HTMLResultData{
		Name:           response.Snippet.Name,
		SnippetTokens:  response.SnippetTokens,
		VocabularySize: response.VocabularySize,
		BestMatch:      response.BestMatch,
		BestScore:      response.BestScore,
		Percent:        response.BestScore * 100,
		Confidence:     ConfidenceOf(response.BestScore),
		Color:          f.ConfidenceColor(response.BestScore),
		Warnings:       response.Warnings,
		Rows:           make([]HTMLRowData, len(response.Scores)),
	}

	for i, s := range response.Scores {
		if s.Tokens > 0 {
			result.ShowTokens = true
		}
		result.Rows[i] = HTMLRowData{
			Rank:    s.Rank,
			ID:      s.ID,
			Score:   s.Score,
			Percent: s.Percent(),
			Color:   f.ConfidenceColor(s.Score),
			Tokens:  s.Tokens,
			Winner:  s.ID == response.BestMatch,
		}
	}
	return result
}

func (f *HTMLFormatterImpl) render(data HTMLReportData) (string, error) {
	var buf strings.Builder
	if err := f.tmpl.Execute(&buf, data); err != nil {
		return "", domain.NewOutputError("failed to execute HTML template", err)
	}
	return buf.String(), nil
}
