package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ludo-technologies/srcmatch/domain"
)

// OutputFormatterImpl implements the MatchOutputFormatter interface
type OutputFormatterImpl struct {
	color bool
}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WithColor enables ANSI colors in text output
func (f *OutputFormatterImpl) WithColor(enabled bool) *OutputFormatterImpl {
	f.color = enabled
	return f
}

// Format formats the match response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.MatchResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText, "":
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV([]domain.MatchResponse{*response})
	case domain.OutputFormatHTML:
		return NewHTMLFormatter().FormatMatchAsHTML(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.MatchResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}
	return f.writeString(writer, output)
}

// WriteBatch writes the formatted batch output to the writer
func (f *OutputFormatterImpl) WriteBatch(batch *domain.BatchMatchResponse, format domain.OutputFormat, writer io.Writer) error {
	var output string
	var err error

	switch format {
	case domain.OutputFormatText, "":
		output = f.formatBatchText(batch)
	case domain.OutputFormatJSON:
		output, err = EncodeJSON(batch)
	case domain.OutputFormatYAML:
		output, err = EncodeYAML(batch)
	case domain.OutputFormatCSV:
		output, err = f.formatCSV(batch.Results)
	case domain.OutputFormatHTML:
		output, err = NewHTMLFormatter().FormatBatchAsHTML(batch)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return err
	}
	return f.writeString(writer, output)
}

func (f *OutputFormatterImpl) writeString(writer io.Writer, output string) error {
	if !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	if _, err := io.WriteString(writer, output); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatText formats the response as human-readable text
func (f *OutputFormatterImpl) formatText(response *domain.MatchResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils().WithColor(f.color)

	builder.WriteString(utils.FormatMainHeader("Snippet Attribution"))
	f.writeResultText(&builder, utils, response)

	if parsedTime, err := time.Parse(time.RFC3339, response.GeneratedAt); err == nil {
		builder.WriteString(utils.FormatSectionHeader("Metadata"))
		builder.WriteString(utils.FormatLabel("Generated at", parsedTime.Format("2006-01-02 15:04:05")))
		builder.WriteString(utils.FormatLabel("Duration", utils.FormatDuration(response.DurationMs)))
	}

	return builder.String()
}

func (f *OutputFormatterImpl) formatBatchText(batch *domain.BatchMatchResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils().WithColor(f.color)

	builder.WriteString(utils.FormatMainHeader("Snippet Attribution"))
	builder.WriteString(utils.FormatLabel("Snippets", len(batch.Results)))
	builder.WriteString(utils.FormatLabel("Candidates", batch.TotalCandidates))
	builder.WriteString(utils.FormatLabel("Duration", utils.FormatDuration(batch.DurationMs)))
	builder.WriteString("\n")

	for i := range batch.Results {
		title := fmt.Sprintf("[%d] %s", i+1, batch.Results[i].Snippet.Name)
		builder.WriteString(title + "\n" + strings.Repeat("-", len(title)) + "\n")
		f.writeResultText(&builder, utils, &batch.Results[i])
	}

	return builder.String()
}

func (f *OutputFormatterImpl) writeResultText(builder *strings.Builder, utils *FormatUtils, response *domain.MatchResponse) {
	snippet := response.Snippet.Name
	if snippet == "" {
		snippet = string(response.Snippet.Source)
	}

	builder.WriteString(utils.FormatLabel("Snippet", fmt.Sprintf("%s (%d tokens)", snippet, response.SnippetTokens)))
	builder.WriteString(utils.FormatLabel("Best match", response.BestMatch))
	builder.WriteString(utils.FormatLabel("Score", fmt.Sprintf("%s (%s)",
		utils.FormatScore(response.BestScore),
		utils.FormatPercentage(response.BestScore*100))))
	builder.WriteString(utils.FormatLabel("Confidence", utils.FormatConfidence(response.BestScore)))
	builder.WriteString(utils.FormatLabel("Candidates", response.TotalCandidates))
	builder.WriteString(utils.FormatLabel("Vocabulary", response.VocabularySize))
	builder.WriteString("\n")

	if len(response.Scores) > 0 {
		showTokens := false
		for _, s := range response.Scores {
			if s.Tokens > 0 {
				showTokens = true
				break
			}
		}

		builder.WriteString(utils.FormatSectionHeader("Ranked candidates"))
		for _, s := range response.Scores {
			line := fmt.Sprintf("%4d  %s  %s  %s", s.Rank, utils.FormatScore(s.Score), utils.FormatBar(s.Score), s.ID)
			if showTokens {
				line += fmt.Sprintf(" (%d tokens)", s.Tokens)
			}
			builder.WriteString(line + "\n")
		}
		if hidden := response.TotalCandidates - len(response.Scores); hidden > 0 {
			builder.WriteString(fmt.Sprintf("      ... %d more not shown\n", hidden))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(utils.FormatWarningsSection(response.Warnings))
}

// formatCSV writes one row per ranked candidate of every response
func (f *OutputFormatterImpl) formatCSV(responses []domain.MatchResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"snippet", "rank", "candidate", "score", "tokens", "best_match"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, response := range responses {
		rows := response.Scores
		if len(rows) == 0 {
			// scores hidden, still report the winner
			rows = []domain.CandidateScore{{Rank: 1, ID: response.BestMatch, Score: response.BestScore}}
		}
		for _, s := range rows {
			row := []string{
				response.Snippet.Name,
				strconv.Itoa(s.Rank),
				s.ID,
				strconv.FormatFloat(s.Score, 'f', 6, 64),
				strconv.Itoa(s.Tokens),
				strconv.FormatBool(s.ID == response.BestMatch),
			}
			if err := writer.Write(row); err != nil {
				return "", domain.NewOutputError("failed to write CSV row", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}

	return builder.String(), nil
}
