package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/srcmatch/domain"
	"gopkg.in/yaml.v3"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	LabelWidth     = 18
	SectionPadding = 2
	BarWidth       = 20
)

// ANSI color codes
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
	ColorCyan   = "\x1b[36m"
	ColorBold   = "\x1b[1m"
)

// Confidence buckets a cosine score for display
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
	ConfidenceNone   Confidence = "None"
)

// Score thresholds for the confidence buckets
const (
	HighConfidenceScore   = 0.5
	MediumConfidenceScore = 0.2
)

// ConfidenceOf buckets score
func ConfidenceOf(score float64) Confidence {
	switch {
	case score >= HighConfidenceScore:
		return ConfidenceHigh
	case score >= MediumConfidenceScore:
		return ConfidenceMedium
	case score > 0:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// FormatUtils provides shared formatting utilities
type FormatUtils struct {
	color bool
}

// NewFormatUtils creates a new format utilities instance without colors
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// WithColor enables ANSI colors
func (f *FormatUtils) WithColor(enabled bool) *FormatUtils {
	f.color = enabled
	return f
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(f.colorize(ColorBold, title) + "\n")
	builder.WriteString(strings.Repeat("=", HeaderWidth) + "\n\n")
	return builder.String()
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(title) + "\n")
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	return builder.String()
}

// FormatLabel creates a label padded to LabelWidth
func (f *FormatUtils) FormatLabel(label string, value interface{}) string {
	return fmt.Sprintf("%s%-*s %v\n", strings.Repeat(" ", SectionPadding), LabelWidth, label+":", value)
}

// FormatScore formats a cosine score with four decimals
func (f *FormatUtils) FormatScore(score float64) string {
	return fmt.Sprintf("%.4f", score)
}

// FormatPercentage formats a percentage value consistently
func (f *FormatUtils) FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatDuration formats duration in milliseconds consistently
func (f *FormatUtils) FormatDuration(durationMs int64) string {
	return fmt.Sprintf("%dms", durationMs)
}

// FormatBar renders score as a fixed width bar
func (f *FormatUtils) FormatBar(score float64) string {
	filled := int(score*BarWidth + 0.5)
	if filled > BarWidth {
		filled = BarWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", BarWidth-filled)
}

// GetConfidenceColor returns the color of a confidence bucket
func (f *FormatUtils) GetConfidenceColor(c Confidence) string {
	switch c {
	case ConfidenceHigh:
		return ColorGreen
	case ConfidenceMedium:
		return ColorYellow
	case ConfidenceLow, ConfidenceNone:
		return ColorRed
	default:
		return ColorReset
	}
}

// FormatConfidence formats the confidence of score, colored when enabled
func (f *FormatUtils) FormatConfidence(score float64) string {
	c := ConfidenceOf(score)
	return f.colorize(f.GetConfidenceColor(c), string(c))
}

// FormatTableHeader creates a table header with consistent formatting
func (f *FormatUtils) FormatTableHeader(columns ...string) string {
	header := strings.Join(columns, "  ")
	separator := strings.Repeat("-", len(header))
	return header + "\n" + separator + "\n"
}

// FormatWarningsSection creates a standardized warnings section
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("Warnings"))
	for _, warning := range warnings {
		builder.WriteString(fmt.Sprintf("%s%s %s\n", strings.Repeat(" ", SectionPadding), f.colorize(ColorYellow, "!"), warning))
	}
	builder.WriteString("\n")
	return builder.String()
}

func (f *FormatUtils) colorize(color, s string) string {
	if !f.color {
		return s
	}
	return color + s + ColorReset
}
