package service

import (
	"github.com/ludo-technologies/srcmatch/domain"
)

// FormatFlags holds the mutually exclusive output format switches of the CLI
type FormatFlags struct {
	HTML bool
	JSON bool
	CSV  bool
	YAML bool
}

// OutputFormatResolver resolves the output format from flags and configuration.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Resolve returns the format selected by flags. At most one flag may be set.
// Without flags the configured format is used, and text when that is empty.
func (r *OutputFormatResolver) Resolve(flags FormatFlags, configured string) (domain.OutputFormat, error) {
	var selected []domain.OutputFormat
	if flags.HTML {
		selected = append(selected, domain.OutputFormatHTML)
	}
	if flags.JSON {
		selected = append(selected, domain.OutputFormatJSON)
	}
	if flags.CSV {
		selected = append(selected, domain.OutputFormatCSV)
	}
	if flags.YAML {
		selected = append(selected, domain.OutputFormatYAML)
	}

	switch len(selected) {
	case 0:
		return domain.ParseOutputFormat(configured)
	case 1:
		return selected[0], nil
	default:
		return "", domain.NewInvalidInputError("only one output format flag can be specified", nil)
	}
}
