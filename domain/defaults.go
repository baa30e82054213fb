package domain

// Default match settings. The rendered default config and the CLI flag
// defaults are both derived from these values.
const (
	// DefaultTop is the number of ranked candidates shown. 0 shows all.
	DefaultTop = 10

	// DefaultMinScore hides candidates scoring below it from the ranked view.
	// It never changes which candidate is the best match.
	DefaultMinScore = 0.0

	// DefaultMaxFileSizeKB skips candidate files larger than this.
	// Generated bundles and data dumps are rarely where snippets come from.
	DefaultMaxFileSizeKB = 1024

	// DefaultMaxConcurrency bounds parallel candidate reads. 0 means no limit.
	DefaultMaxConcurrency = 16

	// DefaultTimeoutSeconds bounds candidate collection.
	DefaultTimeoutSeconds = 300

	// DefaultOutputDirectory is where file reports are written,
	// relative to the working directory.
	DefaultOutputDirectory = ".srcmatch/reports"

	// DefaultLogLevel is the logrus level used when nothing else is set
	DefaultLogLevel = "warn"
)

// BoolPtr creates a pointer to a boolean value
func BoolPtr(b bool) *bool {
	return &b
}

// BoolValue safely dereferences a boolean pointer, returning defaultVal if nil
func BoolValue(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}
