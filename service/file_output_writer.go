package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/srcmatch/domain"
)

// FileOutputWriter writes reports to files or provided writers and optionally opens HTML in a browser.
type FileOutputWriter struct {
	status io.Writer // where to print status messages (typically stderr)
	open   func(url string) error
}

// NewFileOutputWriter creates a new FileOutputWriter.
func NewFileOutputWriter(status io.Writer) *FileOutputWriter {
	if status == nil {
		status = os.Stderr
	}
	return &FileOutputWriter{status: status, open: OpenBrowser}
}

// WithOpener replaces the browser opener
func (w *FileOutputWriter) WithOpener(open func(url string) error) *FileOutputWriter {
	w.open = open
	return w
}

// Write implements domain.ReportWriter.
func (w *FileOutputWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error {
	if outputPath == "" {
		if err := writeFunc(writer); err != nil {
			return domain.NewOutputError("failed to write output", err)
		}
		return nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to create output directory: %s", dir), err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create output file: %s", outputPath), err)
	}
	if err := writeFunc(file); err != nil {
		file.Close()
		return domain.NewOutputError("failed to write output", err)
	}
	if err := file.Close(); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to close output file: %s", outputPath), err)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		absPath = outputPath
	}

	if format != domain.OutputFormatHTML {
		fmt.Fprintf(w.status, "%s report generated: %s\n", strings.ToUpper(string(format)), absPath)
		return nil
	}

	if noOpen || w.open == nil {
		fmt.Fprintf(w.status, "HTML report generated: %s\n", absPath)
		return nil
	}
	if err := w.open("file://" + filepath.ToSlash(absPath)); err != nil {
		fmt.Fprintf(w.status, "Warning: Could not open browser: %v\n", err)
		fmt.Fprintf(w.status, "HTML report generated: %s\n", absPath)
		return nil
	}
	fmt.Fprintf(w.status, "HTML report generated and opened: %s\n", absPath)
	return nil
}

// ReportFileName returns a timestamped report name such as
// match_20250101_120000.json
func ReportFileName(command string, format domain.OutputFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", command, now.Format("20060102_150405"), format)
}

// ReportPath joins dir and a timestamped report name. An empty dir falls
// back to the default report directory under the working directory.
func ReportPath(dir, command string, format domain.OutputFormat, now time.Time) string {
	if dir == "" {
		dir = domain.DefaultOutputDirectory
		if cwd, err := os.Getwd(); err == nil {
			dir = filepath.Join(cwd, domain.DefaultOutputDirectory)
		}
	}
	return filepath.Join(dir, ReportFileName(command, format, now))
}
