package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressManagerImpl implements the ProgressManager interface with a
// terminal progress bar. Nothing is drawn when the writer is not a TTY.
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	progressBar *progressbar.ProgressBar
	interactive bool
}

// NewProgressManager creates a progress manager drawing on stderr
func NewProgressManager() *ProgressManagerImpl {
	return &ProgressManagerImpl{
		writer:      os.Stderr,
		interactive: isTerminal(os.Stderr),
	}
}

// Start begins a new progress bar, finishing any previous one
func (pm *ProgressManagerImpl) Start(description string, total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Finish()
		pm.progressBar = nil
	}
	if pm.interactive && total > 0 {
		pm.progressBar = pm.createProgressBar(description, total)
	}
}

// Increment advances the progress bar by one
func (pm *ProgressManagerImpl) Increment() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Add(1)
	}
}

// Complete finishes the current progress bar
func (pm *ProgressManagerImpl) Complete() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Finish()
		pm.progressBar = nil
	}
}

// SetWriter sets the output writer and re-evaluates interactivity
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer
	pm.interactive = isTerminal(writer)
}

// IsInteractive returns true if progress bars are shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.interactive
}

func (pm *ProgressManagerImpl) createProgressBar(description string, max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(writer, "\r")
		}),
	)
}

// isTerminal reports whether w is a terminal file
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// NoOpProgressManager discards progress, used by the MCP server where
// stderr is not a terminal and stdout carries the protocol
type NoOpProgressManager struct{}

func (NoOpProgressManager) Start(string, int)   {}
func (NoOpProgressManager) Increment()          {}
func (NoOpProgressManager) Complete()           {}
func (NoOpProgressManager) SetWriter(io.Writer) {}
func (NoOpProgressManager) IsInteractive() bool { return false }
