package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.Mutex
	log *logrus.Logger
)

// Init configures the shared logger. Log lines go to stderr when console is
// true and are appended to logFile when it is set. An unknown level falls
// back to warn.
func Init(level, logFile string, console bool) error {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	logger.SetLevel(lvl)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	mu.Lock()
	log = logger
	mu.Unlock()
	return nil
}

// Get returns the shared logger. Before Init it logs warnings to stderr.
func Get() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// WithComponent returns an entry tagged with the component name
func WithComponent(name string) *logrus.Entry {
	return Get().WithField("component", name)
}

// Discard returns an entry that drops everything, for tests and library use
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// LevelFor maps CLI verbosity onto a logrus level name. verbose wins over
// the configured level.
func LevelFor(configured string, verbose bool) string {
	if verbose {
		return logrus.DebugLevel.String()
	}
	if configured == "" {
		return logrus.WarnLevel.String()
	}
	return configured
}
