package config

import (
	"sync"

	"github.com/spf13/pflag"
)

// FlagTracker records which command line flags the user set explicitly, so
// configuration file values are only overridden by deliberate choices.
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates an empty tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{
		flags: make(map[string]bool),
	}
}

// NewFlagTrackerFromFlagSet records every flag that was changed on fs
func NewFlagTrackerFromFlagSet(fs *pflag.FlagSet) *FlagTracker {
	ft := NewFlagTracker()
	if fs == nil {
		return ft
	}
	fs.Visit(func(f *pflag.Flag) {
		ft.flags[f.Name] = true
	})
	return ft
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(flagName string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags[flagName] = true
}

// WasSet checks if a flag was explicitly set
func (ft *FlagTracker) WasSet(flagName string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[flagName]
}

// AnySet reports whether at least one of the flags was set
func (ft *FlagTracker) AnySet(flagNames ...string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	for _, name := range flagNames {
		if ft.flags[name] {
			return true
		}
	}
	return false
}

// GetAll returns a copy of all set flags
func (ft *FlagTracker) GetAll() map[string]bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	result := make(map[string]bool, len(ft.flags))
	for k, v := range ft.flags {
		result[k] = v
	}
	return result
}

// Merge returns override when flagName was set explicitly, base otherwise
func Merge[T any](ft *FlagTracker, base, override T, flagName string) T {
	if ft != nil && ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeSlice is Merge for slices; an explicitly set but empty override keeps base
func MergeSlice[T any](ft *FlagTracker, base, override []T, flagName string) []T {
	if ft != nil && ft.WasSet(flagName) && len(override) > 0 {
		return override
	}
	return base
}
