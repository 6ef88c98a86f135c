package capi

import (
	"sync"

	"github.com/hsiuhsiu/anoncreds-go/internal/handles"
	"github.com/hsiuhsiu/anoncreds-go/pkg/anoncreds/logging"
)

// Config tunes the boundary. Zero values select the defaults.
type Config struct {
	// Logger receives a debug trace of every boundary call. Nil selects
	// logging.New(nil), which writes through slog.Default().
	Logger logging.Logger

	// MaxHandles bounds the number of live builder and product handles.
	// Calls that would exceed it fail with AllocationFailure. Non-positive
	// values select handles.DefaultCapacity.
	MaxHandles int
}

var (
	registry = handles.NewRegistry(handles.DefaultCapacity)

	loggerMu sync.RWMutex
	logger   = logging.New(nil)
)

// Configure applies cfg to the process-wide boundary state. Handles issued
// before the call stay valid.
func Configure(cfg Config) {
	l := cfg.Logger
	if l == nil {
		l = logging.New(nil)
	}
	loggerMu.Lock()
	logger = l.With("component", "anoncreds/capi")
	loggerMu.Unlock()
	registry.SetCapacity(cfg.MaxHandles)
}

func currentLogger() logging.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// LiveHandles returns the number of handles the caller still owns, builders
// and products together. Leak checks compare it before and after a scenario.
func LiveHandles() int {
	return registry.Len()
}

// LiveProducts returns the number of unreleased attribute set and value map
// handles.
func LiveProducts() int {
	return registry.LenKind(handles.KindAttributeSet) + registry.LenKind(handles.KindAttributeValueMap)
}
