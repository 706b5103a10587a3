// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout engine activity: simulation steps, topology
// growth and drag interactions.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// The layout facade calls hooks as events occur:
//
//	observability.Engine().OnStep(nodeCount, elapsed)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the layout engine.
//
// Implementations must be cheap and must not block: OnStep fires once per
// simulated frame from inside the pacing loop.
type EngineHooks interface {
	// Topology events
	OnNodeAdded(id string, index, parentIndex int)
	OnCleared()

	// Simulation events
	OnStep(nodeCount int, elapsed time.Duration)
	OnRunStart()
	OnRunStop()

	// Interaction events
	OnDragStart(id string)
	OnDragEnd(id string)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnNodeAdded(string, int, int)     {}
func (NoopEngineHooks) OnCleared()                       {}
func (NoopEngineHooks) OnStep(int, time.Duration)        {}
func (NoopEngineHooks) OnRunStart()                      {}
func (NoopEngineHooks) OnRunStop()                       {}
func (NoopEngineHooks) OnDragStart(string)               {}
func (NoopEngineHooks) OnDragEnd(string)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before the engine runs.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Reset restores the no-op default hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
}
