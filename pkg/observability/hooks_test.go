package observability

import (
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	h := NoopEngineHooks{}
	h.OnNodeAdded("root", 0, -1)
	h.OnCleared()
	h.OnStep(10, 16*time.Millisecond)
	h.OnRunStart()
	h.OnRunStop()
	h.OnDragStart("root")
	h.OnDragEnd("root")
}

type testEngineHooks struct {
	NoopEngineHooks
	steps int
}

func (h *testEngineHooks) OnStep(int, time.Duration) { h.steps++ }

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}

	custom := &testEngineHooks{}
	SetEngineHooks(custom)
	if Engine() != EngineHooks(custom) {
		t.Error("Engine() should return the registered hooks")
	}

	Engine().OnStep(1, time.Millisecond)
	if custom.steps != 1 {
		t.Errorf("custom hooks received %d step events, want 1", custom.steps)
	}

	// nil registration is ignored
	SetEngineHooks(nil)
	if Engine() != EngineHooks(custom) {
		t.Error("SetEngineHooks(nil) should keep the previous hooks")
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}
