package observability

import (
	"context"
	"testing"
	"time"
)

type testEditorHooks struct {
	gestures int
}

func (h *testEditorHooks) OnGesture(context.Context, string, string)              { h.gestures++ }
func (h *testEditorHooks) OnMutation(context.Context, string, int, int, int, int) {}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEditorHooks{}
	e.OnGesture(ctx, "connect", "oneway")
	e.OnMutation(ctx, "connect", 0, 1, 0, 0)

	s := NoopStorageHooks{}
	s.OnLoad(ctx, "file", "demo", time.Second, nil)
	s.OnSave(ctx, "mongo", "demo", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Editor().(NoopEditorHooks); !ok {
		t.Error("Editor() should return NoopEditorHooks by default")
	}
	if _, ok := Storage().(NoopStorageHooks); !ok {
		t.Error("Storage() should return NoopStorageHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	custom := &testEditorHooks{}
	SetEditorHooks(custom)
	Editor().OnGesture(context.Background(), "connect", "oneway")
	if custom.gestures != 1 {
		t.Errorf("gestures = %d, want 1", custom.gestures)
	}

	// nil registration keeps the current hooks.
	SetEditorHooks(nil)
	if Editor() != custom {
		t.Error("nil registration replaced hooks")
	}
}
