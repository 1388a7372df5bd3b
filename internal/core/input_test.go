package core

import (
	"testing"
	"time"
)

func TestInputFrameClearResetsElapsed(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.Set(ActionHold)
	f.Elapsed = 20 * time.Millisecond

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionJump) || f.Has(ActionHold) {
		t.Error("Clear should drop all actions")
	}
	if f.Elapsed != 0 {
		t.Errorf("Clear should reset Elapsed, got %v", f.Elapsed)
	}
	if !clone.Has(ActionJump) || clone.Elapsed != 20*time.Millisecond {
		t.Error("Clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame has no actions")
	}
	f.Set(ActionConfirm)
	if !f.Has(ActionConfirm) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestTickDuration(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).TickDuration(); got != 20*time.Millisecond {
		t.Errorf("TickDuration() = %v", got)
	}
	if got := (RuntimeConfig{}).TickDuration(); got != time.Second/60 {
		t.Errorf("zero tick rate should fall back to 60, got %v", got)
	}
}
