package runtime

import (
	"testing"
)

func TestGC_EnableDisable(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	gc := state.GC()
	defer gc.Enable()

	if !gc.IsEnabled() {
		t.Fatal("collector not enabled at construction")
	}

	gc.Disable()
	if gc.IsEnabled() {
		t.Error("IsEnabled = true after Disable")
	}
	gc.Disable() // repeated disable must not lose the saved knob

	gc.Enable()
	if !gc.IsEnabled() {
		t.Error("IsEnabled = false after Enable")
	}
}

func TestGC_CollectDoesNotGrowCount(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	gc := state.GC()
	gc.Disable()
	defer gc.Enable()

	// Allocation-heavy work while automatic collection is off.
	for i := 0; i < 5; i++ {
		if !state.RunString(`local t = {} for i = 1, 10000 do t[i] = tostring(i) end`) {
			t.Fatal("allocation workload failed")
		}
	}

	gc.Enable()
	before := gc.Count()
	gc.Collect()
	after := gc.Count()

	// Collection only releases memory; allow a little slack for runtime
	// bookkeeping between the two samples.
	if after > before+256 {
		t.Errorf("Count grew from %d KB to %d KB across Collect", before, after)
	}
}

func TestGC_StepCompletesCycle(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	if !state.GC().Step() {
		t.Error("Step = false, want completed cycle")
	}
	if !state.GC().StepKB(64) {
		t.Error("StepKB = false, want completed cycle")
	}
}

func TestGC_Count(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	if kb := state.GC().Count(); kb <= 0 {
		t.Errorf("Count = %d KB, want > 0", kb)
	}
}

func TestGC_TunablesReturnPrevious(t *testing.T) {
	state := New(WithRouter(NewRouter()))
	defer state.Close()

	gc := state.GC()

	if prev := gc.SetPause(200); prev != 100 {
		t.Errorf("SetPause(200) = %d, want default 100", prev)
	}
	if prev := gc.SetPause(100); prev != 200 {
		t.Errorf("SetPause(100) = %d, want 200", prev)
	}

	if prev := gc.SetStepMul(400); prev != 200 {
		t.Errorf("SetStepMul(400) = %d, want default 200", prev)
	}
	if prev := gc.SetStepMul(200); prev != 400 {
		t.Errorf("SetStepMul(200) = %d, want 400", prev)
	}
}
