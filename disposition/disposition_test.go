package disposition

import (
	"testing"

	"voicedrive-go/pipeline"
	"voicedrive-go/platform"
)

func lines(t *testing.T) (out *Output, goLine, stopLine *platform.SimPin) {
	t.Helper()
	goLine = &platform.SimPin{}
	stopLine = &platform.SimPin{}
	out, err := New(goLine, stopLine)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return out, goLine, stopLine
}

func TestBootState(t *testing.T) {
	out, goLine, stopLine := lines(t)
	if goLine.Get() || !stopLine.Get() {
		t.Fatalf("boot levels go=%v stop=%v, want halt", goLine.Get(), stopLine.Get())
	}
	if out.State() != pipeline.ActionHalt {
		t.Fatalf("boot State = %s, want halt", out.State())
	}
}

func TestApply(t *testing.T) {
	out, goLine, stopLine := lines(t)

	out.Apply(pipeline.ActionAdvance)
	if !goLine.Get() || stopLine.Get() {
		t.Fatalf("advance levels go=%v stop=%v", goLine.Get(), stopLine.Get())
	}
	if out.State() != pipeline.ActionAdvance {
		t.Fatalf("State = %s after advance", out.State())
	}

	out.Apply(pipeline.ActionHalt)
	if goLine.Get() || !stopLine.Get() {
		t.Fatalf("halt levels go=%v stop=%v", goLine.Get(), stopLine.Get())
	}
}

func TestApplyHoldPreservesState(t *testing.T) {
	out, goLine, stopLine := lines(t)

	out.Apply(pipeline.ActionAdvance)
	out.Apply(pipeline.ActionHold)
	if !goLine.Get() || stopLine.Get() {
		t.Fatal("hold changed the line levels")
	}
	if out.State() != pipeline.ActionAdvance {
		t.Fatalf("State = %s after hold, want advance", out.State())
	}
}

func TestApplyIdempotent(t *testing.T) {
	out, goLine, stopLine := lines(t)
	for i := 0; i < 3; i++ {
		out.Apply(pipeline.ActionAdvance)
	}
	if !goLine.Get() || stopLine.Get() {
		t.Fatal("repeated advance corrupted the line levels")
	}
}
