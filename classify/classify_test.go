package classify

import (
	"testing"

	"voicedrive-go/errcode"
)

func TestQ15ToFloat32(t *testing.T) {
	src := []int16{0, 16384, -16384, 32767, -32768}
	dst := make([]float32, len(src))
	Q15ToFloat32(src, dst)

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768, -1}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	// Short destination converts only what fits.
	short := make([]float32, 2)
	Q15ToFloat32(src, short)
	if short[0] != 0 || short[1] != 0.5 {
		t.Fatalf("short dst = %v", short)
	}
}

func TestWindowLE(t *testing.T) {
	// Samples 0x4000 (0.5) and 0x8000 (-1), little endian.
	raw := []byte{0x00, 0x40, 0x00, 0x80}
	sig := WindowLE(raw)
	if sig.TotalLength != 2 {
		t.Fatalf("TotalLength = %d, want 2", sig.TotalLength)
	}

	out := make([]float32, 2)
	if err := sig.GetData(0, 2, out); err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if out[0] != 0.5 || out[1] != -1 {
		t.Fatalf("GetData = %v, want [0.5 -1]", out)
	}

	// Offset windows read the same bytes.
	one := make([]float32, 1)
	if err := sig.GetData(1, 1, one); err != nil {
		t.Fatalf("GetData offset: %v", err)
	}
	if one[0] != -1 {
		t.Fatalf("GetData(1,1) = %v, want -1", one[0])
	}
}

func TestWindowLEBounds(t *testing.T) {
	sig := WindowLE(make([]byte, 8)) // 4 samples
	out := make([]float32, 8)
	cases := []struct{ offset, length, outLen int }{
		{0, 5, 8},  // past the end
		{4, 1, 8},  // offset at the end
		{-1, 1, 8}, // negative offset
		{0, -1, 8}, // negative length
		{0, 4, 2},  // destination too small
	}
	for _, tc := range cases {
		if err := sig.GetData(tc.offset, tc.length, out[:tc.outLen]); errcode.Of(err) != errcode.InvalidParams {
			t.Fatalf("GetData(%d, %d, len %d) err = %v, want invalid_params", tc.offset, tc.length, tc.outLen, err)
		}
	}
}

func TestScriptedSequence(t *testing.T) {
	s := &Scripted{
		Input: 4,
		Results: []Result{
			{Scores: []Score{{Label: "go", Value: 0.9}}},
			{Scores: []Score{{Label: "stop", Value: 0.8}}},
		},
	}
	if s.InputLength() != 4 {
		t.Fatalf("InputLength = %d", s.InputLength())
	}

	r1, err := s.Classify(Signal{})
	if err != nil || r1.Scores[0].Label != "go" {
		t.Fatalf("first result = %v, %v", r1, err)
	}
	r2, err := s.Classify(Signal{})
	if err != nil || r2.Scores[0].Label != "stop" {
		t.Fatalf("second result = %v, %v", r2, err)
	}

	// Script exhausted without Loop: hard failure.
	if _, err := s.Classify(Signal{}); errcode.Of(err) != errcode.ClassifierFault {
		t.Fatalf("exhausted err = %v, want classifier_fault", err)
	}
	if s.Calls() != 3 {
		t.Fatalf("Calls = %d, want 3", s.Calls())
	}
}

func TestScriptedLoop(t *testing.T) {
	s := &Scripted{Input: 4, Loop: true, Results: []Result{{Scores: []Score{{Label: "go", Value: 0.9}}}}}
	for i := 0; i < 5; i++ {
		if _, err := s.Classify(Signal{}); err != nil {
			t.Fatalf("loop call %d: %v", i, err)
		}
	}
	if s.Calls() != 5 {
		t.Fatalf("Calls = %d, want 5", s.Calls())
	}
}
