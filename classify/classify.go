// Package classify defines the boundary to the keyword inference routine.
// The routine itself is opaque to the pipeline: it receives a lazy float
// window over one block of raw Q15 samples and returns per-label confidence
// scores. Interpreting those scores is the pipeline's job, not the
// classifier's.
package classify

import (
	"time"

	"voicedrive-go/errcode"
)

// Signal describes one block of raw samples. GetData converts the requested
// window to floating point on demand, so the classifier pulls only the
// slices it needs.
type Signal struct {
	TotalLength int // samples
	GetData     func(offset, length int, out []float32) error
}

// Score is one label's confidence, in [0.0, 1.0].
type Score struct {
	Label string
	Value float32
}

// Timing is per-invocation metadata reported by the classifier.
type Timing struct {
	DSP            time.Duration
	Classification time.Duration
}

// Result is the classifier output for one block.
type Result struct {
	Scores []Score
	Timing Timing
}

// Classifier is the opaque decision function. A non-nil error from Classify
// is a hard failure (corrupted model or memory fault); the pipeline treats
// it as fatal and does not retry.
type Classifier interface {
	// InputLength is the exact window length, in samples, the classifier
	// requires. Checked against the capture block length once at startup.
	InputLength() int
	Classify(sig Signal) (Result, error)
}

// Q15ToFloat32 converts Q15 fixed-point samples to float32 in [-1, 1).
func Q15ToFloat32(src []int16, dst []float32) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = float32(src[i]) / 32768
	}
}

// WindowLE builds a Signal over a little-endian Q15 byte block, the wire
// layout the capture hardware delivers.
func WindowLE(raw []byte) Signal {
	total := len(raw) / 2
	return Signal{
		TotalLength: total,
		GetData: func(offset, length int, out []float32) error {
			if offset < 0 || length < 0 || offset+length > total || len(out) < length {
				return errcode.InvalidParams
			}
			for i := 0; i < length; i++ {
				j := 2 * (offset + i)
				s := int16(uint16(raw[j]) | uint16(raw[j+1])<<8)
				out[i] = float32(s) / 32768
			}
			return nil
		},
	}
}
