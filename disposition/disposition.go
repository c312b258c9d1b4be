// Package disposition translates pipeline decisions into discrete output
// levels on two GPIO lines: a "go" line and a "stop" line, the handshake
// the drive controller polls. It keeps no buffering; the only cross-block
// state is the last applied output level.
package disposition

import (
	"voicedrive-go/hal"
	"voicedrive-go/pipeline"
)

// Output drives the go/stop line pair. Writes are plain level sets, so
// reapplying the current state is safe; nothing downstream assumes edges.
type Output struct {
	goLine   hal.GPIOPin
	stopLine hal.GPIOPin
	state    pipeline.Action
}

// New configures both lines as outputs in the halt state (stop asserted,
// go deasserted), the safe power-on default.
func New(goLine, stopLine hal.GPIOPin) (*Output, error) {
	if err := goLine.ConfigureOutput(false); err != nil {
		return nil, err
	}
	if err := stopLine.ConfigureOutput(true); err != nil {
		return nil, err
	}
	return &Output{goLine: goLine, stopLine: stopLine, state: pipeline.ActionHalt}, nil
}

// Apply sets the line pair for the given action. ActionHold changes
// nothing, preserving the currently displayed state.
func (o *Output) Apply(a pipeline.Action) {
	switch a {
	case pipeline.ActionAdvance:
		o.goLine.Set(true)
		o.stopLine.Set(false)
		o.state = a
	case pipeline.ActionHalt:
		o.goLine.Set(false)
		o.stopLine.Set(true)
		o.state = a
	}
}

// State reports the last applied (displayed) action.
func (o *Output) State() pipeline.Action { return o.state }
