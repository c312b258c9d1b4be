package pipeline

import "voicedrive-go/errcode"

// ChannelMode mirrors the capture hardware's channel selection options.
type ChannelMode uint8

const (
	// ChannelsMonoInv is the zero value: mono on the inverted channel
	// select, matching the onboard microphone wiring.
	ChannelsMonoInv ChannelMode = iota
	ChannelsMono
	ChannelsStereo
)

// CaptureConfig is the recognized option set of the capture interface.
type CaptureConfig struct {
	SampleRate uint32
	BlockLen   int // bytes per block, fixed for the stream
	Channels   ChannelMode

	// OnBlockStart fires from the capture context every time the hardware
	// begins a new block transfer. It must not block: the capture context
	// never suspends. The completed block is the ring predecessor of cur
	// (see Ring.CompletedPredecessorOf).
	OnBlockStart func(status errcode.Code, cur *Transaction)

	// OnError reports a hardware transfer fault. It must not block.
	OnError func(status errcode.Code, cur *Transaction)
}

// Capture is the hardware boundary of the pipeline: an interrupt-driven
// producer of an infinite, non-restartable sequence of filled blocks.
// Vendor drivers and the host simulator implement it.
type Capture interface {
	Configure(cfg CaptureConfig) error
	// Start begins continuous streaming on the transaction ring at head.
	// The hardware follows ring order unconditionally from then on.
	Start(head *Transaction) error
	Stop()
}
