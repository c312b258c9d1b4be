// Package pipeline implements the triple-buffered streaming engine between
// the capture hardware and the actuation outputs. A fixed ring of N
// transactions cycles through two ownership lists: capture-pending (waiting
// for or being scheduled into the hardware) and ready (capture complete,
// awaiting classification). A transaction in neither list is checked out:
// the hardware is writing it or the worker is reading it. Moving a
// transaction between lists is the only synchronization of buffer contents.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"voicedrive-go/classify"
	"voicedrive-go/errcode"
)

// Actuator applies a decided output state. Apply must be idempotent:
// repeated writes of the same state are safe and level-triggered.
type Actuator interface {
	Apply(a Action)
}

// Event is emitted after every processed block, for diagnostics only.
type Event struct {
	Seq      uint32
	Decision Decision
	Scores   []classify.Score
	Timing   classify.Timing
}

// Config carries the stream geometry and the decision policy.
type Config struct {
	Buffers    int         // transaction count, default 3
	BlockLen   int         // bytes per block, default 11200
	SampleRate uint32      // default 16000
	Channels   ChannelMode // default ChannelsMonoInv

	// Policy defaults to DefaultPolicy when it has no rules.
	Policy Policy

	// Emit, when set, receives one Event per processed block. It is called
	// from the worker context and must not block for long.
	Emit func(Event)
}

const (
	DefaultBuffers    = 3
	DefaultBlockLen   = 11200
	DefaultSampleRate = 16000
)

func (c *Config) applyDefaults() {
	if c.Buffers == 0 {
		c.Buffers = DefaultBuffers
	}
	if c.BlockLen == 0 {
		c.BlockLen = DefaultBlockLen
	}
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if len(c.Policy.Rules) == 0 {
		c.Policy = DefaultPolicy()
	}
}

// Pipeline is the process-wide streaming context: ring, ownership lists,
// worker signal and the stage collaborators. Construct once at startup.
type Pipeline struct {
	cfg Config

	ring           *Ring
	capturePending List
	ready          List
	mu             sync.Mutex // serializes list mutation across both contexts

	// inFlight is the transaction the hardware is currently writing;
	// active is the one the worker is currently reading. Both are nil-able
	// and guarded by mu.
	inFlight *Transaction
	active   *Transaction
	primed   bool // first block-start seen; before that there is no completed predecessor

	sig chan struct{} // counting wake-up signal, posted from the capture context

	capture Capture
	cls     classify.Classifier
	act     Actuator

	errC chan error // external error-notification hook; no in-tree producer
	done chan struct{}
	err  error

	overruns     atomic.Uint32
	transferErrs atomic.Uint32
	sigDrops     atomic.Uint32
}

// New builds the pipeline and performs the boot-time geometry check: the
// classifier's window length must exactly match the capture block. Any
// mismatch is a configuration fault and refuses to start, never a runtime
// branch.
func New(cfg Config, capture Capture, cls classify.Classifier, act Actuator) (*Pipeline, error) {
	cfg.applyDefaults()

	if capture == nil || cls == nil || act == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "pipeline", Msg: "missing stage collaborator"}
	}
	if cls.InputLength()*2 != cfg.BlockLen {
		return nil, &errcode.E{C: errcode.BlockMismatch, Op: "pipeline",
			Msg: "classifier window does not match capture block length"}
	}

	ring, err := NewRing(cfg.Buffers, cfg.BlockLen)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:     cfg,
		ring:    ring,
		sig:     make(chan struct{}, cfg.Buffers),
		capture: capture,
		cls:     cls,
		act:     act,
		errC:    make(chan error, 1),
		done:    make(chan struct{}),
	}

	// Every transaction starts its life waiting for capture.
	for i := 0; i < ring.Len(); i++ {
		p.capturePending.Put(ring.At(i))
	}
	return p, nil
}

// Start configures and starts the capture stream and launches the worker.
// The worker runs until ctx is cancelled or the classifier reports a hard
// failure; observe the outcome through Wait.
func (p *Pipeline) Start(ctx context.Context) error {
	err := p.capture.Configure(CaptureConfig{
		SampleRate:   p.cfg.SampleRate,
		BlockLen:     p.cfg.BlockLen,
		Channels:     p.cfg.Channels,
		OnBlockStart: p.onBlockStart,
		OnError:      p.onTransferError,
	})
	if err != nil {
		return &errcode.E{C: errcode.CaptureOpen, Op: "configure", Err: err}
	}
	if err := p.capture.Start(p.ring.Head()); err != nil {
		return &errcode.E{C: errcode.CaptureOpen, Op: "start", Err: err}
	}
	go p.run(ctx)
	return nil
}

// Wait blocks until the pipeline dies: worker exit (fatal classifier
// failure or context cancellation) or an error injected via NotifyError.
// This is the supervisory suspension point; it performs no steady-state
// work.
func (p *Pipeline) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		p.capture.Stop()
		return ctx.Err()
	case err := <-p.errC:
		p.capture.Stop()
		return err
	case <-p.done:
		p.capture.Stop()
		return p.err
	}
}

// NotifyError feeds the supervisory error hook. No capture or processing
// path posts it in-tree; the hook exists for platforms that wire hardware
// fault lines into it.
func (p *Pipeline) NotifyError(err error) {
	select {
	case p.errC <- err:
	default:
	}
}

// Overruns counts completed blocks dropped because the hardware lapped the
// worker.
func (p *Pipeline) Overruns() uint32 { return p.overruns.Load() }

// TransferErrors counts absorbed hardware transfer faults.
func (p *Pipeline) TransferErrors() uint32 { return p.transferErrs.Load() }

// Depths reports the current list occupancy (capture-pending, ready).
func (p *Pipeline) Depths() (capturePending, ready int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capturePending.Len(), p.ready.Len()
}

// onBlockStart runs in the capture context. It never blocks: list moves
// happen under a mutex held only for pointer swaps, and the worker signal
// is fire-and-forget.
func (p *Pipeline) onBlockStart(status errcode.Code, cur *Transaction) {
	if status != errcode.OK {
		p.onTransferError(status, cur)
		return
	}

	p.mu.Lock()

	// Check the new in-flight block out of whichever list still owns it.
	switch cur.Owner() {
	case &p.capturePending:
		p.capturePending.Remove(cur)
	case &p.ready:
		// The hardware lapped the worker and is about to overwrite the
		// oldest completed block. Drop it rather than hand out torn data;
		// capture is hardware-paced and cannot be held back.
		p.ready.Remove(cur)
		p.overruns.Add(1)
	default:
		if cur == p.active {
			// Worst-case lap: the worker still holds this buffer. The
			// descriptor stays checked out; only the data is at risk.
			p.overruns.Add(1)
		}
	}

	var completed *Transaction
	if p.primed {
		completed = p.ring.CompletedPredecessorOf(cur)
	} else {
		// Startup transient: the first block has no completed predecessor.
		p.primed = true
	}
	p.inFlight = cur

	if completed != nil && completed.Owner() == nil && completed != p.active {
		p.ready.Put(completed)
		p.mu.Unlock()
		p.postSignal()
		return
	}
	p.mu.Unlock()
}

// onTransferError runs in the capture context. Transfer glitches are
// absorbed by design: continuous streaming outranks strict propagation
// here, so the fault is counted and the stream keeps going.
func (p *Pipeline) onTransferError(_ errcode.Code, _ *Transaction) {
	p.transferErrs.Add(1)
}

func (p *Pipeline) postSignal() {
	select {
	case p.sig <- struct{}{}:
	default:
		// The worker already has enough wake-ups queued to drain the
		// ready list; losing a surplus signal is harmless.
		p.sigDrops.Add(1)
	}
}

// run is the single worker: wait for signal, take the oldest ready block,
// classify, actuate, recycle. Its only suspension point is the signal wait.
func (p *Pipeline) run(ctx context.Context) {
	defer close(p.done)

	var seq uint32
	for {
		select {
		case <-ctx.Done():
			p.err = ctx.Err()
			return
		case <-p.sig:
		}

		p.mu.Lock()
		t := p.ready.RemoveHead()
		p.active = t
		p.mu.Unlock()
		if t == nil {
			// Signal outran the list (overrun drop); nothing to do.
			continue
		}

		res, err := p.cls.Classify(classify.WindowLE(t.Buf[:t.Size]))
		if err != nil {
			// A classification-engine failure means a corrupted model or
			// memory fault; continuing would act on garbage. Fatal.
			p.err = &errcode.E{C: errcode.ClassifierFault, Op: "classify", Err: err}
			return
		}

		d := p.cfg.Policy.Decide(res)
		p.act.Apply(d.Action)

		seq++
		if p.cfg.Emit != nil {
			p.cfg.Emit(Event{Seq: seq, Decision: d, Scores: res.Scores, Timing: res.Timing})
		}

		p.mu.Lock()
		p.active = nil
		p.capturePending.Put(t)
		p.mu.Unlock()
	}
}
