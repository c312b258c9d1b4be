// Package i2ssim is a host-side capture source with real I2S completion
// semantics: it cycles the transaction ring unconditionally, fires the
// block-start callback the moment a new block begins (so the previous block
// is the completed one), and never blocks inside the callback. Sample data
// comes from a single-producer ring fed by a generator or a test.
package i2ssim

import (
	"context"
	"errors"
	"sync"

	"voicedrive-go/errcode"
	"voicedrive-go/pipeline"
	"voicedrive-go/x/sampring"
)

type Source struct {
	feed *sampring.Ring

	mu         sync.Mutex
	cfg        pipeline.CaptureConfig
	configured bool
	cancel     context.CancelFunc
	stopped    chan struct{}
}

// New builds a source reading PCM samples from feed.
func New(feed *sampring.Ring) *Source {
	return &Source{feed: feed}
}

func (s *Source) Configure(cfg pipeline.CaptureConfig) error {
	if cfg.BlockLen <= 0 || cfg.BlockLen%2 != 0 {
		return errcode.InvalidParams
	}
	if cfg.OnBlockStart == nil {
		return errors.New("i2ssim: block-start callback required")
	}
	s.mu.Lock()
	s.cfg = cfg
	s.configured = true
	s.mu.Unlock()
	return nil
}

func (s *Source) Start(head *pipeline.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured {
		return errcode.CaptureOpen
	}
	if s.cancel != nil {
		return errors.New("i2ssim: already started")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.stopped = make(chan struct{})
	go s.stream(ctx, head)
	return nil
}

func (s *Source) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	stopped := s.stopped
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		<-stopped
	}
}

// stream walks the ring forever. Pace comes from the feed: each block
// begins as soon as its first sample is available, which lets tests drive
// arbitrarily fast or slow arrival rates.
func (s *Source) stream(ctx context.Context, head *pipeline.Transaction) {
	defer close(s.stopped)

	cfg := s.cfg
	samplesPerBlock := cfg.BlockLen / 2
	staging := make([]int16, samplesPerBlock)

	cur := head
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// A new read transaction starts now; the predecessor's transfer
		// has just finished.
		cfg.OnBlockStart(errcode.OK, cur)

		got := 0
		for got < samplesPerBlock {
			n := s.feed.Read(staging[got:])
			if n == 0 {
				select {
				case <-ctx.Done():
					return
				case <-s.feed.Readable():
				}
				continue
			}
			got += n
		}

		encodeLE(staging, cur.Buf)
		cur = cur.NextInRing()
	}
}

func encodeLE(src []int16, dst []byte) {
	for i, v := range src {
		dst[2*i] = byte(v)
		dst[2*i+1] = byte(uint16(v) >> 8)
	}
}
