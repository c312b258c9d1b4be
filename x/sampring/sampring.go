// Package sampring provides a single-producer single-consumer ring of
// 16-bit PCM samples. The producer is the sample source (microphone feed,
// tone generator), the consumer is the capture driver. Index loads and
// stores are atomic; edge channels let either side block without polling.
package sampring

import "sync/atomic"

// Ring is a single-producer, single-consumer sample ring.
// Capacity must be a power of two.
type Ring struct {
	buf  []int16
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)

	readable chan struct{} // 0 -> >0 samples edge
	writable chan struct{} // 0 -> >0 space edge
}

func New(size int) *Ring {
	if size < 2 || (size&(size-1)) != 0 {
		panic("sampring: size must be power of two >= 2")
	}
	return &Ring{
		buf:      make([]int16, size),
		mask:     uint32(size - 1),
		readable: make(chan struct{}, 1),
		writable: make(chan struct{}, 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

// Space reports how many samples the producer can write without wrapping
// onto unread data.
func (r *Ring) Space() int {
	return int(r.size() - (r.wr.Load() - r.rd.Load()))
}

// Available reports how many samples the consumer can read.
func (r *Ring) Available() int {
	return int(r.wr.Load() - r.rd.Load())
}

// Write copies as many samples from src as fit and returns the count.
// Producer side only.
func (r *Ring) Write(src []int16) (n int) {
	if len(src) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	beforeAvail := wr - rd
	space := int(r.size() - beforeAvail)
	if space <= 0 {
		return 0
	}
	if len(src) < space {
		space = len(src)
	}
	n = space

	wrIdx := wr & r.mask
	first := int(r.size() - wrIdx)
	if first > n {
		first = n
	}
	copy(r.buf[wrIdx:wrIdx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release

	// Wake the reader if we transitioned empty -> non-empty.
	if beforeAvail == 0 {
		select {
		case r.readable <- struct{}{}:
		default:
		}
	}
	return n
}

// Read copies up to len(dst) samples out and returns the count.
// Consumer side only.
func (r *Ring) Read(dst []int16) (n int) {
	if len(dst) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	avail := int(wr - rd)
	if avail <= 0 {
		return 0
	}
	if len(dst) < avail {
		avail = len(dst)
	}
	n = avail

	rdIdx := rd & r.mask
	first := int(r.size() - rdIdx)
	if first > n {
		first = n
	}
	copy(dst[:first], r.buf[rdIdx:rdIdx+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd.Store(rd + uint32(n)) // release

	// Wake the writer if we transitioned full -> non-full.
	if int(r.size()-(wr-rd)) == 0 {
		select {
		case r.writable <- struct{}{}:
		default:
		}
	}
	return n
}

// Readable signals the empty -> non-empty transition.
func (r *Ring) Readable() <-chan struct{} { return r.readable }

// Writable signals the full -> non-full transition.
func (r *Ring) Writable() <-chan struct{} { return r.writable }
