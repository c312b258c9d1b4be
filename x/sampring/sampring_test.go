package sampring

import (
	"testing"
	"time"
)

func TestWriteReadRoundTrip(t *testing.T) {
	r := New(8)

	src := []int16{1, -2, 3, -4, 5}
	if n := r.Write(src); n != 5 {
		t.Fatalf("Write = %d, want 5", n)
	}
	if a := r.Available(); a != 5 {
		t.Fatalf("Available = %d, want 5", a)
	}

	dst := make([]int16, 5)
	if n := r.Read(dst); n != 5 {
		t.Fatalf("Read = %d, want 5", n)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], src[i])
		}
	}
}

func TestWrapAround(t *testing.T) {
	r := New(4)

	// Advance indices past the wrap point.
	tmp := make([]int16, 3)
	for i := 0; i < 5; i++ {
		if n := r.Write([]int16{int16(3 * i), int16(3*i + 1), int16(3*i + 2)}); n != 3 {
			t.Fatalf("iter %d: Write = %d, want 3", i, n)
		}
		if n := r.Read(tmp); n != 3 {
			t.Fatalf("iter %d: Read = %d, want 3", i, n)
		}
		if tmp[0] != int16(3*i) || tmp[2] != int16(3*i+2) {
			t.Fatalf("iter %d: got %v", i, tmp)
		}
	}
}

func TestWriteHonoursSpace(t *testing.T) {
	r := New(4)
	if n := r.Write(make([]int16, 10)); n != 4 {
		t.Fatalf("Write = %d, want 4", n)
	}
	if n := r.Write([]int16{9}); n != 0 {
		t.Fatalf("Write into full ring = %d, want 0", n)
	}
}

func TestReadableEdge(t *testing.T) {
	r := New(8)

	select {
	case <-r.Readable():
		t.Fatal("readable edge fired on empty ring")
	default:
	}

	r.Write([]int16{42})

	select {
	case <-r.Readable():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("readable edge not signalled")
	}
}

func TestWritableEdge(t *testing.T) {
	r := New(4)
	r.Write(make([]int16, 4)) // fill

	dst := make([]int16, 2)
	r.Read(dst)

	select {
	case <-r.Writable():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("writable edge not signalled")
	}
}

func TestConcurrentStream(t *testing.T) {
	r := New(64)
	const total = 10000

	done := make(chan struct{})
	go func() {
		defer close(done)
		next := int16(0)
		dst := make([]int16, 16)
		for seen := 0; seen < total; {
			n := r.Read(dst)
			if n == 0 {
				select {
				case <-r.Readable():
				case <-time.After(time.Second):
					t.Error("reader starved")
					return
				}
				continue
			}
			for _, v := range dst[:n] {
				if v != next {
					t.Errorf("out of order: got %d, want %d", v, next)
					return
				}
				next++
			}
			seen += n
		}
	}()

	v := int16(0)
	for sent := 0; sent < total; {
		n := r.Write([]int16{v})
		if n == 0 {
			select {
			case <-r.Writable():
			case <-time.After(time.Second):
				t.Fatal("writer starved")
			}
			continue
		}
		v++
		sent++
	}
	<-done
}
