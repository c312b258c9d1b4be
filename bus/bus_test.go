// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func expectOneOf(t *testing.T, sub *Subscription, want string) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		if got.Payload.(string) != want {
			t.Errorf("expected payload %q, got %v", want, got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func expectNoMessage(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		t.Errorf("expected no message, got %v", got.Payload)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("rover", "state"))

	conn.Publish(conn.NewMessage(T("rover", "state"), "hello", false))

	expectOneOf(t, sub, "hello")
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("config", "heartbeat"), "persist", true))

	sub := conn.Subscribe(T("config", "heartbeat"))

	expectOneOf(t, sub, "persist")
}

func TestRetainedClearedByNilPayload(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("config", "rover"), "v1", true))
	conn.Publish(conn.NewMessage(T("config", "rover"), nil, true))

	sub := conn.Subscribe(T("config", "rover"))
	expectNoMessage(t, sub)
}

func TestWildcard_SingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("a", "+", "c"))
	s2 := c.Subscribe(T("a", "+", "+"))
	s3 := c.Subscribe(T("a", "b", "+"))
	sNo := c.Subscribe(T("a", "+", "d"))

	c.Publish(b.NewMessage(T("a", "b", "c"), "m1", false))

	expectOneOf(t, s1, "m1")
	expectOneOf(t, s2, "m1")
	expectOneOf(t, s3, "m1")
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("a", "x", "y"), "m2", false))

	expectOneOf(t, s2, "m2")
	expectNoMessage(t, s1)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)
}

func TestWildcard_RetainedReplay(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	c.Publish(b.NewMessage(T("hal", "gpio", "7"), "high", true))
	c.Publish(b.NewMessage(T("hal", "gpio", "6"), "low", true))

	sub := c.Subscribe(T("hal", "gpio", "+"))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-sub.Channel():
			got[m.Payload.(string)] = true
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for retained replay")
		}
	}
	if !got["high"] || !got["low"] {
		t.Errorf("expected both retained messages, got %v", got)
	}
}

func TestDropOldestWhenFull(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("x"))
	for i := 0; i < 5; i++ {
		c.Publish(b.NewMessage(T("x"), i, false))
	}

	// Queue length 2: the two newest survive.
	expectPayload := func(want int) {
		select {
		case m := <-sub.Channel():
			if m.Payload.(int) != want {
				t.Errorf("expected %d, got %v", want, m.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout")
		}
	}
	expectPayload(3)
	expectPayload(4)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("y"))
	sub.Unsubscribe()

	// Publish after unsubscribe must not panic and must not deliver.
	c.Publish(b.NewMessage(T("y"), "late", false))

	if _, ok := <-sub.Channel(); ok {
		t.Error("expected closed channel after unsubscribe")
	}
}

func TestDisconnectClosesAll(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("a"))
	s2 := c.Subscribe(T("b"))
	c.Disconnect()

	if _, ok := <-s1.Channel(); ok {
		t.Error("s1 still open after disconnect")
	}
	if _, ok := <-s2.Channel(); ok {
		t.Error("s2 still open after disconnect")
	}
}
