package config

import (
	"context"
	"testing"
	"time"

	"voicedrive-go/bus"
)

func TestPublishesRetainedSections(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("config")

	s := NewService("pilot")
	s.Start(context.Background(), conn)

	// Retained messages survive until subscription, so subscribing after a
	// short settle is enough.
	sub := b.NewConnection("test").Subscribe(bus.T("config", "pipeline"))
	var m *bus.Message
	select {
	case m = <-sub.Channel():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("no retained pipeline config")
	}

	section, ok := m.Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type %T", m.Payload)
	}
	if got := section["block_len"].(float64); got != 11200 {
		t.Errorf("block_len = %v, want 11200", got)
	}
	if got := section["threshold"].(float64); got != 0.5 {
		t.Errorf("threshold = %v, want 0.5", got)
	}
}

func TestUnknownRoleDoesNotPublish(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("config")

	s := NewService("toaster")
	if err := s.publishConfig(conn); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
