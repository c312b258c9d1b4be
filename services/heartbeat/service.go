package heartbeat

import (
	"context"
	"time"

	"voicedrive-go/bus"
	"voicedrive-go/hal"
	"voicedrive-go/x/timex"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicRoverState      = bus.T("rover", "state")
)

// Service blinks the RGB heartbeat LED: one tick all colours off, the next
// tick the current colour on. The colour tracks the retained drive state on
// the bus: halt shows red, go shows green, and blue means no valid
// transmission. A decorative watchdog, not part of the data pipeline.
type Service struct {
	Red, Green, Blue hal.GPIOPin
	FreqHz           uint32 // blink toggle frequency, default 4 Hz

	current hal.GPIOPin
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, cfgSub, stateSub *bus.Subscription) {
	defer conn.Unsubscribe(cfgSub)
	defer conn.Unsubscribe(stateSub)

	freq := s.FreqHz
	if freq == 0 {
		freq = 4
	}
	tick := time.NewTicker(timex.PeriodFromHz(freq))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			s.allOff()
			return
		case <-tick.C:
			s.blink()
		case msg := <-stateSub.Channel():
			if state, ok := msg.Payload.(string); ok {
				s.setColour(state)
			}
		case msg := <-cfgSub.Channel():
			if m, ok := msg.Payload.(map[string]any); ok {
				if hz, ok := m["freq_hz"].(float64); ok && hz > 0 {
					tick.Reset(timex.PeriodFromHz(uint32(hz)))
				}
			}
		}
	}
}

// blink mirrors the original timer interrupt: if any colour is lit, douse
// them all; otherwise light the current one.
func (s *Service) blink() {
	if s.Red.Get() || s.Green.Get() || s.Blue.Get() {
		s.allOff()
		return
	}
	s.current.Set(true)
}

func (s *Service) allOff() {
	s.Red.Set(false)
	s.Green.Set(false)
	s.Blue.Set(false)
}

func (s *Service) setColour(state string) {
	switch state {
	case "go":
		s.current = s.Green
	case "halt":
		s.current = s.Red
	default:
		s.current = s.Blue
	}
}

// Start launches the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	for _, p := range []hal.GPIOPin{s.Red, s.Green, s.Blue} {
		if err := p.ConfigureOutput(false); err != nil {
			return err
		}
	}
	s.current = s.Blue
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	stateSub := conn.Subscribe(topicRoverState)
	go s.serviceLoop(ctx, conn, cfgSub, stateSub)
	return nil
}
