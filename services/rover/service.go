package rover

import (
	"context"
	"time"

	"voicedrive-go/bus"
	"voicedrive-go/drivers/bump"
	"voicedrive-go/drivers/motor"
	"voicedrive-go/hal"
)

var (
	topicConfigRover = bus.T("config", "rover")
	topicRoverState  = bus.T("rover", "state")
)

// Pins are the rover's control inputs and its status output. The two
// inputs are the pilot's actuation lines: transmission-valid gates the
// whole handshake, motion-control commands the drive (high = stop).
type Pins struct {
	TransmissionValid hal.GPIOPin
	MotionControl     hal.GPIOPin
	Status            hal.GPIOPin
}

// Service is the drive control loop: a cooperative poll of the two digital
// input lines plus the bump latch. It owns the motors; nothing else writes
// them.
type Service struct {
	pins    Pins
	left    *motor.Motor
	right   *motor.Motor
	bumps   *bump.Sensors
	poll    time.Duration
	goSpeed int

	state string // "go" | "halt" | "idle"
}

const defaultGoSpeed = 20

func New(pins Pins, left, right *motor.Motor, bumps *bump.Sensors) (*Service, error) {
	if err := pins.TransmissionValid.ConfigureInput(hal.PullDown); err != nil {
		return nil, err
	}
	if err := pins.MotionControl.ConfigureInput(hal.PullDown); err != nil {
		return nil, err
	}
	if err := pins.Status.ConfigureOutput(false); err != nil {
		return nil, err
	}
	return &Service{
		pins:    pins,
		left:    left,
		right:   right,
		bumps:   bumps,
		poll:    5 * time.Millisecond,
		goSpeed: defaultGoSpeed,
	}, nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, cfgSub *bus.Subscription) {
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.poll)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: rover service stopping")
			s.left.Stop()
			s.right.Stop()
			return
		case <-tick.C:
			s.step(conn)
		case msg := <-cfgSub.Channel():
			if m, ok := msg.Payload.(map[string]any); ok {
				if v, ok := m["go_speed"].(float64); ok && v > 0 {
					s.goSpeed = int(v)
				}
				if v, ok := m["poll_ms"].(float64); ok && v > 0 {
					s.poll = time.Duration(v) * time.Millisecond
					tick.Reset(s.poll)
				}
			}
		}
	}
}

// step is one control-loop iteration, the poll the original ran inline in
// its main while loop.
func (s *Service) step(conn *bus.Connection) {
	if s.pins.TransmissionValid.Get() {
		if s.pins.MotionControl.Get() {
			// Stop vehicle.
			s.left.SetDutyCycle(0)
			s.right.SetDutyCycle(0)
			s.pins.Status.Set(false)
			s.setState(conn, "halt")
		} else {
			// Start vehicle.
			s.left.SetDutyCycle(s.goSpeed)
			s.right.SetDutyCycle(s.goSpeed)
			s.pins.Status.Set(true)
			s.setState(conn, "go")
		}
	} else {
		// No valid transmission: leave the motors alone.
		s.setState(conn, "idle")
	}

	// Bump latch: pause while pressed, restart once fully released.
	if s.bumps.StateSet() {
		if s.bumps.Check() == 0 {
			s.left.Start()
			s.right.Start()
		} else {
			s.left.Pause()
			s.right.Pause()
		}
	}
}

func (s *Service) setState(conn *bus.Connection, state string) {
	if state == s.state {
		return
	}
	s.state = state
	conn.Publish(&bus.Message{Topic: topicRoverState, Payload: state, Retained: true})
}

// Start launches the control loop.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	cfgSub := conn.Subscribe(topicConfigRover)
	go s.serviceLoop(ctx, conn, cfgSub)
	return nil
}
