// Package bump reads a bank of bump-switch inputs as one latched state:
// any press sets the latch, and the latch clears only once every switch has
// been released and observed released. Switches are active low with
// pull-ups, matching the chassis wiring.
package bump

import "voicedrive-go/hal"

type Sensors struct {
	pins    []hal.GPIOPin
	latched bool
}

func New(pins ...hal.GPIOPin) (*Sensors, error) {
	for _, p := range pins {
		if err := p.ConfigureInput(hal.PullUp); err != nil {
			return nil, err
		}
	}
	return &Sensors{pins: pins}, nil
}

// mask reads the live state: bit i set when switch i is pressed.
func (s *Sensors) mask() uint32 {
	var m uint32
	for i, p := range s.pins {
		if !p.Get() { // active low
			m |= 1 << i
		}
	}
	return m
}

// StateSet reports whether any press has been observed since the latch
// last cleared. Poll it from the control loop.
func (s *Sensors) StateSet() bool {
	if s.mask() != 0 {
		s.latched = true
	}
	return s.latched
}

// Check returns the live pressed mask and clears the latch once everything
// is released.
func (s *Sensors) Check() uint32 {
	m := s.mask()
	if m == 0 {
		s.latched = false
	}
	return m
}
