// Package motor drives one gearmotor through a PWM speed input and a
// direction pin, with an explicit pause latch for bump handling: a paused
// motor remembers its commanded duty and restores it on Start.
package motor

import (
	"voicedrive-go/hal"
	"voicedrive-go/x/mathx"
)

type Direction int8

const (
	Backward Direction = -1
	Stopped  Direction = 0
	Forward  Direction = 1
)

type Motor struct {
	pwm hal.PWMOut
	dir hal.GPIOPin

	duty   uint8 // commanded duty, survives Pause
	paused bool
}

func New(pwm hal.PWMOut, dir hal.GPIOPin) (*Motor, error) {
	if err := dir.ConfigureOutput(true); err != nil { // forward
		return nil, err
	}
	pwm.SetDutyPercent(0)
	return &Motor{pwm: pwm, dir: dir}, nil
}

// SetDutyCycle commands a duty in percent; negative values reverse.
// While paused the command is stored but not applied.
func (m *Motor) SetDutyCycle(pct int) {
	dir := pct >= 0
	if pct < 0 {
		pct = -pct
	}
	m.dir.Set(dir)
	m.duty = uint8(mathx.Clamp(pct, 0, 100))
	if !m.paused {
		m.pwm.SetDutyPercent(m.duty)
	}
}

// Stop commands zero duty, keeping the direction setting.
func (m *Motor) Stop() { m.SetDutyCycle(0) }

// Pause forces the output to zero without forgetting the commanded duty.
func (m *Motor) Pause() {
	m.paused = true
	m.pwm.SetDutyPercent(0)
}

// Start releases a pause and restores the commanded duty.
func (m *Motor) Start() {
	m.paused = false
	m.pwm.SetDutyPercent(m.duty)
}

// Duty reports the commanded duty in percent.
func (m *Motor) Duty() uint8 { return m.duty }

// Paused reports whether the bump latch is holding the motor.
func (m *Motor) Paused() bool { return m.paused }
