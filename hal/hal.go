// Package hal holds the small hardware abstractions shared by the pipeline,
// the drivers and the services. Implementations live in platform (host sims,
// MCU pins) and in the drivers.
package hal

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- PWM ----

// PWMOut is a configured PWM slice/channel driving one pin.
type PWMOut interface {
	// SetDutyPercent sets the duty cycle, 0..100.
	SetDutyPercent(pct uint8)
	DutyPercent() uint8
}

// ---- Console ----

// ConsolePort carries best-effort diagnostic text. Writes must not block
// indefinitely; absence of a listener is not an error.
type ConsolePort interface {
	Write(p []byte) (int, error)
}
