//go:build !(rp2040 || rp2350)

// Host build: simulated pins and PWM with the same contracts as the MCU
// factories, plus a stdout console. Demos and tests share these.
package platform

import (
	"os"
	"sync"

	"tinygo.org/x/drivers"

	"voicedrive-go/hal"
)

// SimPin is an in-memory GPIO pin. Safe for concurrent use, so a test can
// drive an input level while a service polls it.
type SimPin struct {
	mu     sync.Mutex
	n      int
	level  bool
	output bool
	pull   hal.Pull
}

func NewSimPin(n int) *SimPin { return &SimPin{n: n} }

func (p *SimPin) ConfigureInput(pull hal.Pull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = false
	p.pull = pull
	p.level = pull == hal.PullUp
	return nil
}

func (p *SimPin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = true
	p.level = initial
	return nil
}

func (p *SimPin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *SimPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *SimPin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.mu.Unlock()
}

func (p *SimPin) Number() int { return p.n }

// SimPWM is an in-memory PWM output.
type SimPWM struct {
	mu   sync.Mutex
	duty uint8
}

func NewSimPWM() *SimPWM { return &SimPWM{} }

func (p *SimPWM) SetDutyPercent(pct uint8) {
	if pct > 100 {
		pct = 100
	}
	p.mu.Lock()
	p.duty = pct
	p.mu.Unlock()
}

func (p *SimPWM) DutyPercent() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

// ---- Factories ----

type simPinFactory struct {
	mu   sync.Mutex
	pins map[int]*SimPin
}

func (f *simPinFactory) ByNumber(n int) (hal.GPIOPin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = NewSimPin(n)
		f.pins[n] = p
	}
	return p, true
}

// DefaultPinFactory returns a factory handing out stable simulated pins:
// the same number always maps to the same pin, as on hardware.
func DefaultPinFactory() hal.PinFactory {
	return &simPinFactory{pins: map[int]*SimPin{}}
}

// DefaultConsole returns the diagnostic text sink for host builds.
func DefaultConsole() hal.ConsolePort { return os.Stdout }

// SimI2C acknowledges every transaction and remembers the last write per
// address, enough for register-glue drivers to run on host.
type SimI2C struct {
	mu   sync.Mutex
	last map[uint16][]byte
}

func NewSimI2C() *SimI2C { return &SimI2C{last: map[uint16][]byte{}} }

func (b *SimI2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(w) > 0 {
		b.last[addr] = append([]byte(nil), w...)
	}
	for i := range r {
		r[i] = 0
	}
	return nil
}

// LastWrite returns the most recent write to addr.
func (b *SimI2C) LastWrite(addr uint16) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last[addr]
}

// DefaultI2C returns the simulated codec bus for host builds.
func DefaultI2C() drivers.I2C { return NewSimI2C() }
