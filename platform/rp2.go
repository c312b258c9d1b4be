//go:build rp2040 || rp2350

// RP2 build: real pins via machine, console over UART0 through uartx.
package platform

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"voicedrive-go/hal"
	"voicedrive-go/x/fmtx"
)

// ---- GPIO ----

type rp2Pin struct{ pin machine.Pin }

func (p rp2Pin) ConfigureInput(pull hal.Pull) error {
	mode := machine.PinInput
	switch pull {
	case hal.PullUp:
		mode = machine.PinInputPullup
	case hal.PullDown:
		mode = machine.PinInputPulldown
	}
	p.pin.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (p rp2Pin) ConfigureOutput(initial bool) error {
	p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.pin.Set(initial)
	return nil
}

func (p rp2Pin) Set(level bool) { p.pin.Set(level) }
func (p rp2Pin) Get() bool      { return p.pin.Get() }
func (p rp2Pin) Toggle()        { p.pin.Set(!p.pin.Get()) }
func (p rp2Pin) Number() int    { return int(p.pin) }

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (hal.GPIOPin, bool) {
	if n < 0 || n > 29 {
		return nil, false
	}
	return rp2Pin{pin: machine.Pin(n)}, true
}

// DefaultPinFactory maps logical numbers directly to machine.Pin(n),
// matching Pico GP numbering.
func DefaultPinFactory() hal.PinFactory { return rp2PinFactory{} }

// ---- Console ----

type uartConsole struct{ u *uartx.UART }

func (c uartConsole) Write(p []byte) (int, error) { return c.u.Write(p) }

// DefaultConsole configures UART0 on the board-default pins at 115200 and
// points fmtx at it.
func DefaultConsole() hal.ConsolePort {
	hw := uartx.UART0
	_ = hw.Configure(uartx.UARTConfig{BaudRate: 115200})
	c := uartConsole{u: hw}
	fmtx.DefaultOutput = c
	return c
}

// DefaultI2C configures i2c0 at 400 kHz on the board-default pins for the
// codec register interface.
func DefaultI2C() drivers.I2C {
	b := machine.I2C0
	_ = b.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})
	return b
}
