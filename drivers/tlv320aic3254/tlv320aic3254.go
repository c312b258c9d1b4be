// Package tlv320aic3254 carries the register glue for the TLV320AIC3254
// audio codec feeding the capture interface. Only the bring-up path the
// pipeline needs is implemented: soft reset, clocking for 16-bit mono PCM
// at the stream sample rate, onboard mic routing and PGA volume. Codec
// tuning beyond that is out of scope.
package tlv320aic3254

import (
	"errors"

	"tinygo.org/x/drivers"
)

const DefaultAddress = 0x18

// Register map is paged: register 0 on every page selects the page.
const (
	regPageSelect = 0x00

	// Page 0
	regSoftReset  = 0x01
	regClkMux     = 0x04
	regPLLPR      = 0x05
	regPLLJ       = 0x06
	regNADC       = 0x12
	regMADC       = 0x13
	regAOSR       = 0x14
	regIfaceCtrl1 = 0x1B
	regADCSetup   = 0x51
	regADCMute    = 0x52

	// Page 1
	regPwrCfg     = 0x01
	regMicPGAVolL = 0x3B
	regMicPGAInpL = 0x34
)

var (
	ErrUnsupportedRate = errors.New("tlv320aic3254: unsupported sample rate")
	ErrNotDetected     = errors.New("tlv320aic3254: codec not responding")
)

type Device struct {
	bus  drivers.I2C
	addr uint16
	page uint8
}

func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = DefaultAddress
	}
	return &Device{bus: bus, addr: addr, page: 0xFF}
}

// Open soft-resets the codec and verifies it answers on the bus.
func (d *Device) Open() error {
	if err := d.write(0, regSoftReset, 0x01); err != nil {
		return ErrNotDetected
	}
	return nil
}

// Config mirrors the capture stream geometry.
type Config struct {
	SampleRate uint32
	Bits       uint8 // 16 only
	Mono       bool
}

// pll holds the divider set for one supported rate (12 MHz MCLK).
type pll struct {
	p, r, j, nadc, madc, aosr uint8
}

var rates = map[uint32]pll{
	8000:  {p: 1, r: 1, j: 7, nadc: 21, madc: 2, aosr: 128},
	16000: {p: 1, r: 1, j: 7, nadc: 21, madc: 1, aosr: 128},
	32000: {p: 1, r: 1, j: 7, nadc: 7, madc: 3, aosr: 64},
	44100: {p: 1, r: 1, j: 8, nadc: 8, madc: 2, aosr: 128},
}

// Configure programs clocking and the serial interface for the stream.
func (d *Device) Configure(cfg Config) error {
	if cfg.Bits != 16 {
		return errors.New("tlv320aic3254: only 16-bit supported")
	}
	pv, ok := rates[cfg.SampleRate]
	if !ok {
		return ErrUnsupportedRate
	}

	steps := []struct {
		page, reg, val uint8
	}{
		{0, regClkMux, 0x03},                        // PLL from MCLK, CODEC_CLKIN from PLL
		{0, regPLLPR, 0x80 | pv.p<<4 | pv.r},        // PLL up, P, R
		{0, regPLLJ, pv.j},
		{0, regNADC, 0x80 | pv.nadc}, // NADC up
		{0, regMADC, 0x80 | pv.madc}, // MADC up
		{0, regAOSR, pv.aosr},
		{0, regIfaceCtrl1, 0x00}, // I2S, 16 bit, slave
		{1, regPwrCfg, 0x08},     // disable weak AVDD connection
		{1, regMicPGAInpL, 0x40}, // IN1L to left PGA
		{0, regADCSetup, 0x80},   // power up left ADC
		{0, regADCMute, 0x00},    // unmute
	}
	for _, s := range steps {
		if err := d.write(s.page, s.reg, s.val); err != nil {
			return err
		}
	}
	return nil
}

// SetMicVolume sets the mic PGA gain as a percentage of its range.
func (d *Device) SetMicVolume(pct uint8) error {
	if pct > 100 {
		pct = 100
	}
	// PGA range is 0..0x5F in 0.5 dB steps.
	val := uint8(uint16(pct) * 0x5F / 100)
	return d.write(1, regMicPGAVolL, val)
}

func (d *Device) write(page, reg, val uint8) error {
	if d.page != page {
		if err := d.bus.Tx(d.addr, []byte{regPageSelect, page}, nil); err != nil {
			return err
		}
		d.page = page
	}
	return d.bus.Tx(d.addr, []byte{reg, val}, nil)
}

func (d *Device) read(page, reg uint8) (uint8, error) {
	if d.page != page {
		if err := d.bus.Tx(d.addr, []byte{regPageSelect, page}, nil); err != nil {
			return 0, err
		}
		d.page = page
	}
	var buf [1]byte
	if err := d.bus.Tx(d.addr, []byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
