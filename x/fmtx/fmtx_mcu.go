//go:build rp2040 || rp2350

package fmtx

import "io"

// DefaultOutput is used by Print/Printf on MCU builds.
// Set this from your platform bootstrap (e.g. a UART writer).
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// --- Public API (signatures match fmt) ---

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

func Printf(format string, a ...any) (int, error) {
	return Fprint(DefaultOutput, Sprintf(format, a...))
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return Fprint(w, Sprintf(format, a...))
}

func Errorf(format string, a ...any) error {
	return &stringError{Sprintf(format, a...)}
}

func Sprint(a ...any) string {
	var b builder
	for i, v := range a {
		if i > 0 {
			b.byte(' ')
		}
		b.any(v)
	}
	return string(b.buf)
}

func Fprint(w io.Writer, a ...any) (int, error) {
	return w.Write([]byte(Sprint(a...)))
}

func Print(a ...any) (int, error) { return Fprint(DefaultOutput, a...) }

// --- Internals: tiny formatter subset ---
// Supports %s %d %x %v %t %f (fixed 3 decimals, or %.Nf) and %%.
// No width flags; keep MCU cost low.

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

type builder struct{ buf []byte }

func (b *builder) byte(c byte)  { b.buf = append(b.buf, c) }
func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) any(v any) {
	switch x := v.(type) {
	case string:
		b.str(x)
	case []byte:
		b.buf = append(b.buf, x...)
	case int:
		b.int64(int64(x))
	case int8:
		b.int64(int64(x))
	case int16:
		b.int64(int64(x))
	case int32:
		b.int64(int64(x))
	case int64:
		b.int64(x)
	case uint:
		b.uint64(uint64(x), 10)
	case uint8:
		b.uint64(uint64(x), 10)
	case uint16:
		b.uint64(uint64(x), 10)
	case uint32:
		b.uint64(uint64(x), 10)
	case uint64:
		b.uint64(x, 10)
	case bool:
		if x {
			b.str("true")
		} else {
			b.str("false")
		}
	case float32:
		b.float(float64(x), 3)
	case float64:
		b.float(x, 3)
	case error:
		b.str(x.Error())
	default:
		b.str("<unk>")
	}
}

func (b *builder) int64(i int64) {
	if i < 0 {
		b.byte('-')
		i = -i
	}
	b.uint64(uint64(i), 10)
}

const digits = "0123456789abcdef"

func (b *builder) uint64(u uint64, base uint64) {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = digits[u%base]
		u /= base
		if u == 0 {
			break
		}
	}
	b.buf = append(b.buf, tmp[i:]...)
}

func (b *builder) float(f float64, prec int) {
	if f < 0 {
		b.byte('-')
		f = -f
	}
	ip := uint64(f)
	b.uint64(ip, 10)
	if prec <= 0 {
		return
	}
	b.byte('.')
	frac := f - float64(ip)
	for i := 0; i < prec; i++ {
		frac *= 10
		d := int(frac)
		b.byte(digits[d])
		frac -= float64(d)
	}
}

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); {
		if format[i] != '%' {
			b.byte(format[i])
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			b.byte('%')
			i += 2
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			prec = 0
			for i < len(format) && '0' <= format[i] && format[i] <= '9' {
				prec = prec*10 + int(format[i]-'0')
				i++
			}
		}
		if i >= len(format) || ai >= len(args) {
			return
		}
		verb := format[i]
		arg := args[ai]
		ai++
		i++

		switch verb {
		case 's', 'v', 'd', 't':
			b.any(arg)
		case 'x':
			switch x := arg.(type) {
			case uint32:
				b.uint64(uint64(x), 16)
			case uint64:
				b.uint64(x, 16)
			case int:
				b.uint64(uint64(x), 16)
			default:
				b.any(arg)
			}
		case 'f':
			if prec < 0 {
				prec = 3
			}
			switch x := arg.(type) {
			case float32:
				b.float(float64(x), prec)
			case float64:
				b.float(x, prec)
			default:
				b.any(arg)
			}
		default:
			// Unknown verb: write it literally to aid debugging.
			b.byte('%')
			b.byte(verb)
		}
	}
}
