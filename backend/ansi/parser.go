// @focus: #sys { io } #input { parser }
package ansi

import (
	"unicode"
	"unicode/utf8"

	"github.com/lixenwraith/cellterm/input"
)

// Parser turns a raw xterm byte stream into input samples.
// It keeps partial sequences across Feed calls and synthesizes the held
// mouse-button bitmask that SGR reports only describe as transitions.
// ESC followed by a non-sequence byte yields two samples; Alt resolution is
// left to the translator.
type Parser struct {
	// Persistent buffer for stream assembly, keeps partial UTF-8 and escape
	// sequences intact across reads
	buf  []byte
	held uint32
	out  []input.Sample
}

// NewParser creates an empty parser
func NewParser() *Parser {
	return &Parser{buf: make([]byte, 0, 256)}
}

// Feed appends data and returns every complete sample decoded so far.
// The returned slice is reused by the next call.
func (p *Parser) Feed(data []byte) []input.Sample {
	p.out = p.out[:0]
	p.buf = append(p.buf, data...)

	consumed := p.parse(p.buf)
	p.compact(consumed)
	return p.out
}

// Pending reports whether undecoded bytes are waiting for more input
func (p *Parser) Pending() bool {
	return len(p.buf) > 0
}

// Timeout resolves whatever is buffered once the escape timeout expires:
// a lone ESC becomes an Escape key, the bytes after it are decoded on their own.
func (p *Parser) Timeout() []input.Sample {
	p.out = p.out[:0]
	if len(p.buf) == 0 {
		return p.out
	}
	if p.buf[0] != 0x1b {
		// Truncated UTF-8 never completes; drop it
		p.buf = p.buf[:0]
		return p.out
	}

	p.emit(escapeSample())
	// Whatever is still incomplete after this is garbage
	p.parse(p.buf[1:])
	p.buf = p.buf[:0]
	return p.out
}

func (p *Parser) compact(consumed int) {
	if consumed <= 0 {
		return
	}
	if consumed >= len(p.buf) {
		p.buf = p.buf[:0]
		return
	}
	copy(p.buf, p.buf[consumed:])
	p.buf = p.buf[:len(p.buf)-consumed]
}

func (p *Parser) emit(s input.Sample) {
	p.out = append(p.out, s)
}

func escapeSample() input.Sample {
	return input.KeyDownSample(input.VKEscape, 0x1b, 0)
}

// parse decodes data and returns bytes consumed (stops on an incomplete sequence)
func (p *Parser) parse(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			p.emit(charSample(rune(b)))
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return i
			}
			consumed := p.parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			i += consumed
			continue
		}

		if b < 0x20 {
			p.emit(controlSample(b))
			i++
			continue
		}

		// DEL: what most terminals send for Backspace
		if b == 0x7f {
			p.emit(input.KeyDownSample(input.VKBack, 0x7f, 0))
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return i
		}
		r, size := utf8.DecodeRune(data[i:])
		if r != utf8.RuneError {
			p.emit(charSample(r))
		}
		i += size
	}
	return i
}

// charSample builds a key sample for a typed character
func charSample(r rune) input.Sample {
	var ctrl input.ControlState
	if unicode.IsUpper(r) {
		ctrl = input.Shift
	}
	return input.KeyDownSample(input.VKForChar(r), r, ctrl)
}

// controlSample maps a C0 control byte to the key that produces it
func controlSample(b byte) input.Sample {
	switch b {
	case 0x00: // Ctrl+Space or Ctrl+@
		return input.KeyDownSample(input.VKSpace, 0, input.LeftCtrl)
	case 0x08: // Ctrl+H or Backspace
		return input.KeyDownSample(input.VKBack, 0x08, 0)
	case 0x09:
		return input.KeyDownSample(input.VKTab, '\t', 0)
	case 0x0a, 0x0d: // LF, CR (Enter)
		return input.KeyDownSample(input.VKReturn, '\r', 0)
	case 0x1c:
		return input.KeyDownSample(0xdc, rune(b), input.LeftCtrl)
	case 0x1d:
		return input.KeyDownSample(0xdd, rune(b), input.LeftCtrl)
	case 0x1e: // Ctrl+^ / Ctrl+6
		return input.KeyDownSample(input.VK0+6, 0, input.LeftCtrl)
	case 0x1f: // Ctrl+_ / Ctrl+/
		return input.KeyDownSample(input.VKOEMMinus, 0, input.LeftCtrl)
	}
	// Ctrl+letter
	return input.KeyDownSample(input.VKA+uint16(b-1), rune(b), input.LeftCtrl)
}

// parseEscape parses from an ESC byte, returns 0 on incomplete
func (p *Parser) parseEscape(data []byte) int {
	switch data[1] {
	case '[':
		return p.parseCSI(data)
	case 'O':
		return p.parseSS3(data)
	}
	// Not a sequence: Escape, then the next byte decodes on its own
	p.emit(escapeSample())
	return 1
}

// parseCSI parses ESC [ params final
func (p *Parser) parseCSI(data []byte) int {
	if len(data) < 3 {
		return 0
	}

	// SGR mouse: ESC [ < Btn ; X ; Y M/m
	if data[2] == '<' {
		return p.parseSGRMouse(data)
	}

	// Linux console function keys: ESC [ [ A..E
	if data[2] == '[' {
		if len(data) < 4 {
			return 0
		}
		if vk, ok := linuxFKeys[data[3]]; ok {
			p.emit(input.KeyDownSample(vk, 0, 0))
		}
		return 4
	}

	end := 2
	maxScan := len(data)
	if maxScan > 16 {
		maxScan = 16
	}
	for end < maxScan {
		b := data[end]
		if isFinal(b) {
			end++
			break
		}
		if b < 0x20 || b > 0x7e {
			// Malformed: drop ESC [ and resync
			return 2
		}
		end++
	}
	if end <= 2 || !isFinal(data[end-1]) {
		if len(data) >= 16 {
			// Overlong unknown sequence, drop the introducer
			return 2
		}
		return 0
	}

	body := data[2:end]
	final := body[len(body)-1]
	params := body[:len(body)-1]

	switch final {
	case 'I', 'O':
		if len(params) == 0 {
			p.emit(input.Sample{Kind: input.SampleFocus})
			return end
		}
	case 'Z':
		p.emit(input.KeyDownSample(input.VKTab, '\t', input.Shift))
		return end
	}

	base, mod := splitParams(params)
	var vk uint16
	var ok bool
	if final == '~' {
		vk, ok = csiTilde[base]
	} else {
		vk, ok = csiLetter[final]
	}
	if ok {
		p.emit(input.KeyDownSample(vk, 0, modifierState(mod)))
	}
	// Unknown but valid CSI syntax is consumed silently
	return end
}

// parseSS3 parses ESC O final
func (p *Parser) parseSS3(data []byte) int {
	if len(data) < 3 {
		return 0
	}
	if vk, ok := ss3Keys[data[2]]; ok {
		p.emit(input.KeyDownSample(vk, 0, 0))
	}
	return 3
}

// parseSGRMouse parses mouse SGR sequences
func (p *Parser) parseSGRMouse(data []byte) int {
	// Find terminator M or m
	end := 3
	for end < len(data) && end < 32 {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		if len(data) >= 32 {
			return 3
		}
		return 0
	}
	if data[end] != 'M' && data[end] != 'm' {
		return 3
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1
	}
	x, y = x-1, y-1 // 0-indexed

	// Bits 0-1: button (0=left, 1=middle, 2=right, 3=none)
	// Bit 5 (32): motion, bit 6 (64): wheel
	var ctrl input.ControlState
	if btn&4 != 0 {
		ctrl |= input.Shift
	}
	if btn&8 != 0 {
		ctrl |= input.LeftAlt
	}
	if btn&16 != 0 {
		ctrl |= input.LeftCtrl
	}
	buttonID := btn & 0x03
	press := data[end] == 'M'

	switch {
	case btn&64 != 0:
		switch buttonID {
		case 0:
			p.emit(input.WheelSample(x, y, p.held, 1, ctrl))
		case 1:
			p.emit(input.WheelSample(x, y, p.held, -1, ctrl))
		default:
			s := input.WheelSample(x, y, p.held, 1, ctrl)
			s.Flags = input.MouseHWheeled
			p.emit(s)
		}

	case btn&32 != 0:
		p.emit(input.MouseSample(x, y, p.held, input.MouseMoved, ctrl))

	default:
		bit := sgrButtonBit(buttonID)
		switch {
		case press:
			p.held |= bit
		case buttonID == 3:
			p.held = 0
		default:
			p.held &^= bit
		}
		p.emit(input.MouseSample(x, y, p.held, input.MouseClick, ctrl))
	}
	return end + 1
}

// sgrButtonBit maps an SGR button id to the sample's button bit
func sgrButtonBit(id int) uint32 {
	switch id {
	case 0:
		return input.ButtonLeft
	case 1:
		return 0x04 // first middle bit
	case 2:
		return input.ButtonRight
	}
	return 0
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}

// splitParams splits "base;mod" CSI parameters; mod is 1 when absent
func splitParams(params []byte) (base string, mod int) {
	mod = 1
	for i, b := range params {
		if b == ';' {
			m := 0
			for _, d := range params[i+1:] {
				if d < '0' || d > '9' {
					return string(params[:i]), 1
				}
				m = m*10 + int(d-'0')
			}
			return string(params[:i]), m
		}
	}
	return string(params), mod
}

// modifierState decodes an xterm modifier parameter (1 + bitmask)
func modifierState(mod int) input.ControlState {
	bits := mod - 1
	var c input.ControlState
	if bits&1 != 0 {
		c |= input.Shift
	}
	if bits&2 != 0 {
		c |= input.LeftAlt
	}
	if bits&4 != 0 {
		c |= input.LeftCtrl
	}
	return c
}

func isFinal(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~'
}
