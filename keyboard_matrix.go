// keyboard_matrix.go - ASCII to 8x5 keyboard matrix translation

/*
 ██      ██  ██████████  ██      ██    ████████  ████████    ██████████    ████████    ████████  ██      ██
 ████    ██  ██          ██      ██  ██          ██      ██  ██          ██          ██            ██  ██
 ██  ██  ██  ████████    ██  ██  ██    ██████    ████████    ████████    ██          ██              ██
 ██    ████  ██          ████  ████          ██  ██          ██          ██          ██              ██
 ██      ██  ██████████  ██      ██  ████████    ██          ██████████    ████████    ████████      ██
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░

(c) 2026 The newspeccy Authors
https://github.com/ashwinm76/newspeccy
License: GPLv3 or later
*/

/*
keyboard_matrix.go - Keyboard Matrix

The firmware scans the keyboard by reading port 0xFE with a row-select
byte in the upper address byte (one bit low per half row) and gets the
half row's key bits back, active low.

A typed character becomes one or two (key bits, row) pairs. Pairs are
handed out last in, first out, each only when the firmware selects its
row. Shifted characters push the shift pair last so the shift key is seen
before the key itself.

Special characters:
  TAB  BREAK (caps shift + space)
  CR   ENTER
  `    symbol shift; latches until the next character completes the chord.
       TAB, ~, the shifted digits and unmapped characters cancel it.
  ~    caps shift + symbol shift (extended mode)
  !@#$%^&*()  caps shift + the digit key below the symbol
*/

package main

const (
	KEY_NONE = 0xFF

	// Half row select bytes
	ROW_CAPS_V  = 0xFE // caps shift, z, x, c, v
	ROW_A_G     = 0xFD
	ROW_Q_T     = 0xFB
	ROW_1_5     = 0xF7
	ROW_0_6     = 0xEF
	ROW_P_Y     = 0xDF
	ROW_ENTER_H = 0xBF
	ROW_SPACE_B = 0x7F // space, symbol shift, m, n, b

	KEY_BIT_0 = 0xFE // outermost key of a half row
	KEY_BIT_1 = 0xFD
)

// keyBits holds the active-low key bit for 0-9 then a-z.
var keyBits = [36]byte{
	0xFE, 0xFE, 0xFD, 0xFB, 0xF7, 0xEF, 0xEF, 0xF7, 0xFB, 0xFD, // 0-9
	0xFE, 0xEF, 0xF7, 0xFB, 0xFB, 0xF7, 0xEF, 0xEF, 0xFB, 0xF7, // a-j
	0xFB, 0xFD, 0xFB, 0xF7, 0xFD, 0xFE, 0xFE, 0xF7, 0xFD, 0xEF, // k-t
	0xF7, 0xEF, 0xFD, 0xFB, 0xEF, 0xFD, // u-z
}

// shiftedDigits maps a symbol to the digit key pressed with caps shift.
var shiftedDigits = map[byte]struct{ key, row byte }{
	'!': {0xFE, ROW_1_5},
	'@': {0xFD, ROW_1_5},
	'#': {0xFB, ROW_1_5},
	'$': {0xF7, ROW_1_5},
	'%': {0xEF, ROW_1_5},
	'^': {0xEF, ROW_0_6},
	'&': {0xF7, ROW_0_6},
	'*': {0xFB, ROW_0_6},
	'(': {0xFD, ROW_0_6},
	')': {0xFE, ROW_0_6},
}

func letterRow(c byte) byte {
	switch c {
	case 'q', 'w', 'e', 'r', 't':
		return ROW_Q_T
	case 'y', 'u', 'i', 'o', 'p':
		return ROW_P_Y
	case 'a', 's', 'd', 'f', 'g':
		return ROW_A_G
	case 'h', 'j', 'k', 'l':
		return ROW_ENTER_H
	case 'z', 'x', 'c', 'v':
		return ROW_CAPS_V
	default: // b, n, m
		return ROW_SPACE_B
	}
}

// KeyboardMatrix converts polled characters into matrix responses.
type KeyboardMatrix struct {
	source KeySource

	keys        [2]byte
	rows        [2]byte
	count       int
	symbolShift bool
}

func NewKeyboardMatrix(source KeySource) *KeyboardMatrix {
	return &KeyboardMatrix{source: source}
}

func (k *KeyboardMatrix) Reset() {
	k.keys = [2]byte{}
	k.rows = [2]byte{}
	k.count = 0
	k.symbolShift = false
}

// Pending reports the buffered pair count and the symbol shift latch.
func (k *KeyboardMatrix) Pending() (count int, symbolShift bool) {
	return k.count, k.symbolShift
}

// Read answers a scan of the half row selected by row. It polls the key
// source at most once, and only while nothing is buffered or a symbol
// shift chord still waits for its second key. It never blocks.
func (k *KeyboardMatrix) Read(row byte) byte {
	if k.count == 0 || (k.symbolShift && k.count < 2) {
		k.poll()
	}

	if k.symbolShift && k.count < 2 {
		return KEY_NONE
	}
	if k.count > 0 && row == k.rows[k.count-1] {
		// symbol shift chorded with a key on the space row reads as one scan
		if k.symbolShift && k.count == 2 && k.rows[1] == ROW_SPACE_B {
			k.symbolShift = false
			k.count = 0
			return k.keys[1] & k.keys[0]
		}
		k.symbolShift = false
		k.count--
		return k.keys[k.count]
	}
	return KEY_NONE
}

func (k *KeyboardMatrix) push(key, row byte) {
	if k.count >= len(k.keys) {
		return
	}
	k.keys[k.count] = key
	k.rows[k.count] = row
	k.count++
}

// set overwrites slot i, used by the fixed-layout chords.
func (k *KeyboardMatrix) set(i int, key, row byte) {
	k.keys[i] = key
	k.rows[i] = row
}

func (k *KeyboardMatrix) poll() {
	if k.source == nil {
		return
	}
	c, ok := k.source.PollKey()
	if !ok {
		return
	}

	switch {
	case c >= '0' && c <= '9':
		row := byte(ROW_0_6)
		if c >= '1' && c <= '5' {
			row = ROW_1_5
		}
		k.push(keyBits[c-'0'], row)

	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		lower := c | 0x20
		k.push(keyBits[10+lower-'a'], letterRow(lower))
		if c < 'a' && !k.symbolShift {
			k.push(KEY_BIT_0, ROW_CAPS_V)
		}

	case c == '\t':
		k.set(1, KEY_BIT_0, ROW_SPACE_B)
		k.set(0, KEY_BIT_0, ROW_CAPS_V)
		k.count = 2
		k.symbolShift = false

	case c == '\r':
		k.push(KEY_BIT_0, ROW_ENTER_H)

	case c == ' ':
		k.push(KEY_BIT_0, ROW_SPACE_B)

	case c == '`':
		k.set(0, KEY_BIT_1, ROW_SPACE_B)
		k.count = 1
		k.symbolShift = true

	case c == '~':
		k.set(0, KEY_BIT_1, ROW_SPACE_B)
		k.set(1, KEY_BIT_0, ROW_CAPS_V)
		k.count = 2
		k.symbolShift = false

	default:
		d, ok := shiftedDigits[c]
		if !ok {
			// drops a pending symbol shift too
			k.count = 0
			k.symbolShift = false
			return
		}
		k.set(0, d.key, d.row)
		k.set(1, KEY_BIT_0, ROW_CAPS_V)
		k.count = 2
		k.symbolShift = false
	}
}
