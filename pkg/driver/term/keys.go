package term

import (
	"bufio"
	"unicode"
)

// ASCII codes with a meaning of their own.
const (
	keyCtrlC     = 3
	keyBackspace = 8
	keyTab       = 9
	keyLineFeed  = 10
	keyReturn    = 13
	keyEsc       = 27
	keyDelete    = 127
)

// escCursor follows keyEsc in cursor key sequences.
const escCursor = '['

// cursorKeys maps the final byte of "ESC [ x" sequences to key codes.
var cursorKeys = map[rune]int{
	'A': 38, // up
	'B': 40, // down
	'C': 39, // right
	'D': 37, // left
	'H': 36, // home
	'F': 35, // end
}

// tildeKeys maps the number of "ESC [ n ~" sequences to key codes.
var tildeKeys = map[rune]int{
	'2': 45, // insert
	'3': 46, // delete
	'5': 33, // page up
	'6': 34, // page down
}

// symbolKeys maps printable symbols to the code of the key that produces
// them on a US layout.
var symbolKeys = map[rune]int{
	' ': 32,
	';': 186, ':': 186,
	'=': 187, '+': 187,
	',': 188, '<': 188,
	'-': 189, '_': 189,
	'.': 190, '>': 190,
	'/': 191, '?': 191,
	'`': 192, '~': 192,
	'[': 219, '{': 219,
	'\\': 220, '|': 220,
	']': 221, '}': 221,
	'\'': 222, '"': 222,
	')': '0', '!': '1', '@': '2', '#': '3', '$': '4',
	'%': '5', '^': '6', '&': '7', '*': '8', '(': '9',
}

// readKey reads the next key press from r. It returns code 0 for input
// that does not map to a key, and quit for Ctrl-C.
func readKey(r *bufio.Reader) (code int, quit bool, err error) {
	c, _, err := r.ReadRune()
	if err != nil {
		return 0, false, err
	}

	switch c {
	case keyCtrlC:
		return 0, true, nil
	case keyReturn, keyLineFeed:
		return keyReturn, false, nil
	case keyTab:
		return keyTab, false, nil
	case keyBackspace, keyDelete:
		return keyBackspace, false, nil
	case keyEsc:
		return readEscape(r)
	}

	switch {
	case c >= 'a' && c <= 'z':
		return int(unicode.ToUpper(c)), false, nil
	case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return int(c), false, nil
	}
	return symbolKeys[c], false, nil
}

// readEscape decodes the rest of an escape sequence. An escape with
// nothing buffered after it is the escape key itself.
func readEscape(r *bufio.Reader) (int, bool, error) {
	if r.Buffered() == 0 {
		return keyEsc, false, nil
	}
	c, _, err := r.ReadRune()
	if err != nil {
		return 0, false, err
	}
	if c != escCursor {
		// alt+key, report the escape and leave the key for the next read
		if err := r.UnreadRune(); err != nil {
			return 0, false, err
		}
		return keyEsc, false, nil
	}

	c, _, err = r.ReadRune()
	if err != nil {
		return 0, false, err
	}
	if code, ok := cursorKeys[c]; ok {
		return code, false, nil
	}
	if code, ok := tildeKeys[c]; ok {
		if t, _, err := r.ReadRune(); err != nil || t != '~' {
			return 0, false, err
		}
		return code, false, nil
	}
	return 0, false, nil
}
