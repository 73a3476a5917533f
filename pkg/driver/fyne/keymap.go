package fyne

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var keyCodes = map[fyne.KeyName]int{
	fyne.KeyBackspace: 8,
	fyne.KeyTab:       9,
	fyne.KeyReturn:    13,
	fyne.KeyEnter:     13,
	fyne.KeyEscape:    27,
	fyne.KeySpace:     32,
	fyne.KeyPageUp:    33,
	fyne.KeyPageDown:  34,
	fyne.KeyEnd:       35,
	fyne.KeyHome:      36,
	fyne.KeyLeft:      37,
	fyne.KeyUp:        38,
	fyne.KeyRight:     39,
	fyne.KeyDown:      40,
	fyne.KeyInsert:    45,
	fyne.KeyDelete:    46,

	desktop.KeyShiftLeft:    16,
	desktop.KeyShiftRight:   16,
	desktop.KeyControlLeft:  17,
	desktop.KeyControlRight: 17,
	desktop.KeyAltLeft:      18,
	desktop.KeyAltRight:     18,
	desktop.KeyCapsLock:     20,
	desktop.KeySuperLeft:    91,
	desktop.KeySuperRight:   91,

	fyne.KeyF1:  112,
	fyne.KeyF2:  113,
	fyne.KeyF3:  114,
	fyne.KeyF4:  115,
	fyne.KeyF5:  116,
	fyne.KeyF6:  117,
	fyne.KeyF7:  118,
	fyne.KeyF8:  119,
	fyne.KeyF9:  120,
	fyne.KeyF10: 121,
	fyne.KeyF11: 122,
	fyne.KeyF12: 123,

	fyne.KeySemicolon:    186,
	fyne.KeyEqual:        187,
	fyne.KeyComma:        188,
	fyne.KeyMinus:        189,
	fyne.KeyPeriod:       190,
	fyne.KeySlash:        191,
	fyne.KeyBackTick:     192,
	fyne.KeyLeftBracket:  219,
	fyne.KeyBackslash:    220,
	fyne.KeyRightBracket: 221,
	fyne.KeyApostrophe:   222,
}

// keyCode translates a fyne key name to a DOM key code, 0 if the key has
// none. Letters and digits are named by their upper case character.
func keyCode(name fyne.KeyName) int {
	if len(name) == 1 {
		c := name[0]
		if c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			return int(c)
		}
	}
	return keyCodes[name]
}

func buttonCode(b desktop.MouseButton) int {
	switch b {
	case desktop.MouseButtonPrimary:
		return 1
	case desktop.MouseButtonTertiary:
		return 2
	case desktop.MouseButtonSecondary:
		return 3
	}
	return 0
}
