package glfw

import "github.com/go-gl/glfw/v3.3/glfw"

var keyCodes = map[glfw.Key]int{
	glfw.KeyBackspace:    8,
	glfw.KeyTab:          9,
	glfw.KeyEnter:        13,
	glfw.KeyKPEnter:      13,
	glfw.KeyLeftShift:    16,
	glfw.KeyRightShift:   16,
	glfw.KeyLeftControl:  17,
	glfw.KeyRightControl: 17,
	glfw.KeyLeftAlt:      18,
	glfw.KeyRightAlt:     18,
	glfw.KeyPause:        19,
	glfw.KeyCapsLock:     20,
	glfw.KeyEscape:       27,
	glfw.KeySpace:        32,
	glfw.KeyPageUp:       33,
	glfw.KeyPageDown:     34,
	glfw.KeyEnd:          35,
	glfw.KeyHome:         36,
	glfw.KeyLeft:         37,
	glfw.KeyUp:           38,
	glfw.KeyRight:        39,
	glfw.KeyDown:         40,
	glfw.KeyPrintScreen:  44,
	glfw.KeyInsert:       45,
	glfw.KeyDelete:       46,
	glfw.KeyLeftSuper:    91,
	glfw.KeyRightSuper:   91,

	glfw.KeyKP0:        96,
	glfw.KeyKP1:        97,
	glfw.KeyKP2:        98,
	glfw.KeyKP3:        99,
	glfw.KeyKP4:        100,
	glfw.KeyKP5:        101,
	glfw.KeyKP6:        102,
	glfw.KeyKP7:        103,
	glfw.KeyKP8:        104,
	glfw.KeyKP9:        105,
	glfw.KeyKPMultiply: 106,
	glfw.KeyKPAdd:      107,
	glfw.KeyKPSubtract: 109,
	glfw.KeyKPDecimal:  110,
	glfw.KeyKPDivide:   111,

	glfw.KeyNumLock:    144,
	glfw.KeyScrollLock: 145,

	glfw.KeySemicolon:    186,
	glfw.KeyEqual:        187,
	glfw.KeyComma:        188,
	glfw.KeyMinus:        189,
	glfw.KeyPeriod:       190,
	glfw.KeySlash:        191,
	glfw.KeyGraveAccent:  192,
	glfw.KeyLeftBracket:  219,
	glfw.KeyBackslash:    220,
	glfw.KeyRightBracket: 221,
	glfw.KeyApostrophe:   222,
}

// keyCode translates a GLFW key to a DOM key code, 0 if the key has none.
// GLFW numbers letters and digits by their ASCII code already.
func keyCode(key glfw.Key) int {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ, key >= glfw.Key0 && key <= glfw.Key9:
		return int(key)
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return int(key-glfw.KeyF1) + 112
	}
	return keyCodes[key]
}

func buttonCode(b glfw.MouseButton) int {
	switch b {
	case glfw.MouseButtonLeft:
		return 1
	case glfw.MouseButtonMiddle:
		return 2
	case glfw.MouseButtonRight:
		return 3
	case glfw.MouseButton4:
		return 4
	case glfw.MouseButton5:
		return 5
	}
	return 0
}
