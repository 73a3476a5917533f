package sdl

import "github.com/veandco/go-sdl2/sdl"

// keyCodes maps SDL key symbols without a direct ASCII counterpart to DOM
// key codes. Letters and digits are handled by keyCode.
var keyCodes = map[sdl.Keycode]int{
	sdl.K_BACKSPACE: 8,
	sdl.K_TAB:       9,
	sdl.K_CLEAR:     12,
	sdl.K_RETURN:    13,
	sdl.K_RETURN2:   13,
	sdl.K_KP_ENTER:  13,
	sdl.K_LSHIFT:    16,
	sdl.K_RSHIFT:    16,
	sdl.K_LCTRL:     17,
	sdl.K_RCTRL:     17,
	sdl.K_LALT:      18,
	sdl.K_RALT:      18,
	sdl.K_PAUSE:     19,
	sdl.K_CAPSLOCK:  20,
	sdl.K_ESCAPE:    27,
	sdl.K_SPACE:     32,
	sdl.K_PAGEUP:    33,
	sdl.K_PAGEDOWN:  34,
	sdl.K_END:       35,
	sdl.K_HOME:      36,
	sdl.K_LEFT:      37,
	sdl.K_UP:        38,
	sdl.K_RIGHT:     39,
	sdl.K_DOWN:      40,

	sdl.K_PRINTSCREEN: 44,
	sdl.K_INSERT:      45,
	sdl.K_DELETE:      46,
	sdl.K_LGUI:        91,
	sdl.K_RGUI:        91,

	sdl.K_KP_0:        96,
	sdl.K_KP_1:        97,
	sdl.K_KP_2:        98,
	sdl.K_KP_3:        99,
	sdl.K_KP_4:        100,
	sdl.K_KP_5:        101,
	sdl.K_KP_6:        102,
	sdl.K_KP_7:        103,
	sdl.K_KP_8:        104,
	sdl.K_KP_9:        105,
	sdl.K_KP_MULTIPLY: 106,
	sdl.K_KP_PLUS:     107,
	sdl.K_KP_MINUS:    109,
	sdl.K_KP_PERIOD:   110,
	sdl.K_KP_DIVIDE:   111,

	sdl.K_F1:  112,
	sdl.K_F2:  113,
	sdl.K_F3:  114,
	sdl.K_F4:  115,
	sdl.K_F5:  116,
	sdl.K_F6:  117,
	sdl.K_F7:  118,
	sdl.K_F8:  119,
	sdl.K_F9:  120,
	sdl.K_F10: 121,
	sdl.K_F11: 122,
	sdl.K_F12: 123,

	sdl.K_NUMLOCKCLEAR: 144,
	sdl.K_SCROLLLOCK:   145,

	sdl.K_SEMICOLON:    186,
	sdl.K_EQUALS:       187,
	sdl.K_COMMA:        188,
	sdl.K_MINUS:        189,
	sdl.K_PERIOD:       190,
	sdl.K_SLASH:        191,
	sdl.K_BACKQUOTE:    192,
	sdl.K_LEFTBRACKET:  219,
	sdl.K_BACKSLASH:    220,
	sdl.K_RIGHTBRACKET: 221,
	sdl.K_QUOTE:        222,
}

// keyCode translates an SDL key symbol to a DOM key code, 0 if the key
// has none.
func keyCode(sym sdl.Keycode) int {
	switch {
	case sym >= sdl.K_a && sym <= sdl.K_z:
		return int(sym-sdl.K_a) + 'A'
	case sym >= sdl.K_0 && sym <= sdl.K_9:
		return int(sym-sdl.K_0) + '0'
	}
	return keyCodes[sym]
}

// buttonCode translates an SDL mouse button to the DOM "which" numbering.
// SDL already numbers left, middle and right as 1, 2 and 3.
func buttonCode(b uint8) int {
	switch b {
	case sdl.BUTTON_LEFT:
		return 1
	case sdl.BUTTON_MIDDLE:
		return 2
	case sdl.BUTTON_RIGHT:
		return 3
	case sdl.BUTTON_X1:
		return 4
	case sdl.BUTTON_X2:
		return 5
	}
	return 0
}
