package input

import "strconv"

// keyNames maps DOM key codes to the canonical key names.
var keyNames = map[int]string{
	8: "backspace", 9: "tab", 12: "numclear", 13: "enter",
	16: "shift", 17: "control", 18: "alt", 19: "pausebreak", 20: "capslock", 27: "escape",
	32: "space", 33: "pageup", 34: "pagedown", 35: "end", 36: "home",
	37: "left", 38: "up", 39: "right", 40: "down",
	44: "printscreen", 45: "insert", 46: "del", 91: "windows",
	96: "numpad0", 97: "numpad1", 98: "numpad2", 99: "numpad3", 100: "numpad4",
	101: "numpad5", 102: "numpad6", 103: "numpad7", 104: "numpad8", 105: "numpad9",
	106: "multiply", 107: "add", 109: "subtract", 110: "decimal", 111: "divide",
	112: "f1", 113: "f2", 114: "f3", 115: "f4", 116: "f5", 117: "f6",
	118: "f7", 119: "f8", 120: "f9", 121: "f10", 122: "f11", 123: "f12",
	144: "numlock", 145: "scrolllock",
	186: "semicolon", 187: "equals", 188: "comma", 189: "minus", 190: "period",
	191: "slash", 192: "accent", 219: "lbracket", 220: "backslash", 221: "rbracket", 222: "quote",
}

// aliases name the shifted symbol of a key.
var aliases = map[string]int{
	"colon":       186,
	"plus":        187,
	"lessthan":    188,
	"underscore":  189,
	"greaterthan": 190,
	"question":    191,
	"atilda":      192,
	"verticalbar": 220,
}

// Codes maps every key name, aliases included, to its DOM key code. Digits
// and letters are named by their upper case character ("0", "A").
var Codes = map[string]int{}

func init() {
	for _, c := range "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		keyNames[int(c)] = string(c)
	}
	for code, name := range keyNames {
		Codes[name] = code
	}
	for name, code := range aliases {
		Codes[name] = code
	}
}

// KeyName returns the canonical name of a key code. Codes outside the table
// are named "code<N>".
func KeyName(code int) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return "code" + strconv.Itoa(code)
}

// canonical resolves an alias or canonical name to the canonical name.
func canonical(name string) string {
	if code, ok := Codes[name]; ok {
		return KeyName(code)
	}
	return name
}
