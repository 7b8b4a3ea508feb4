package game

import (
	"strings"
	"unicode/utf8"
)

// Special keys on the on-screen keyboard.
const (
	KeyEnter     = "ENTER"
	KeyBackspace = "⌫"
)

// Layout is the on-screen keyboard, top row first.
var Layout = [][]string{
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
	{KeyEnter, "Z", "X", "C", "V", "B", "N", "M", KeyBackspace},
}

// Input is the set of operations a key press can trigger. Both Game and
// Session satisfy it.
type Input interface {
	Type(ch rune) bool
	Backspace() bool
	Submit() bool
}

// Press dispatches a key label: ENTER submits, ⌫ (or BACKSPACE) erases, a
// single letter types. Anything else is ignored.
func Press(in Input, key string) bool {
	switch k := strings.ToUpper(strings.TrimSpace(key)); k {
	case KeyEnter:
		return in.Submit()
	case KeyBackspace, "BACKSPACE":
		return in.Backspace()
	default:
		if utf8.RuneCountInString(k) != 1 {
			return false
		}
		r, _ := utf8.DecodeRuneInString(k)
		return in.Type(r)
	}
}

// Key is one keyboard cap with the hint it should be coloured by.
// Special keys always carry Unknown.
type Key struct {
	Label   string  `json:"label"`
	Verdict Verdict `json:"verdict"`
}

// Keys pairs every key of Layout with its hint.
func Keys(h Hints) [][]Key {
	out := make([][]Key, len(Layout))
	for i, row := range Layout {
		out[i] = make([]Key, len(row))
		for j, label := range row {
			k := Key{Label: label}
			if utf8.RuneCountInString(label) == 1 && label != KeyBackspace {
				r, _ := utf8.DecodeRuneInString(label)
				k.Verdict = h.Of(r)
			}
			out[i][j] = k
		}
	}
	return out
}
