package driver

import "github.com/p47t/chip8/v2"

// KeyEvent is a keypad state change.
type KeyEvent struct {
	Key     chip8.Key
	Pressed bool
}

// Input turns successive host key samples into keypad events.
type Input struct {
	keymap Keymap
	prev   KeySet
}

func NewInput(km Keymap) *Input {
	return &Input{keymap: km}
}

// Sample compares keys with the previous sample. It returns at most one press
// event, for the newly pressed keys, followed by at most one release event,
// for the newly released keys.
func (in *Input) Sample(keys KeySet) []KeyEvent {
	down := keys &^ in.prev
	up := in.prev &^ keys
	in.prev = keys

	var evs []KeyEvent
	if k, ok := in.keymap.Lookup(down); ok {
		evs = append(evs, KeyEvent{Key: k, Pressed: true})
	}
	if k, ok := in.keymap.Lookup(up); ok {
		evs = append(evs, KeyEvent{Key: k, Pressed: false})
	}
	return evs
}
