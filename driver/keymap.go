package driver

import "github.com/p47t/chip8/v2"

// Binding maps a host key to a keypad key.
type Binding struct {
	Host HostKey
	Key  chip8.Key
}

// Keymap is an ordered list of bindings. Earlier bindings take priority when
// several bound keys are down at once.
type Keymap []Binding

// DefaultKeymap lays the keypad over the left side of a QWERTY keyboard.
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var DefaultKeymap = Keymap{
	{HostKey1, 0x1}, {HostKey2, 0x2}, {HostKey3, 0x3}, {HostKey4, 0xC},
	{HostKeyQ, 0x4}, {HostKeyW, 0x5}, {HostKeyE, 0x6}, {HostKeyR, 0xD},
	{HostKeyA, 0x7}, {HostKeyS, 0x8}, {HostKeyD, 0x9}, {HostKeyF, 0xE},
	{HostKeyZ, 0xA}, {HostKeyX, 0x0}, {HostKeyC, 0xB}, {HostKeyV, 0xF},
}

// Lookup returns the keypad key of the first binding whose host key is in
// keys.
func (km Keymap) Lookup(keys KeySet) (chip8.Key, bool) {
	for _, b := range km {
		if keys.Has(b.Host) {
			return b.Key, true
		}
	}
	return 0, false
}
