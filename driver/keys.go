package driver

import "strings"

// HostKey identifies a physical key independently of the window toolkit.
// Backends translate their own key codes to these values.
type HostKey uint8

const (
	HostKeyNone HostKey = iota
	HostKey1
	HostKey2
	HostKey3
	HostKey4
	HostKeyQ
	HostKeyW
	HostKeyE
	HostKeyR
	HostKeyA
	HostKeyS
	HostKeyD
	HostKeyF
	HostKeyZ
	HostKeyX
	HostKeyC
	HostKeyV
	HostKeySpace
	HostKeyEscape

	numHostKeys
)

var hostKeyNames = [numHostKeys]string{
	HostKeyNone:   "none",
	HostKey1:      "1",
	HostKey2:      "2",
	HostKey3:      "3",
	HostKey4:      "4",
	HostKeyQ:      "Q",
	HostKeyW:      "W",
	HostKeyE:      "E",
	HostKeyR:      "R",
	HostKeyA:      "A",
	HostKeyS:      "S",
	HostKeyD:      "D",
	HostKeyF:      "F",
	HostKeyZ:      "Z",
	HostKeyX:      "X",
	HostKeyC:      "C",
	HostKeyV:      "V",
	HostKeySpace:  "Space",
	HostKeyEscape: "Escape",
}

func (k HostKey) String() string {
	if k >= numHostKeys {
		return "HostKey(?)"
	}
	return hostKeyNames[k]
}

// KeySet is a set of host keys.
type KeySet uint64

// Keys returns a set holding the given keys.
func Keys(keys ...HostKey) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) With(k HostKey) KeySet { return s | 1<<k }
func (s KeySet) Has(k HostKey) bool    { return s&(1<<k) != 0 }

func (s KeySet) String() string {
	var names []string
	for k := HostKey(0); k < numHostKeys; k++ {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// FoldKeys returns the host keys of table whose native code reports down.
func FoldKeys[K comparable](table map[K]HostKey, down func(K) bool) KeySet {
	var keys KeySet
	for code, hk := range table {
		if down(code) {
			keys = keys.With(hk)
		}
	}
	return keys
}

// KeyLatch holds keys seen going down since the last poll, so that a tap
// that starts and ends between two polls still reads as down for one sample.
type KeyLatch struct {
	pending KeySet
}

func (l *KeyLatch) Press(k HostKey) {
	l.pending = l.pending.With(k)
}

// Merge returns held plus the latched keys and empties the latch.
func (l *KeyLatch) Merge(held KeySet) KeySet {
	keys := held | l.pending
	l.pending = 0
	return keys
}
