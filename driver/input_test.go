package driver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInputTransitions(t *testing.T) {
	type step struct {
		keys KeySet
		want []KeyEvent
	}
	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "press hold release",
			steps: []step{
				{Keys(HostKeyW), []KeyEvent{{0x5, true}}},
				{Keys(HostKeyW), nil},
				{Keys(HostKeyW), nil},
				{0, []KeyEvent{{0x5, false}}},
				{0, nil},
			},
		},
		{
			name: "simultaneous press reports first in priority",
			steps: []step{
				{Keys(HostKeyV, HostKeyQ), []KeyEvent{{0x4, true}}},
				{0, []KeyEvent{{0x4, false}}},
			},
		},
		{
			name: "press before release in the same sample",
			steps: []step{
				{Keys(HostKeyQ), []KeyEvent{{0x4, true}}},
				{Keys(HostKeyE), []KeyEvent{{0x6, true}, {0x4, false}}},
			},
		},
		{
			name: "held key does not mask a new press",
			steps: []step{
				{Keys(HostKey1), []KeyEvent{{0x1, true}}},
				{Keys(HostKey1, HostKeyX), []KeyEvent{{0x0, true}}},
				{Keys(HostKeyX), []KeyEvent{{0x1, false}}},
			},
		},
		{
			name: "unmapped keys are ignored",
			steps: []step{
				{Keys(HostKeySpace), nil},
				{Keys(HostKeySpace, HostKeyEscape), nil},
				{0, nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput(DefaultKeymap)
			for i, st := range tt.steps {
				got := in.Sample(st.keys)
				if diff := cmp.Diff(st.want, got); diff != "" {
					t.Errorf("sample %d (%v) mismatch (-want +got):\n%s", i, st.keys, diff)
				}
			}
		})
	}
}
