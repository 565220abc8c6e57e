package driver

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(budget int) Config {
	cfg := DefaultConfig()
	cfg.TicksPerFrame = budget
	cfg.Scale = 2
	return cfg
}

func TestFrameOrder(t *testing.T) {
	var tr trace
	core := newFakeCore(&tr)
	surf := &recSurface{tr: &tr}
	log, _ := nullLogger()
	s := NewScheduler(core, testConfig(3), log)

	require.NoError(t, s.Frame(Keys(HostKeyQ), surf))
	require.NoError(t, s.Frame(Keys(HostKeyW), surf))

	want := trace{
		"key 4 true", "step", "step", "step", "tick", "clear", "present",
		"key 5 true", "key 4 false", "step", "step", "step", "tick", "clear", "present",
	}
	if diff := cmp.Diff(want, tr); diff != "" {
		t.Errorf("call trace mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameCounts(t *testing.T) {
	for _, budget := range []int{0, 1, 20, 500} {
		var tr trace
		core := newFakeCore(&tr)
		surf := &recSurface{tr: &tr}
		log, _ := nullLogger()
		s := NewScheduler(core, testConfig(budget), log)

		const frames = 7
		for i := 0; i < frames; i++ {
			require.NoError(t, s.Frame(0, surf))
		}
		assert.Equal(t, budget*frames, core.steps, "budget %d", budget)
		assert.Equal(t, frames, core.ticks, "budget %d", budget)
		assert.Equal(t, frames, surf.presents, "budget %d", budget)
		assert.Equal(t, uint64(frames), s.Frames())
	}
}

func TestFrameFaultAbandonsFrame(t *testing.T) {
	var tr trace
	core := newFakeCore(&tr)
	core.faultAt = 6 // first step of the second frame
	surf := &recSurface{tr: &tr}
	log, hook := nullLogger()
	s := NewScheduler(core, testConfig(5), log)

	require.NoError(t, s.Frame(0, surf))
	err := s.Frame(0, surf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errFault))
	assert.EqualError(t, err, "frame 1, step 0: fake fault")

	assert.Equal(t, 6, core.steps)
	assert.Equal(t, 1, core.ticks, "no timer tick for the abandoned frame")
	assert.Equal(t, 1, surf.presents, "no render for the abandoned frame")
	assert.Equal(t, uint64(1), s.Frames())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level, "reporting the fault is left to the caller")
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, e.Level, e.Message)
	}
	assert.Equal(t, uint64(1), entry.Data["frame"])
	assert.Equal(t, 0, entry.Data["step"])
}

func TestFrameRenderError(t *testing.T) {
	var tr trace
	core := newFakeCore(&tr)
	surf := &recSurface{tr: &tr, presentErr: errors.New("lost context")}
	log, _ := nullLogger()
	s := NewScheduler(core, testConfig(1), log)

	err := s.Frame(0, surf)
	assert.ErrorContains(t, err, "lost context")
	assert.Equal(t, uint64(0), s.Frames())
}

func TestFrameLogsKeyEvents(t *testing.T) {
	var tr trace
	log, hook := nullLogger()
	s := NewScheduler(newFakeCore(&tr), testConfig(1), log)

	require.NoError(t, s.Frame(Keys(HostKeyV), &recSurface{tr: &tr}))

	var keyEntries []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "key event" {
			keyEntries = append(keyEntries, e)
		}
	}
	require.Len(t, keyEntries, 1)
	assert.Equal(t, logrus.DebugLevel, keyEntries[0].Level)
	assert.Equal(t, "F", keyEntries[0].Data["key"])
	assert.Equal(t, true, keyEntries[0].Data["pressed"])
}

func TestRun(t *testing.T) {
	var tr trace
	core := newFakeCore(&tr)
	host := &fakeHost{
		recSurface: recSurface{tr: &tr},
		samples:    []KeySet{0, Keys(HostKeyA), Keys(HostKeyA), 0},
	}
	log, _ := nullLogger()
	s := NewScheduler(core, testConfig(4), log)

	var seen []uint64
	s.OnFrame = func(frame uint64) { seen = append(seen, frame) }

	require.NoError(t, s.Run(host))
	assert.Equal(t, uint64(4), s.Frames())
	assert.Equal(t, []uint64{1, 2, 3, 4}, seen)
	assert.Equal(t, 16, core.steps)
	assert.Equal(t, 4, core.ticks)
	assert.Equal(t, 4, host.presents)

	var keys []string
	for _, call := range tr {
		if strings.HasPrefix(call, "key ") {
			keys = append(keys, call)
		}
	}
	assert.Equal(t, []string{"key 7 true", "key 7 false"}, keys)
}

func TestRunStopsOnFault(t *testing.T) {
	var tr trace
	core := newFakeCore(&tr)
	core.faultAt = 3
	host := &fakeHost{
		recSurface: recSurface{tr: &tr},
		samples:    make([]KeySet, 10),
	}
	log, _ := nullLogger()
	s := NewScheduler(core, testConfig(2), log)

	err := s.Run(host)
	assert.ErrorIs(t, err, errFault)
	assert.Equal(t, 2, host.polls)
	assert.Equal(t, uint64(1), s.Frames())
}
