package driver

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Scheduler runs the per-frame cycle: input, a fixed number of instructions,
// one timer tick, render.
type Scheduler struct {
	core     Core
	input    *Input
	renderer *Renderer
	budget   int
	log      logrus.FieldLogger

	frames uint64

	// OnFrame, if set, is called after each completed frame.
	OnFrame func(frame uint64)
}

// NewScheduler returns a scheduler driving core with the parameters of cfg.
// A nil log uses the logrus standard logger.
func NewScheduler(core Core, cfg Config, log logrus.FieldLogger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		core:     core,
		input:    NewInput(cfg.Keymap),
		renderer: NewRenderer(cfg),
		budget:   cfg.TicksPerFrame,
		log:      log,
	}
}

// Frames returns the number of completed frames.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Frame runs one frame with keys as the host keyboard state and paints the
// result on surf.
//
// If the core faults the frame is abandoned where it stands: no further
// instruction, no timer tick, no render. The fault is returned for the caller
// to report.
func (s *Scheduler) Frame(keys KeySet, surf Surface) error {
	for _, ev := range s.input.Sample(keys) {
		s.log.WithFields(logrus.Fields{"key": fmt.Sprintf("%X", ev.Key), "pressed": ev.Pressed}).Debug("key event")
		s.core.KeyEvent(ev.Key, ev.Pressed)
	}

	for i := 0; i < s.budget; i++ {
		if err := s.core.Step(); err != nil {
			s.log.WithFields(logrus.Fields{"frame": s.frames, "step": i}).WithError(err).Debug("core fault")
			return fmt.Errorf("frame %d, step %d: %w", s.frames, i, err)
		}
	}
	s.core.TickTimers()

	if err := s.renderer.Render(surf, s.core.Display()); err != nil {
		return fmt.Errorf("frame %d: render: %w", s.frames, err)
	}

	s.frames++
	if s.OnFrame != nil {
		s.OnFrame(s.frames)
	}
	return nil
}

// Run drives frames until the host window is closed or a frame fails.
func (s *Scheduler) Run(host Host) error {
	s.log.WithField("budget", s.budget).Info("frame loop started")
	for {
		keys, open := host.Poll()
		if !open {
			s.log.WithField("frames", s.frames).Info("window closed")
			return nil
		}
		if err := s.Frame(keys, host); err != nil {
			return err
		}
	}
}
