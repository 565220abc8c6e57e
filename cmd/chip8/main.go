package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/p47t/chip8/v2"
	"github.com/p47t/chip8/v2/driver"
)

func init() {
	// GLFW and SDL event handling must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, openHost))
}

// hostOpener creates the window backend once the ROM is loaded.
type hostOpener func(backend string, cfg driver.Config) (driver.Host, error)

func run(args []string, stdout, stderr io.Writer, open hostOpener) int {
	cli, ok, err := parseArgs(args, stdout, stderr)
	var exit exitRequest
	if errors.As(err, &exit) {
		return int(exit)
	}
	if err != nil {
		fmt.Fprintf(stderr, "chip8: %v\n", err)
		return 1
	}
	if !ok {
		return 0
	}

	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.Level(cli.LogLevel))
	log := logrus.WithField("rom", cli.ROMs[0])

	cfg := driver.DefaultConfig()
	cfg.Scale = cli.Scale
	cfg.TicksPerFrame = cli.Ticks

	sys := chip8.NewSystem()
	size, err := driver.Boot(sys, cli.ROMs[0])
	if err != nil {
		return fatalf(stderr, "failed to load rom: %v", err)
	}
	log.WithField("size", size).Info("rom loaded")

	host, err := open(cli.Backend, cfg)
	if err != nil {
		return fatalf(stderr, "failed to open %s window: %v", cli.Backend, err)
	}
	defer func() {
		if err := host.Close(); err != nil {
			log.WithError(err).Warn("closing window")
		}
	}()
	log.WithField("backend", cli.Backend).Info("window opened")

	sched := driver.NewScheduler(sys, cfg, logrus.StandardLogger())
	if cli.Debug {
		sched.OnFrame = func(uint64) { sys.Print() }
	}
	if err := sched.Run(host); err != nil {
		log.WithError(err).Error("emulation stopped")
		return 1
	}
	return 0
}

func openHost(backend string, cfg driver.Config) (driver.Host, error) {
	switch backend {
	case "sdl":
		h, err := newSDLHost(cfg)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		h, err := newGLFWHost(cfg)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}

func fatalf(w io.Writer, format string, args ...any) int {
	fmt.Fprintf(w, "fatal error:")
	fmt.Fprintf(w, "\n\t%s\n", fmt.Sprintf(format, args...))
	return 1
}
