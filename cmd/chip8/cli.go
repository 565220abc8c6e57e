package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/p47t/chip8/v2/driver"
)

type CLI struct {
	ROMs []string `arg:"" optional:"" name:"romfile" help:"CHIP-8 program to run."`

	Backend  string   `name:"backend" help:"Window backend (${enum})." enum:"glfw,sdl" default:"glfw"`
	Scale    int      `name:"scale" help:"Window pixels per CHIP-8 pixel." default:"${scale}"`
	Ticks    int      `name:"ticks" help:"Instructions executed per frame." default:"${ticks}"`
	LogLevel logLevel `name:"log-level" help:"${log_help}" default:"info"`
	Debug    bool     `name:"debug" help:"Dump CPU registers to the terminal after each frame."`
}

var vars = kong.Vars{
	"scale":    strconv.Itoa(driver.Scale),
	"ticks":    strconv.Itoa(driver.TicksPerFrame),
	"log_help": "Log level: panic, fatal, error, warn, info, debug or trace.",
}

// exitRequest is returned by parseArgs when kong asked to end the process,
// after printing --help for instance.
type exitRequest int

func (e exitRequest) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// parseArgs parses the command line. ok is false, with a nil error, when the
// usage was printed because there was not exactly one ROM argument.
func parseArgs(args []string, stdout, stderr io.Writer) (cli CLI, ok bool, err error) {
	exit := -1
	parser, err := kong.New(&cli,
		kong.Name("chip8"),
		kong.Description("CHIP-8 emulator."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exit < 0 {
				exit = code
			}
		}),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	if exit >= 0 {
		return cli, false, exitRequest(exit)
	}
	if err != nil {
		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context != nil {
			perr.Context.PrintUsage(true)
		}
		return cli, false, err
	}

	if len(cli.ROMs) != 1 {
		return cli, false, ctx.PrintUsage(true)
	}
	if cli.Scale < 1 {
		return cli, false, fmt.Errorf("--scale must be at least 1, got %d", cli.Scale)
	}
	if cli.Ticks < 1 {
		return cli, false, fmt.Errorf("--ticks must be at least 1, got %d", cli.Ticks)
	}
	return cli, true, nil
}

type logLevel logrus.Level

// Decode parses a logrus level name.
//
// Implements kong.MapperValue interface.
func (l *logLevel) Decode(ctx *kong.DecodeContext) error {
	var name string
	if err := ctx.Scan.PopValueInto("level", &name); err != nil {
		return err
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	*l = logLevel(lvl)
	return nil
}
