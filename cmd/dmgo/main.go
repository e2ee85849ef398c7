package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/mpalmer/dmgo/dmg"
	"github.com/mpalmer/dmgo/dmg/backend"
	"github.com/mpalmer/dmgo/dmg/memory"
)

const frameTime = time.Second / 60

func main() {
	app := cli.NewApp()
	app.Name = "dmgo"
	app.Description = "A Game Boy (DMG) emulator core"
	app.Usage = "dmgo [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "boot-rom",
			Usage: "Path to a boot ROM image (optional)",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Presentation backend: terminal or sdl2",
			Value: "terminal",
		},
		cli.BoolFlag{
			Name:  "fixed-ly",
			Usage: "Report LY as a constant 0x90 (for CPU test ROMs that poll it)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgo exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	emu, err := dmg.NewWithFile(romPath, c.String("boot-rom"))
	if err != nil {
		return err
	}

	if c.Bool("fixed-ly") {
		emu.Bus().GPU().FixedLY = true
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames option with a positive value")
		}
		return runHeadless(emu, frames)
	}

	return runInteractive(emu, c.String("backend"))
}

func runHeadless(emu *dmg.Emulator, frames int) error {
	for i := 0; i < frames; i++ {
		if err := emu.RunUntilFrame(); err != nil {
			return err
		}
		if (i+1)%10 == 0 {
			slog.Info("frame progress", "completed", i+1, "total", frames)
		}
	}
	slog.Info("headless execution completed", "frames", frames)
	return nil
}

func runInteractive(emu *dmg.Emulator, backendName string) error {
	var be backend.Backend
	switch backendName {
	case "sdl2":
		be = backend.NewSDL2()
	default:
		be = backend.NewTerminal()
	}

	if err := be.Init(backend.Config{Title: "dmgo", Scale: 2}); err != nil {
		return err
	}
	defer be.Cleanup()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-signals:
			slog.Info("received signal to stop")
			return nil
		case <-ticker.C:
			start := time.Now()
			if err := emu.RunUntilFrame(); err != nil {
				return err
			}
			events, err := be.Update(emu.GetCurrentFrame())
			if err != nil {
				return err
			}
			if elapsed := time.Since(start); elapsed > frameTime {
				slog.Warn("frame overran its time budget", "elapsed", elapsed, "budget", frameTime)
			}
			if handleEvents(emu, events) {
				return nil
			}
		}
	}
}

func handleEvents(emu *dmg.Emulator, events []backend.InputEvent) (quit bool) {
	for _, ev := range events {
		if ev.Action == backend.ActionQuit {
			return true
		}
		key, ok := actionToKey(ev.Action)
		if !ok {
			continue
		}
		if ev.Type == backend.EventPress {
			emu.HandleKeyPress(key)
		} else {
			emu.HandleKeyRelease(key)
		}
	}
	return false
}

func actionToKey(a backend.Action) (memory.JoypadKey, bool) {
	switch a {
	case backend.ActionUp:
		return memory.JoypadUp, true
	case backend.ActionDown:
		return memory.JoypadDown, true
	case backend.ActionLeft:
		return memory.JoypadLeft, true
	case backend.ActionRight:
		return memory.JoypadRight, true
	case backend.ActionA:
		return memory.JoypadA, true
	case backend.ActionB:
		return memory.JoypadB, true
	case backend.ActionSelect:
		return memory.JoypadSelect, true
	case backend.ActionStart:
		return memory.JoypadStart, true
	}
	return 0, false
}
