// Package dmg wires the CPU, memory bus, GPU, timer and joypad into a
// runnable Game Boy core.
package dmg

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mpalmer/dmgo/dmg/cpu"
	"github.com/mpalmer/dmgo/dmg/memory"
	"github.com/mpalmer/dmgo/dmg/video"
)

// CyclesPerFrame is the fixed T-cycle budget of one 160x144 frame:
// 70224 = 456 cycles/line * 154 lines.
const CyclesPerFrame = 70224

// Emulator is the root struct: CPU, bus (which itself owns the GPU,
// timer and joypad) and basic run bookkeeping.
type Emulator struct {
	cpu *cpu.CPU
	bus *memory.Bus

	instructionCount uint64
	frameCount       uint64
}

func newEmulator(cart *memory.Cartridge, bootROM []byte) *Emulator {
	bus := memory.NewBus(cart, bootROM, slog.Default())
	e := &Emulator{
		cpu: cpu.New(bus),
		bus: bus,
	}
	if len(bootROM) == 0 {
		e.cpu.PC = 0x0100
	}
	return e
}

// New returns an emulator with no cartridge inserted.
func New() *Emulator {
	return newEmulator(memory.NewCartridge(), nil)
}

// NewWithFile loads the ROM at path and returns a ready emulator.
// bootROMPath may be empty, in which case execution starts directly at
// the cartridge entry point.
func NewWithFile(path, bootROMPath string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	slog.Debug("loaded ROM", "path", path, "size", len(data))

	var bootROM []byte
	if bootROMPath != "" {
		bootROM, err = os.ReadFile(bootROMPath)
		if err != nil {
			return nil, fmt.Errorf("reading boot ROM: %w", err)
		}
	}

	return newEmulator(memory.NewCartridgeWithData(data), bootROM), nil
}

// RunUntilFrame steps the CPU until the current frame's cycle budget is
// exhausted, ticking the bus (and through it the GPU and timer) after
// every instruction.
func (e *Emulator) RunUntilFrame() error {
	total := 0
	for total < CyclesPerFrame {
		cycles, err := e.cpu.Step()
		if err != nil {
			return fmt.Errorf("pc=0x%04X: %w", e.cpu.PC, err)
		}
		e.bus.Tick(cycles)
		e.instructionCount++
		total += cycles
	}
	e.frameCount++
	if e.frameCount%60 == 0 {
		slog.Debug("frame completed", "frame", e.frameCount, "pc", fmt.Sprintf("0x%04X", e.cpu.PC))
	}
	return nil
}

// GetCurrentFrame returns the GPU's framebuffer for the last completed
// frame (or the in-progress one, if called mid-frame).
func (e *Emulator) GetCurrentFrame() *video.FrameBuffer {
	return e.bus.GPU().FrameBuffer
}

func (e *Emulator) HandleKeyPress(key memory.JoypadKey)   { e.bus.Joypad().Press(key) }
func (e *Emulator) HandleKeyRelease(key memory.JoypadKey) { e.bus.Joypad().Release(key) }

func (e *Emulator) CPU() *cpu.CPU { return e.cpu }
func (e *Emulator) Bus() *memory.Bus { return e.bus }

func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }
func (e *Emulator) FrameCount() uint64       { return e.frameCount }
