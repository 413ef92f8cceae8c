// Package kmain contains the kernel entry point and the startup sequence
// that takes the machine from the loader handoff to the halted state.
package kmain

import (
	"limgo/device/video/console"
	"limgo/kernel"
	"limgo/kernel/boot/limine"
	"limgo/kernel/cpu"
	"limgo/kernel/hal"
	"limgo/kernel/kfmt"
)

// stage is a state of the startup sequence. Stages run strictly in order
// and every failure moves straight to stageHalted.
type stage uint8

const (
	stageRevisionCheck stage = iota
	stageFramebufferValidate
	stageConsoleInit
	stageRender
	stageHalted
)

var (
	errUnsupportedRevision = &kernel.Error{Module: "kmain", Message: "bootloader does not support the requested base revision"}
	errNoFramebuffer       = &kernel.Error{Module: "kmain", Message: "bootloader did not provide a framebuffer"}
	errBadFramebuffer      = &kernel.Error{Module: "kmain", Message: "framebuffer is not a 32bpp RGB surface"}
	errNoConsole           = &kernel.Error{Module: "kmain", Message: "no console device detected"}
	errNoFont              = &kernel.Error{Module: "kmain", Message: "active console has no font"}

	baseRevisionSupportedFn = limine.BaseRevisionSupported
	framebufferCountFn      = limine.FramebufferCount
	framebufferInfoFn       = limine.GetFramebufferInfo
	bootloaderInfoFn        = limine.BootloaderInfo
	detectHardwareFn        = hal.DetectHardware
	activeConsoleFn         = hal.ActiveConsole

	// haltFn and panicFn never return outside of tests.
	haltFn  = cpu.Hang
	panicFn = kfmt.Panic
)

// sequencer holds the state that is handed from one stage to the next.
type sequencer struct {
	cons console.Device
	cur  console.Cursor
	err  *kernel.Error
}

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. This function is invoked by the rt0 assembly code
// once the loader has transferred control to the kernel with a valid stack.
//
// Kmain never returns: a successful boot ends with the CPU halted and a
// failed one with a kernel panic.
//
//go:noinline
func Kmain() {
	if err := run(); err != nil {
		panicFn(err)
		return
	}

	haltFn()
}

// run drives the sequencer until it reaches stageHalted and returns the
// error that caused the halt, if any.
func run() *kernel.Error {
	var seq sequencer
	for st := stageRevisionCheck; st != stageHalted; {
		st = seq.step(st)
	}

	return seq.err
}

// step executes st and returns the stage to run next.
func (seq *sequencer) step(st stage) stage {
	switch st {
	case stageRevisionCheck:
		return seq.checkRevision()
	case stageFramebufferValidate:
		return seq.validateFramebuffer()
	case stageConsoleInit:
		return seq.initConsole()
	case stageRender:
		return seq.render()
	default:
		return stageHalted
	}
}

func (seq *sequencer) fail(err *kernel.Error) stage {
	seq.err = err
	return stageHalted
}

func (seq *sequencer) checkRevision() stage {
	if !baseRevisionSupportedFn() {
		return seq.fail(errUnsupportedRevision)
	}

	kfmt.Printf("[kmain] boot protocol base revision %d\n", limine.RevisionSupported)
	return stageFramebufferValidate
}

func (seq *sequencer) validateFramebuffer() stage {
	info := framebufferInfoFn()
	if info == nil {
		return seq.fail(errNoFramebuffer)
	}

	if info.Address == 0 || info.Bpp != 32 || info.MemoryModel != limine.MemoryModelRGB || info.Pitch < info.Width*4 {
		return seq.fail(errBadFramebuffer)
	}

	kfmt.Printf("[kmain] using framebuffer 1 of %d\n", framebufferCountFn())
	kfmt.Printf("[kmain] framebuffer at 0x%x: %dx%d, pitch %d\n", info.Address, info.Width, info.Height, info.Pitch)
	return stageConsoleInit
}

func (seq *sequencer) initConsole() stage {
	detectHardwareFn()

	if seq.cons = activeConsoleFn(); seq.cons == nil {
		return seq.fail(errNoConsole)
	}

	if w, h := seq.cons.Dimensions(console.Characters); w == 0 || h == 0 {
		return seq.fail(errNoFont)
	}

	seq.cur = console.Cursor{}
	return stageRender
}

func (seq *sequencer) render() stage {
	name, version, _ := bootloaderInfoFn()
	Render(seq.cons, &seq.cur, name, version)
	return stageHalted
}
