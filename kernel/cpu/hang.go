package cpu

// Hang masks interrupts and parks the CPU on hlt forever. It is the kernel's
// terminal state and never returns.
//
//go:nosplit
func Hang() {
	DisableInterrupts()
	for {
		Halt()
	}
}
