// Package cpu exposes the handful of privileged amd64 instructions the kernel
// needs. The function bodies live in cpu_amd64.s.
package cpu

// DisableInterrupts masks maskable interrupts (cli).
func DisableInterrupts()

// Halt stops instruction execution until the next interrupt (hlt). With
// interrupts disabled this never resumes.
func Halt()

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8
