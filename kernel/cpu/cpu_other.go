//go:build !amd64

package cpu

// The kernel only runs on amd64. These definitions let host tools that share
// the kernel's console and logging packages build on other architectures.

// DisableInterrupts is a no-op.
func DisableInterrupts() {}

// Halt blocks the calling goroutine forever.
func Halt() {
	select {}
}

// PortWriteByte discards val.
func PortWriteByte(port uint16, val uint8) {}

// PortReadByte returns 0xff, the value read from a port with no device
// behind it.
func PortReadByte(port uint16) uint8 {
	return 0xff
}
