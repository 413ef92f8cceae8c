//go:build !amd64

package cpu

import "testing"

func TestPortReadByteFloats(t *testing.T) {
	for _, port := range []uint16{0x00, 0xe9, 0x3f8} {
		if got := PortReadByte(port); got != 0xff {
			t.Errorf("expected port 0x%x to read 0xff; got 0x%x", port, got)
		}
	}

	// Writes are discarded
	PortWriteByte(0xe9, 'A')
	DisableInterrupts()
}
