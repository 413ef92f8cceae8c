// Package debugcon implements a write-only character device on top of the
// 0xE9 debug port exposed by QEMU and Bochs. The HAL uses it as the kfmt
// output sink so boot diagnostics are visible on the host even when no
// framebuffer is ever acquired.
package debugcon

import (
	"io"
	"limgo/device"
	"limgo/kernel"
	"limgo/kernel/cpu"
)

// Port is the I/O port of the debug console. Reading it returns Port itself
// when the emulator exposes the device.
const Port uint16 = 0xe9

var (
	portWriteByteFn = cpu.PortWriteByte
	portReadByteFn  = cpu.PortReadByte
)

// Device is a debug console driver. It implements io.Writer.
type Device struct {
	port uint16
}

// Write sends p to the debug port one byte at a time. It never fails.
func (d *Device) Write(p []byte) (int, error) {
	for _, b := range p {
		portWriteByteFn(d.port, b)
	}

	return len(p), nil
}

// DriverName returns the name of this driver.
func (d *Device) DriverName() string {
	return "debugcon"
}

// DriverVersion returns the version of this driver.
func (d *Device) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit initializes this driver.
func (d *Device) DriverInit(w io.Writer) *kernel.Error {
	d.port = Port
	return nil
}

// probeForDebugcon returns a driver when the emulator's debug port echoes its
// own address back; on real hardware the port floats and reads 0xff.
func probeForDebugcon() device.Driver {
	if portReadByteFn(Port) != uint8(Port) {
		return nil
	}

	return &Device{}
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderEarly,
		Probe: probeForDebugcon,
	})
}
