// Package hal probes the registered device drivers and wires the ones it
// finds into the rest of the kernel: the first console becomes the active
// console and the first byte sink becomes the kfmt output sink.
package hal

import (
	"bytes"
	"io"
	"limgo/device"
	"limgo/device/video/console"
	"limgo/device/video/console/font"
	"limgo/kernel/kfmt"
	"sort"

	// Drivers register themselves when imported
	_ "limgo/device/debugcon"
)

// DefaultFontName is the font selected for the active console when it is
// available.
const DefaultFontName = "vga8x16"

// managedDevices contains the devices discovered by the HAL.
type managedDevices struct {
	activeConsole console.Device
	logSink       io.Writer

	// activeDrivers tracks all initialized device drivers.
	activeDrivers []device.Driver
}

var (
	devices managedDevices
	strBuf  bytes.Buffer

	setOutputSinkFn = kfmt.SetOutputSink
)

// ActiveConsole returns the currently active console or nil if no console
// has been detected.
func ActiveConsole() console.Device {
	return devices.activeConsole
}

// DetectHardware probes for hardware devices and initializes the appropriate
// drivers.
func DetectHardware() {
	// Get driver list and sort by detection priority
	drivers := device.DriverList()
	sort.Sort(drivers)

	probe(drivers)
}

// probe executes the probe function for each driver and invokes
// onDriverInit for each successfully initialized driver.
func probe(driverInfoList device.DriverInfoList) {
	var w = kfmt.PrefixWriter{}

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		// A sink installed by an earlier driver receives the output of the
		// drivers that follow it.
		w.Sink = kfmt.GetOutputSink()

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		onDriverInit(info, drv)
		kfmt.Fprintf(&w, "initialized\n")
		devices.activeDrivers = append(devices.activeDrivers, drv)
	}
}

// onDriverInit is invoked by probe() whenever a piece of hardware is detected
// and successfully initialized.
func onDriverInit(info *device.DriverInfo, drv device.Driver) {
	switch drvImpl := drv.(type) {
	case console.Device:
		onConsoleInit(drvImpl)
	case io.Writer:
		if devices.logSink != nil {
			return
		}

		devices.logSink = drvImpl
		setOutputSinkFn(drvImpl)
	}
}

// onConsoleInit is invoked whenever a console is initialized. If this is the
// first found console it automatically becomes the active console and, if
// the console supports fonts, the default font (or the one that best fits
// the console resolution) is attached to it.
func onConsoleInit(cons console.Device) {
	if devices.activeConsole != nil {
		return
	}

	devices.activeConsole = cons

	if fontSetter, ok := cons.(console.FontSetter); ok {
		selFont := font.FindByName(DefaultFontName)
		if selFont == nil {
			consW, consH := cons.Dimensions(console.Pixels)
			selFont = font.BestFit(consW, consH)
		}

		fontSetter.SetFont(selFont)
	}
}
