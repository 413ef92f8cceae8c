// Package limine implements the kernel side of the Limine boot protocol.
//
// The loader scans the kernel image for request structures (identified by
// their magic IDs) before jumping to the entry point and fills in their
// response pointers. This package declares the requests the kernel needs and
// decodes the responses. Every field written by the loader is read with an
// atomic load so the compiler can neither cache nor elide the access.
package limine

import (
	"sync/atomic"
	"unsafe"
)

// The magic values shared by all request IDs.
const (
	commonMagic0 = 0xc7b1dd30df4c8b88
	commonMagic1 = 0x0a82e883a194f07b
)

// RevisionSupported is the base revision requested by the kernel.
const RevisionSupported = 2

// MemoryModelRGB is the only framebuffer memory model defined by the protocol.
const MemoryModelRGB uint8 = 1

// maxCStringLen bounds the scan for the terminator of loader supplied strings.
const maxCStringLen = 128

// FramebufferRequest asks the loader for the list of available framebuffers.
type FramebufferRequest struct {
	ID       [4]uint64
	Revision uint64

	// Response is populated by the loader with the address of a
	// framebufferResponse.
	Response uintptr
}

type framebufferResponse struct {
	Revision         uint64
	FramebufferCount uint64

	// Framebuffers points to an array of FramebufferCount pointers to
	// FramebufferInfo structures.
	Framebuffers uintptr
}

// FramebufferInfo describes a linear framebuffer as reported by the loader.
// Its layout matches the protocol's framebuffer structure.
type FramebufferInfo struct {
	// Address is the (higher-half) virtual address of the framebuffer.
	Address uintptr

	// Width and height in pixels.
	Width, Height uint64

	// Row pitch in bytes.
	Pitch uint64

	// Bits per pixel.
	Bpp uint16

	MemoryModel    uint8
	RedMaskSize    uint8
	RedMaskShift   uint8
	GreenMaskSize  uint8
	GreenMaskShift uint8
	BlueMaskSize   uint8
	BlueMaskShift  uint8

	_ [7]uint8

	EDIDSize uint64
	EDID     uintptr
}

// BootloaderInfoRequest asks the loader to identify itself.
type BootloaderInfoRequest struct {
	ID       [4]uint64
	Revision uint64
	Response uintptr
}

type bootloaderInfoResponse struct {
	Revision uint64
	Name     uintptr
	Version  uintptr
}

var (
	// baseRevision is the base revision tag. The loader zeroes the third
	// word if it supports the requested revision.
	baseRevision = [3]uint64{0xf9562b2d5c95a6c8, 0x6a7b384944536bdc, RevisionSupported}

	framebufferRequest = FramebufferRequest{
		ID: [4]uint64{commonMagic0, commonMagic1, 0x9d5827dcd881dd75, 0xa3148604f6fab11b},
	}

	bootloaderInfoRequest = BootloaderInfoRequest{
		ID: [4]uint64{commonMagic0, commonMagic1, 0xf55038d8e2a1202f, 0x279426fcf5f59740},
	}
)

// BaseRevisionSupported returns true if the loader acknowledged the base
// revision requested by the kernel.
func BaseRevisionSupported() bool {
	return atomic.LoadUint64(&baseRevision[2]) == 0
}

// FramebufferCount returns the number of framebuffers reported by the loader
// or 0 if the framebuffer request was not answered.
func FramebufferCount() uint64 {
	resp := loadFramebufferResponse()
	if resp == nil {
		return 0
	}

	return atomic.LoadUint64(&resp.FramebufferCount)
}

// GetFramebufferInfo returns the first framebuffer reported by the loader or
// nil if the request was not answered or no framebuffer is available.
func GetFramebufferInfo() *FramebufferInfo {
	resp := loadFramebufferResponse()
	if resp == nil || atomic.LoadUint64(&resp.FramebufferCount) < 1 {
		return nil
	}

	list := atomic.LoadUintptr(&resp.Framebuffers)
	if list == 0 {
		return nil
	}

	first := atomic.LoadUintptr((*uintptr)(unsafe.Pointer(list)))
	if first == 0 {
		return nil
	}

	return (*FramebufferInfo)(unsafe.Pointer(first))
}

// BootloaderInfo returns the name and version reported by the loader. The
// ok flag is false if the request was not answered.
func BootloaderInfo() (name, version string, ok bool) {
	respPtr := atomic.LoadUintptr(&bootloaderInfoRequest.Response)
	if respPtr == 0 {
		return "", "", false
	}

	resp := (*bootloaderInfoResponse)(unsafe.Pointer(respPtr))
	return cString(atomic.LoadUintptr(&resp.Name)), cString(atomic.LoadUintptr(&resp.Version)), true
}

func loadFramebufferResponse() *framebufferResponse {
	respPtr := atomic.LoadUintptr(&framebufferRequest.Response)
	if respPtr == 0 {
		return nil
	}

	return (*framebufferResponse)(unsafe.Pointer(respPtr))
}

// cString returns a string that aliases the NUL-terminated string at addr.
// Strings longer than maxCStringLen are truncated.
func cString(addr uintptr) string {
	if addr == 0 {
		return ""
	}

	var n int
	for ; n < maxCStringLen; n++ {
		if *(*byte)(unsafe.Pointer(addr + uintptr(n))) == 0 {
			break
		}
	}

	return unsafe.String((*byte)(unsafe.Pointer(addr)), n)
}
