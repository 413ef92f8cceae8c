package main

import "limgo/kernel/kmain"

// main makes a dummy call to the actual kernel main entrypoint function. It
// is intentionally defined to prevent the Go compiler from optimizing away the
// real kernel code. The loader jumps to Kmain through the rt0 trampoline, not
// through main.
func main() {
	kmain.Kmain()
}
