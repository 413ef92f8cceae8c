//go:build headless

package main

import (
	"errors"

	"limgo/device/video/console"
)

func showInWindow(_ *console.Framebuffer, _ int) error {
	return errors.New("-window is not available in headless builds")
}
