//go:build !headless

package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"limgo/device/video/console"
)

// previewWindow shows a static framebuffer snapshot until the window is
// closed or Escape is pressed.
type previewWindow struct {
	frame    *image.RGBA
	img      *ebiten.Image
	uploaded bool
}

func newPreviewWindow(fb *console.Framebuffer, factor int) *previewWindow {
	return &previewWindow{frame: scaleImage(toRGBA(fb), factor)}
}

// Update implements ebiten.Game.
func (pw *previewWindow) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (pw *previewWindow) Draw(screen *ebiten.Image) {
	if !pw.uploaded {
		b := pw.frame.Bounds()
		pw.img = ebiten.NewImage(b.Dx(), b.Dy())
		pw.img.WritePixels(pw.frame.Pix)
		pw.uploaded = true
	}

	screen.DrawImage(pw.img, nil)
}

// Layout implements ebiten.Game.
func (pw *previewWindow) Layout(_, _ int) (int, int) {
	b := pw.frame.Bounds()
	return b.Dx(), b.Dy()
}

func showInWindow(fb *console.Framebuffer, factor int) error {
	pw := newPreviewWindow(fb, factor)
	w, h := pw.Layout(0, 0)

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("limgo framebuffer preview")
	ebiten.SetWindowClosingHandled(true)

	return ebiten.RunGame(pw)
}
