package console

import "limgo/kernel/boot/limine"

var (
	mapFramebufferFn     = MapFramebuffer
	getFramebufferInfoFn = limine.GetFramebufferInfo
)
