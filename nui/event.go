package nui

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/size"
)

var buttons = map[glfw.MouseButton]mouse.Button{
	glfw.MouseButtonLeft:   mouse.ButtonLeft,
	glfw.MouseButtonMiddle: mouse.ButtonMiddle,
	glfw.MouseButtonRight:  mouse.ButtonRight,
}

var keys = map[glfw.Key]key.Code{
	glfw.KeyEscape: key.CodeEscape,
	glfw.KeyR:      key.CodeR,
	glfw.KeyP:      key.CodeP,
	glfw.KeyK:      key.CodeK,
	glfw.KeyEqual:  key.CodeEqualSign,
	glfw.KeyMinus:  key.CodeHyphenMinus,
}

// scale converts window coordinates to framebuffer pixels.
func (w *Window) scale(x, y float64) (float32, float32) {
	ww, wh := w.win.GetSize()
	fw, fh := w.win.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return float32(x), float32(y)
	}
	return float32(x * float64(fw) / float64(ww)), float32(y * float64(fh) / float64(wh))
}

func (w *Window) onMouseButton(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	e := mouse.Event{X: w.x, Y: w.y, Button: buttons[b]}
	switch action {
	case glfw.Press:
		e.Direction = mouse.DirPress
		w.pressed, w.down = b, true
	case glfw.Release:
		e.Direction = mouse.DirRelease
		if w.pressed == b {
			w.down = false
		}
	default:
		return
	}
	w.send(e)
}

func (w *Window) onCursorPos(_ *glfw.Window, x, y float64) {
	w.x, w.y = w.scale(x, y)
	if w.down {
		w.send(mouse.Event{X: w.x, Y: w.y, Button: buttons[w.pressed], Direction: mouse.DirNone})
	}
}

func (w *Window) onScroll(_ *glfw.Window, _, dy float64) {
	b := mouse.ButtonWheelDown
	if dy > 0 {
		b = mouse.ButtonWheelUp
	}
	w.send(mouse.Event{X: w.x, Y: w.y, Button: b, Direction: mouse.DirStep})
}

func (w *Window) onKey(_ *glfw.Window, k glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	code, ok := keys[k]
	if !ok || action != glfw.Press {
		return
	}
	w.send(key.Event{Code: code, Direction: key.DirPress})
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.dirty = true
	w.send(size.Event{WidthPx: width, HeightPx: height})
}
