// Package nui opens a window with an OpenGL 4.1 core context and delivers
// its input as x/mobile events on the main thread.
package nui

import (
	"runtime"
	"sync"
	"time"

	"dasa.cc/hyperbolic"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

func init() {
	// glfw and the GL context belong to the thread that created them.
	runtime.LockOSThread()
}

type Options struct {
	Width, Height int
	Title         string
}

// Window is a glfw window with a queue of funcs to run on its thread.
type Window struct {
	win   *glfw.Window
	funcs chan func()

	handlers []func(e interface{})

	// cursor position in framebuffer pixels
	x, y    float32
	pressed glfw.MouseButton
	down    bool

	dirty bool

	// mu orders wakeups from other goroutines against Destroy.
	mu     sync.Mutex
	done   chan struct{}
	closed bool
}

// Open creates the window and makes its context current. It must be called
// from the main goroutine.
func Open(opt Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(opt.Width, opt.Height, opt.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	glfw.SwapInterval(1)
	hyperbolic.Logger().Info("opengl", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	w := &Window{win: win, funcs: make(chan func(), 64), done: make(chan struct{}), dirty: true}
	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetCursorPosCallback(w.onCursorPos)
	win.SetScrollCallback(w.onScroll)
	win.SetKeyCallback(w.onKey)
	win.SetFramebufferSizeCallback(w.onFramebufferSize)
	win.SetRefreshCallback(func(*glfw.Window) { w.dirty = true })
	return w, nil
}

// Handle adds f to the receivers of window events.
func (w *Window) Handle(f func(e interface{})) { w.handlers = append(w.handlers, f) }

// Do queues f to run on the window thread and wakes the event loop. It is
// safe to call from any goroutine; once the window is destroyed f is
// dropped.
func (w *Window) Do(f func()) {
	select {
	case w.funcs <- f:
	case <-w.done:
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		glfw.PostEmptyEvent()
	}
}

// Invalidate requests a redraw; window thread only.
func (w *Window) Invalidate() { w.dirty = true }

// Close asks the event loop to return. It is safe to call from any
// goroutine, and does nothing after Destroy.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.win.SetShouldClose(true)
		glfw.PostEmptyEvent()
	}
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) { return w.win.GetFramebufferSize() }

// SetTitle sets the window title; window thread only.
func (w *Window) SetTitle(s string) { w.win.SetTitle(s) }

// Loop processes events until the window closes. Each pass calls update,
// then draw if the window needs repainting. While update reports busy the
// loop wakes every tick even without events.
func (w *Window) Loop(tick time.Duration, update func() (busy bool), draw func()) {
	for !w.win.ShouldClose() {
		busy := update()
		if w.dirty {
			w.dirty = false
			draw()
			w.win.SwapBuffers()
		}
		if busy {
			glfw.WaitEventsTimeout(tick.Seconds())
		} else {
			glfw.WaitEvents()
		}
		w.drain()
	}
}

func (w *Window) drain() {
	for {
		select {
		case f := <-w.funcs:
			f()
		default:
			return
		}
	}
}

// Destroy releases the window and terminates glfw. Pending and later Do
// calls return without running.
func (w *Window) Destroy() {
	w.shut()
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) shut() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.done)
	}
}

func (w *Window) send(e interface{}) {
	for _, f := range w.handlers {
		f(e)
	}
}
