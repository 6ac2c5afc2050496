// Command hyperview shows a hyperbolic tiling in a window.
//
// Drag with the primary button or one finger to move through the plane.
// Keys: r recenters, p cycles projections, k cycles kinds, = and - change
// depth, escape quits. Commands typed on the terminal do the same; type
// help for a list.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"dasa.cc/hyperbolic"
	"dasa.cc/hyperbolic/config"
	"dasa.cc/hyperbolic/console"
	"dasa.cc/hyperbolic/gesture"
	"dasa.cc/hyperbolic/glw"
	"dasa.cc/hyperbolic/nui"
	"dasa.cc/hyperbolic/projection"
	"dasa.cc/hyperbolic/scene"
	"dasa.cc/hyperbolic/tiling"

	"github.com/chzyer/readline"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/size"
)

var flagConsole = flag.Bool("console", true, "read commands from the terminal")

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := cfg.Log.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()
	hyperbolic.SetLogger(logger)

	if err := run(cfg); err != nil {
		logger.Error("hyperview", zap.Error(err))
		os.Exit(1)
	}
}

type app struct {
	win    *nui.Window
	scene  *scene.Scene
	render *glw.Renderer
	filter gesture.EventFilter
}

func run(cfg config.Config) error {
	s, err := scene.New(cfg.Generator(), cfg.Tiling, cfg.Projection)
	if err != nil {
		return err
	}
	s.Debounce = cfg.Debounce
	s.View().Sensitivity = cfg.Sensitivity

	win, err := nui.Open(nui.Options{Width: cfg.Window.Width, Height: cfg.Window.Height, Title: title(s)})
	if err != nil {
		return err
	}
	defer win.Destroy()

	r, err := glw.NewRenderer()
	if err != nil {
		return err
	}
	defer r.Delete()

	a := &app{win: win, scene: s, render: r}
	a.filter = gesture.EventFilter{Dragger: s.View(), Changed: win.Invalidate}
	a.resize(win.Size())
	win.Handle(a.handle)

	if *flagConsole {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "hyperbolic> ",
			AutoComplete:    console.NewCompleter(),
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
		})
		if err != nil {
			return err
		}
		// runs before win.Destroy, ending the console ahead of the window
		defer rl.Close()
		go a.serve(rl)
	}

	win.Loop(20*time.Millisecond, a.update, a.draw)
	return nil
}

// serve forwards console commands to the window thread.
func (a *app) serve(rl *readline.Instance) {
	cmds := make(chan console.Command)
	go func() {
		if err := console.Run(rl, rl.Stderr(), cmds); err != nil {
			hyperbolic.Logger().Warn("console", zap.Error(err))
		}
	}()
	for c := range cmds {
		c := c
		if c.Op == console.OpQuit {
			a.win.Close()
			return
		}
		a.win.Do(func() {
			if err := a.apply(c); err != nil {
				fmt.Fprintln(rl.Stderr(), err)
			}
		})
	}
}

func (a *app) apply(c console.Command) error {
	if err := c.Apply(a.scene); err != nil {
		return err
	}
	a.win.Invalidate()
	return nil
}

func (a *app) handle(e interface{}) {
	a.filter.Filter(e)
	switch e := e.(type) {
	case size.Event:
		a.resize(e.WidthPx, e.HeightPx)
	case key.Event:
		a.key(e)
	}
}

func (a *app) key(e key.Event) {
	var c console.Command
	switch e.Code {
	case key.CodeEscape:
		a.win.Close()
		return
	case key.CodeR:
		c.Op = console.OpReset
	case key.CodeP:
		c.Op = console.OpProjection
		c.Model = (a.scene.Projection() + 1) % projection.Model(len(projection.Models()))
	case key.CodeK:
		c.Op = console.OpKind
		c.Kind = (a.scene.Requested().Kind + 1) % tiling.Kind(len(tiling.Kinds()))
	case key.CodeEqualSign:
		c = console.Command{Op: console.OpDepth, Depth: 1, Relative: true}
	case key.CodeHyphenMinus:
		c = console.Command{Op: console.OpDepth, Depth: -1, Relative: true}
	default:
		return
	}
	if err := a.apply(c); err != nil {
		hyperbolic.Logger().Warn("key", zap.Stringer("code", e.Code), zap.Error(err))
	}
}

func (a *app) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.scene.View().SetViewport(width, height)
	gl.Viewport(0, 0, int32(width), int32(height))
	a.win.Invalidate()
}

// update rebuilds a debounced tiling once it settles.
func (a *app) update() bool {
	if ok, err := a.scene.Flush(); err != nil {
		hyperbolic.Logger().Warn("rebuild", zap.Error(err))
	} else if ok {
		a.win.Invalidate()
	}
	return a.scene.Pending()
}

func (a *app) draw() {
	if a.render.Sync(a.scene.Version(), a.scene.Mesh()) {
		a.win.SetTitle(title(a.scene))
	}
	a.render.Draw(a.scene.View().Uniform(), a.scene.Projection())
}

func title(s *scene.Scene) string {
	return fmt.Sprintf("hyperview %v", s.Params())
}
