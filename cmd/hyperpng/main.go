// Command hyperpng renders hyperbolic tilings to image files.
//
// Frames pan the view by -pan pixels each, so a sequence can be assembled
// into an animation:
//
//	hyperpng -schlafli {7,3} -depth 6 -n 120 -pan 4,0 -o out/%04d.png
//
// The format follows the extension of -o: png, bmp, tif or tiff.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"dasa.cc/hyperbolic"
	"dasa.cc/hyperbolic/config"
	"dasa.cc/hyperbolic/geom"
	"dasa.cc/hyperbolic/raster"
	"dasa.cc/hyperbolic/view"

	"go.uber.org/zap"
)

var (
	flagOut     = flag.String("o", "hyperbolic.png", "output file; a %d verb numbers frames")
	flagI       = flag.Int("i", 0, "number of the first frame; used in output filename")
	flagN       = flag.Int("n", 1, "number of frames to output")
	flagSS      = flag.Int("ss", 2, "supersampling factor")
	flagFilter  = flag.String("filter", "lanczos3", "downsampling filter: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3")
	flagPan     = flag.String("pan", "0,0", "screen pixels panned per frame as dx,dy")
	flagEdge    = flag.Float64("edge", 1, "edge width in pixels; 0 draws none")
	flagCaption = flag.Bool("caption", false, "write the tiling in the corner of each frame")
	flagJobs    = flag.Int("j", runtime.NumCPU(), "frames rendered at once")
)

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
		logger.Error("hyperpng", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	filter, err := raster.ParseFilter(*flagFilter)
	if err != nil {
		return err
	}
	dx, dy, err := parsePan(*flagPan)
	if err != nil {
		return err
	}
	if *flagN > 1 && !strings.Contains(*flagOut, "%") {
		return fmt.Errorf("-o %q needs a %%d verb for %v frames", *flagOut, *flagN)
	}
	if _, err := raster.FormatFor(*flagOut); err != nil {
		return err
	}

	mesh, err := cfg.Generator().Generate(cfg.Tiling)
	if err != nil {
		return err
	}

	opt := raster.Options{
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Supersample: config.Clamp(*flagSS, 1, 8),
		Filter:      filter,
		EdgeWidth:   float32(*flagEdge),
	}
	if *flagCaption {
		opt.Caption = fmt.Sprintf("{%d,%d} %v %v", cfg.Tiling.P, cfg.Tiling.Q, cfg.Tiling.Kind, cfg.Projection)
	}

	// views are accumulated in order so frames can render out of order
	ctrl := view.New()
	ctrl.Sensitivity = cfg.Sensitivity
	ctrl.SetViewport(cfg.Window.Width, cfg.Window.Height)
	for j := 0; j < *flagI; j++ {
		ctrl.Pan(dx, dy)
	}
	views := make([]geom.Isometry, *flagN)
	for j := range views {
		views[j] = ctrl.Transform()
		ctrl.Pan(dx, dy)
	}

	if dir := filepath.Dir(*flagOut); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	progress := monitor(uint64(len(views)))
	var (
		wg   sync.WaitGroup
		once sync.Once
		ferr error
		jobs = make(chan int)
	)
	for w := 0; w < config.Clamp(*flagJobs, 1, 64); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				name := *flagOut
				if strings.Contains(name, "%") {
					name = fmt.Sprintf(name, *flagI+j)
				}
				img := raster.Render(mesh, cfg.Projection, views[j], opt)
				if err := raster.Save(name, img); err != nil {
					once.Do(func() { ferr = err })
					continue
				}
				hyperbolic.Logger().Debug("frame", zap.String("file", name))
				atomic.AddUint64(progress, 1)
			}
		}()
	}
	for j := range views {
		jobs <- j
	}
	close(jobs)
	wg.Wait()
	return ferr
}

func parsePan(s string) (dx, dy float64, err error) {
	f := strings.Split(s, ",")
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("-pan %q: want dx,dy", s)
	}
	if dx, err = strconv.ParseFloat(strings.TrimSpace(f[0]), 64); err != nil {
		return 0, 0, err
	}
	if dy, err = strconv.ParseFloat(strings.TrimSpace(f[1]), 64); err != nil {
		return 0, 0, err
	}
	return dx, dy, nil
}

func monitor(total uint64) *uint64 {
	progress := uint64(0)
	if total < 2 {
		return &progress
	}
	epoch := time.Now()
	go func() {
		for range time.Tick(1 * time.Second) {
			complete := float64(atomic.LoadUint64(&progress)) / float64(total)
			since := time.Since(epoch)
			if complete == 0 {
				continue
			}
			estimate := time.Duration(1 / complete * float64(since))
			hyperbolic.Logger().Info("progress",
				zap.String("complete", fmt.Sprintf("%.0f%%", complete*100)),
				zap.Duration("remaining", estimate-since))
			if complete == 1 {
				break
			}
		}
	}()
	return &progress
}
