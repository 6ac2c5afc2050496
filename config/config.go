// Package config reads viewer and renderer settings from a YAML file and
// command line flags; flags given explicitly override the file.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"dasa.cc/hyperbolic/projection"
	"dasa.cc/hyperbolic/tiling"
	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

var ErrSchlafli = errors.New("config: malformed Schläfli symbol")

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Config struct {
	Tiling       tiling.Params    `yaml:"tiling"`
	Projection   projection.Model `yaml:"projection"`
	MaxDepth     int              `yaml:"max_depth"`
	MaxFaces     int              `yaml:"max_faces"`
	MaxSides     int              `yaml:"max_sides"`
	Subdivisions int              `yaml:"subdivisions"`
	Sensitivity  float64          `yaml:"sensitivity"`
	Debounce     time.Duration    `yaml:"debounce"`
	Window       Window           `yaml:"window"`
	Log          Log              `yaml:"log"`
}

// Default returns the heptagonal tiling in the Poincaré disk.
func Default() Config {
	return Config{
		Tiling:       tiling.Params{P: 7, Q: 3, Kind: tiling.KindRegular, Depth: 4},
		Projection:   projection.Poincare,
		MaxDepth:     tiling.DefaultMaxDepth,
		MaxFaces:     tiling.DefaultMaxFaces,
		MaxSides:     tiling.DefaultMaxSides,
		Subdivisions: tiling.DefaultSubdivisions,
		Sensitivity:  2,
		Debounce:     150 * time.Millisecond,
		Window:       Window{Width: 800, Height: 800},
		Log:          Log{Level: "info", MaxSize: 10, MaxBackups: 3},
	}
}

// Load reads the YAML file at path over Default.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return c, fmt.Errorf("config: %s: %w", path, err)
	}
	c.clamp()
	return c, nil
}

// RegisterFlags defines flags on fs that write into c, with c's current
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Tiling.P, "p", c.Tiling.P, "polygon sides")
	fs.IntVar(&c.Tiling.Q, "q", c.Tiling.Q, "polygons meeting at each vertex")
	fs.Var(&schlafli{p: &c.Tiling.P, q: &c.Tiling.Q}, "schlafli", "Schläfli symbol such as {7,3}; sets -p and -q")
	fs.TextVar(&c.Tiling.Kind, "kind", c.Tiling.Kind, "tiling kind: regular, rectified or truncated")
	fs.IntVar(&c.Tiling.Depth, "depth", c.Tiling.Depth, "rings of tiles around the center")
	fs.TextVar(&c.Projection, "projection", c.Projection, "projection: poincare, klein, halfplane or hyperboloid")
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "largest depth accepted")
	fs.IntVar(&c.MaxFaces, "max-faces", c.MaxFaces, "largest face count accepted")
	fs.IntVar(&c.MaxSides, "max-sides", c.MaxSides, "largest p or q accepted")
	fs.IntVar(&c.Subdivisions, "subdiv", c.Subdivisions, "geodesic segments per polygon edge")
	fs.Float64Var(&c.Sensitivity, "sensitivity", c.Sensitivity, "hyperbolic distance per screen unit dragged")
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "delay before rebuilding a changed tiling")
	fs.IntVar(&c.Window.Width, "w", c.Window.Width, "width in pixels")
	fs.IntVar(&c.Window.Height, "h", c.Window.Height, "height in pixels")
	fs.StringVar(&c.Log.Level, "v", c.Log.Level, "log level: debug, info, warn or error")
	fs.StringVar(&c.Log.File, "log", c.Log.File, "rotating log file; stderr if empty")
}

// Parse parses args into a Config. With -config the named file is loaded
// and flags given in args are applied over it. fs may carry other flags.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	c := Default()
	var path string
	fs.StringVar(&path, "config", "", "YAML configuration file")
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if path != "" {
		type set struct{ name, value string }
		var given []set
		fs.Visit(func(f *flag.Flag) { given = append(given, set{f.Name, f.Value.String()}) })

		loaded, err := Load(path)
		if err != nil {
			return c, err
		}
		c = loaded
		for _, g := range given {
			if err := fs.Set(g.name, g.value); err != nil {
				return c, err
			}
		}
	}
	c.clamp()
	return c, c.Validate()
}

// Validate checks c, including the tiling against its own bounds.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window %dx%d", c.Window.Width, c.Window.Height)
	}
	if !(c.Sensitivity > 0) {
		return fmt.Errorf("config: sensitivity %v", c.Sensitivity)
	}
	if !c.Projection.Valid() {
		return fmt.Errorf("config: %w", projection.ErrUnknownModel)
	}
	return c.Generator().Check(c.Tiling)
}

// Generator returns the tiling generator c describes.
func (c Config) Generator() tiling.Generator {
	return tiling.Generator{MaxDepth: c.MaxDepth, MaxFaces: c.MaxFaces, MaxSides: c.MaxSides, Subdivisions: c.Subdivisions}
}

func (c *Config) clamp() {
	c.Subdivisions = Clamp(c.Subdivisions, 1, 64)
	c.MaxDepth = Clamp(c.MaxDepth, 0, 16)
	c.MaxSides = Clamp(c.MaxSides, 3, tiling.DefaultMaxSides)
	c.Debounce = Clamp(c.Debounce, 0, 5*time.Second)
}

// Clamp returns v limited to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type schlafli struct {
	p, q *int
	s    string
}

func (v *schlafli) String() string {
	if v == nil {
		return ""
	}
	return v.s
}

func (v *schlafli) Set(s string) (err error) {
	*v.p, *v.q, err = ParseSchlafli(s)
	v.s = s
	return err
}

// ParseSchlafli parses "{p,q}", "p,q" or "p q".
func ParseSchlafli(s string) (p, q int, err error) {
	t := strings.TrimSpace(s)
	t = strings.TrimSuffix(strings.TrimPrefix(t, "{"), "}")
	f := strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == ' ' })
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrSchlafli)
	}
	if p, err = strconv.Atoi(f[0]); err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrSchlafli)
	}
	if q, err = strconv.Atoi(f[1]); err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrSchlafli)
	}
	return p, q, nil
}
