// Package console reads viewer commands from a terminal line editor.
//
//	tiling 7 3      switch to {7,3}; also "tiling {5,4}"
//	kind truncated  regular, rectified or truncated
//	depth 4         absolute, or relative as +1 / -1
//	projection klein
//	reset           recenter the view
//	help
//	quit
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dasa.cc/hyperbolic/config"
	"dasa.cc/hyperbolic/projection"
	"dasa.cc/hyperbolic/scene"
	"dasa.cc/hyperbolic/tiling"

	"github.com/chzyer/readline"
)

var (
	ErrUnknownCommand = errors.New("console: unknown command")
	ErrArgs           = errors.New("console: bad arguments")
)

type Op uint8

const (
	OpNone Op = iota
	OpTiling
	OpKind
	OpDepth
	OpProjection
	OpReset
	OpHelp
	OpQuit
)

var opNames = map[string]Op{
	"tiling":     OpTiling,
	"kind":       OpKind,
	"depth":      OpDepth,
	"projection": OpProjection,
	"reset":      OpReset,
	"help":       OpHelp,
	"quit":       OpQuit,
	"exit":       OpQuit,
}

var (
	commands  = newVocabulary("tiling", "kind", "depth", "projection", "reset", "help", "quit")
	arguments = func() *vocabulary {
		var words []string
		for _, k := range tiling.Kinds() {
			words = append(words, k.String())
		}
		for _, m := range projection.Models() {
			words = append(words, m.String())
		}
		return newVocabulary(words...)
	}()
)

func didYouMean(v *vocabulary, s string) string {
	if w, ok := v.suggest(s, 0.4); ok {
		return fmt.Sprintf("; did you mean %s?", w)
	}
	return ""
}

// Command is a parsed console line. Fields other than Op are set only for
// the operations that take them.
type Command struct {
	Op    Op
	P, Q  int
	Kind  tiling.Kind
	Model projection.Model

	Depth    int
	Relative bool
}

// Parse parses a single console line. An empty line parses to OpNone.
func Parse(line string) (Command, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return Command{}, nil
	}
	op, ok := opNames[strings.ToLower(f[0])]
	if !ok {
		return Command{}, fmt.Errorf("%q: %w%s", f[0], ErrUnknownCommand, didYouMean(commands, f[0]))
	}
	c, args := Command{Op: op}, f[1:]

	var err error
	switch op {
	case OpTiling:
		if len(args) == 0 {
			return c, fmt.Errorf("tiling: %w", ErrArgs)
		}
		c.P, c.Q, err = config.ParseSchlafli(strings.Join(args, " "))
	case OpKind:
		if len(args) != 1 {
			return c, fmt.Errorf("kind: %w", ErrArgs)
		}
		if c.Kind, err = tiling.ParseKind(args[0]); err != nil {
			err = fmt.Errorf("%w%s", err, didYouMean(arguments, args[0]))
		}
	case OpProjection:
		if len(args) != 1 {
			return c, fmt.Errorf("projection: %w", ErrArgs)
		}
		if c.Model, err = projection.ParseModel(args[0]); err != nil {
			err = fmt.Errorf("%w%s", err, didYouMean(arguments, args[0]))
		}
	case OpDepth:
		if len(args) != 1 {
			return c, fmt.Errorf("depth: %w", ErrArgs)
		}
		c.Relative = strings.HasPrefix(args[0], "+") || strings.HasPrefix(args[0], "-")
		c.Depth, err = strconv.Atoi(args[0])
		if err != nil {
			err = fmt.Errorf("depth %q: %w", args[0], ErrArgs)
		}
	default:
		if len(args) != 0 {
			return c, fmt.Errorf("%s: %w", f[0], ErrArgs)
		}
	}
	return c, err
}

// Apply performs c on s. Help and quit are left to the caller.
func (c Command) Apply(s *scene.Scene) error {
	params := s.Requested()
	switch c.Op {
	case OpTiling:
		params.P, params.Q = c.P, c.Q
	case OpKind:
		params.Kind = c.Kind
	case OpDepth:
		if c.Relative {
			params.Depth += c.Depth
		} else {
			params.Depth = c.Depth
		}
	case OpProjection:
		return s.SetProjection(c.Model)
	case OpReset:
		s.View().Reset()
		return nil
	default:
		return nil
	}
	return s.SetTiling(params)
}

// NewCompleter completes command names and their fixed arguments.
func NewCompleter() *readline.PrefixCompleter {
	kinds := make([]readline.PrefixCompleterInterface, 0, 3)
	for _, k := range tiling.Kinds() {
		kinds = append(kinds, readline.PcItem(k.String()))
	}
	models := make([]readline.PrefixCompleterInterface, 0, 4)
	for _, m := range projection.Models() {
		models = append(models, readline.PcItem(m.String()))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("tiling"),
		readline.PcItem("kind", kinds...),
		readline.PcItem("depth"),
		readline.PcItem("projection", models...),
		readline.PcItem("reset"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
}

const usage = `tiling P Q | kind regular|rectified|truncated | depth N|+N|-N
projection poincare|klein|halfplane|hyperboloid | reset | help | quit
`

// Run reads lines from r until quit, end of input or interrupt on an empty
// line, sending each command to cmds. Parse errors and help go to w.
// cmds is closed on return.
func Run(r LineReader, w io.Writer, cmds chan<- Command) error {
	defer close(cmds)
	for {
		line, err := r.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		c, err := Parse(line)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		switch c.Op {
		case OpNone:
			continue
		case OpHelp:
			io.WriteString(w, usage)
			continue
		}
		cmds <- c
		if c.Op == OpQuit {
			return nil
		}
	}
}
