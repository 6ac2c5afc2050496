// Package tiling generates finite patches of regular {p,q} tilings of the
// hyperbolic plane.
//
// Tiles are found by a breadth-first walk over the triangle group of the
// (2,p,q) Schwarz triangle and deduplicated by position, so an infinite
// tiling is cut off after a requested number of rings around the center.
package tiling

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSchlafli = errors.New("tiling: invalid Schläfli symbol")
	ErrDepthTooLarge   = errors.New("tiling: depth too large")
	ErrInvalidKind     = errors.New("tiling: invalid kind")
)

// Hyperbolic reports whether {p,q} tiles the hyperbolic plane, 1/p + 1/q < 1/2.
func Hyperbolic(p, q int) bool {
	if p < 3 || q < 3 {
		return false
	}
	// either side past 6 is hyperbolic; the product is then never formed
	return p > 6 || q > 6 || (p-2)*(q-2) > 4
}

// Kind selects which polygons are emitted for each tile.
type Kind uint8

const (
	// KindRegular emits the p-gon tiles themselves.
	KindRegular Kind = iota

	// KindRectified emits the p-gon joining edge midpoints of each tile and
	// the q-gon joining the midpoints around each tile vertex.
	KindRectified

	// KindTruncated cuts every tile corner so tiles become 2p-gons with
	// equal sides, and emits the q-gon left at each vertex.
	KindTruncated

	kindCount
)

var kindNames = [...]string{"regular", "rectified", "truncated"}

// Kinds returns all kinds in order.
func Kinds() []Kind { return []Kind{KindRegular, KindRectified, KindTruncated} }

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidKind)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("%v: %w", k, ErrInvalidKind)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) (err error) {
	*k, err = ParseKind(string(b))
	return err
}

// Params selects a tiling patch.
type Params struct {
	P, Q  int
	Kind  Kind
	Depth int
}

func (p Params) String() string { return fmt.Sprintf("{%d,%d} %v depth %d", p.P, p.Q, p.Kind, p.Depth) }

// Validate checks p independently of any depth limit.
func (p Params) Validate() error {
	if !Hyperbolic(p.P, p.Q) {
		return fmt.Errorf("{%d,%d} is not hyperbolic: %w", p.P, p.Q, ErrInvalidSchlafli)
	}
	if p.Kind >= kindCount {
		return fmt.Errorf("%v: %w", p.Kind, ErrInvalidKind)
	}
	if p.Depth < 0 {
		return fmt.Errorf("negative depth %d: %w", p.Depth, ErrDepthTooLarge)
	}
	return nil
}
