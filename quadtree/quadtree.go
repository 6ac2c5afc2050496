// Package quadtree provides functions for a linear quad tree with 64-bit keys.
//
// A key holds the cell level in its low five bits and the interleaved column
// and row above that, x on even bits and y on odd bits.
package quadtree

const (
	levelBits = 5
	levelMask = 1<<levelBits - 1

	// MaxLevel is the deepest level a key can address.
	MaxLevel = 29
)

// Dilate interleaves zeros between the bits of x using shift-or algorithm.
func Dilate(x uint32) uint64 {
	v := uint64(x)
	v = (v | (v << 16)) & 0x0000FFFF0000FFFF
	v = (v | (v << 8)) & 0x00FF00FF00FF00FF
	v = (v | (v << 4)) & 0x0F0F0F0F0F0F0F0F
	v = (v | (v << 2)) & 0x3333333333333333
	v = (v | (v << 1)) & 0x5555555555555555
	return v
}

// Undilate deinterleaves word using shift-or algorithm.
func Undilate(x uint64) uint32 {
	x &= 0x5555555555555555
	x = (x | (x >> 1)) & 0x3333333333333333
	x = (x | (x >> 2)) & 0x0F0F0F0F0F0F0F0F
	x = (x | (x >> 4)) & 0x00FF00FF00FF00FF
	x = (x | (x >> 8)) & 0x0000FFFF0000FFFF
	x = (x | (x >> 16)) & 0x00000000FFFFFFFF
	return uint32(x)
}

// Encode returns the key of column x and row y at level.
func Encode(x, y uint32, level uint8) uint64 {
	return (Dilate(x)|Dilate(y)<<1)<<levelBits | uint64(level&levelMask)
}

// Decode retrieves column major position and level from key.
func Decode(key uint64) (x, y uint32, level uint8) {
	x = Undilate(key >> levelBits)
	y = Undilate(key >> (levelBits + 1))
	level = uint8(key & levelMask)
	return
}

// Children generates nodes from a quadtree encoded key.
func Children(key uint64) (uint64, uint64, uint64, uint64) {
	key = ((key + 1) & levelMask) | ((key &^ levelMask) << 2)
	return key, key | 1<<levelBits, key | 2<<levelBits, key | 3<<levelBits
}

// Parent generates node from quadtree encoded key.
func Parent(key uint64) uint64 {
	return ((key - 1) & levelMask) | ((key >> 2) &^ levelMask)
}

// Cell retrieves normalized coordinates and size.
func Cell(key uint64) (nx, ny, size float64) {
	x, y, level := Decode(key)
	size = 1 / float64(uint64(1)<<level)
	nx = float64(x) * size
	ny = float64(y) * size
	return
}

// Locate returns the key of the cell at level containing normalized
// coordinates nx, ny. Coordinates outside [0, 1) are clamped to the border.
func Locate(nx, ny float64, level uint8) uint64 {
	if level > MaxLevel {
		level = MaxLevel
	}
	n := float64(uint64(1) << level)
	return Encode(clamp(nx*n, n), clamp(ny*n, n), level)
}

func clamp(v, n float64) uint32 {
	switch {
	case !(v > 0):
		return 0
	case v >= n:
		return uint32(n - 1)
	}
	return uint32(v)
}

// Neighbors appends key and the keys of its eight neighbors at the same level
// to buf, skipping cells outside the unit square.
func Neighbors(key uint64, buf []uint64) []uint64 {
	x, y, level := Decode(key)
	n := int64(1) << level
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			cx, cy := int64(x)+dx, int64(y)+dy
			if cx < 0 || cy < 0 || cx >= n || cy >= n {
				continue
			}
			buf = append(buf, Encode(uint32(cx), uint32(cy), level))
		}
	}
	return buf
}
