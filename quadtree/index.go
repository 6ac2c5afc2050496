package quadtree

// Index buckets values by the cell containing their normalized coordinates
// at a fixed level. Lookups search the containing cell and its neighbors, so
// two values closer than one cell are always found.
type Index[T any] struct {
	level uint8
	cells map[uint64][]T
	n     int
	buf   []uint64
}

// NewIndex returns an empty index bucketing at level.
func NewIndex[T any](level uint8) *Index[T] {
	if level > MaxLevel {
		level = MaxLevel
	}
	return &Index[T]{level: level, cells: make(map[uint64][]T), buf: make([]uint64, 0, 9)}
}

// Len returns the number of values inserted.
func (idx *Index[T]) Len() int { return idx.n }

// Insert stores v at normalized coordinates nx, ny.
func (idx *Index[T]) Insert(nx, ny float64, v T) {
	key := Locate(nx, ny, idx.level)
	idx.cells[key] = append(idx.cells[key], v)
	idx.n++
}

// Find returns the first value near nx, ny for which match reports true.
func (idx *Index[T]) Find(nx, ny float64, match func(T) bool) (v T, ok bool) {
	idx.buf = Neighbors(Locate(nx, ny, idx.level), idx.buf[:0])
	for _, key := range idx.buf {
		for _, v := range idx.cells[key] {
			if match(v) {
				return v, true
			}
		}
	}
	return v, false
}
