package console

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/exp/constraints"
)

// sorted is an ascending slice of distinct values.
type sorted[T constraints.Ordered] []T

// insert adds x in place if absent; returns x's index and whether it was added.
func (a *sorted[T]) insert(x T) (i int, ok bool) {
	i = sort.Search(len(*a), func(i int) bool { return (*a)[i] >= x })
	if ok = i == len(*a) || (*a)[i] != x; ok {
		var zero T
		*a = append(*a, zero)
		copy((*a)[i+1:], (*a)[i:])
		(*a)[i] = x
	}
	return i, ok
}

func (a sorted[T]) index(x T) (int, bool) {
	i := sort.Search(len(a), func(i int) bool { return a[i] >= x })
	return i, i < len(a) && a[i] == x
}

// trigrams returns the distinct trigrams of the lower-cased letters and
// digits of s, padded so short words still produce some.
func trigrams(s string) sorted[string] {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	var gs sorted[string]
	if s == "" {
		return gs
	}
	t := "\x00\x00" + s + "\x00"
	for i := 0; i <= len(t)-3; i++ {
		gs.insert(t[i : i+3])
	}
	return gs
}

// vocabulary suggests known words for misspelled ones by shared trigrams;
// words[i] lists the words containing grams[i].
type vocabulary struct {
	grams sorted[string]
	words []sorted[string]
}

func newVocabulary(words ...string) *vocabulary {
	v := &vocabulary{}
	for _, w := range words {
		for _, g := range trigrams(w) {
			i, ok := v.grams.insert(g)
			if ok {
				v.words = append(v.words, nil)
				copy(v.words[i+1:], v.words[i:])
				v.words[i] = sorted[string]{w}
			} else {
				v.words[i].insert(w)
			}
		}
	}
	return v
}

// suggest returns the word sharing the most trigrams with s, provided they
// cover at least min of s's trigrams.
func (v *vocabulary) suggest(s string, min float64) (string, bool) {
	q := trigrams(s)
	if len(q) == 0 {
		return "", false
	}
	var (
		ws     sorted[string]
		counts []int
	)
	for _, g := range q {
		i, ok := v.grams.index(g)
		if !ok {
			continue
		}
		for _, w := range v.words[i] {
			j, added := ws.insert(w)
			if added {
				counts = append(counts, 0)
				copy(counts[j+1:], counts[j:])
				counts[j] = 0
			}
			counts[j]++
		}
	}

	best := -1
	for i := range ws {
		if best < 0 || counts[i] > counts[best] {
			best = i
		}
	}
	if best < 0 || float64(counts[best])/float64(len(q)) < min {
		return "", false
	}
	return ws[best], true
}
