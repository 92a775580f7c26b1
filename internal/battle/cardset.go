package battle

import (
	"fmt"
	"math/bits"
	"strings"
)

const wordBits = 64

// CardSet is an ordered set of card identifiers backed by a bitset. Iteration
// always yields ids from lowest to highest, which keeps every consumer of a
// set (legal action enumeration, trigger matching, target submission)
// deterministic across runs. The zero value is an empty set.
type CardSet[T CardIDType] struct {
	words []uint64
}

// SetOf returns a set containing the given ids.
func SetOf[T CardIDType](ids ...T) CardSet[T] {
	var s CardSet[T]
	for _, id := range ids {
		s.Insert(id)
	}
	return s
}

// Insert adds an id to the set. Reports whether the id was newly added.
func (s *CardSet[T]) Insert(id T) bool {
	w, mask := wordMask(id)
	for len(s.words) <= w {
		s.words = append(s.words, 0)
	}
	present := s.words[w]&mask != 0
	s.words[w] |= mask
	return !present
}

// Remove deletes an id from the set. Reports whether it was present.
func (s *CardSet[T]) Remove(id T) bool {
	w, mask := wordMask(id)
	if w >= len(s.words) || s.words[w]&mask == 0 {
		return false
	}
	s.words[w] &^= mask
	return true
}

// Contains reports whether the set holds the given id.
func (s CardSet[T]) Contains(id T) bool {
	w, mask := wordMask(id)
	return w < len(s.words) && s.words[w]&mask != 0
}

// Len returns the number of ids in the set.
func (s CardSet[T]) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set holds no ids.
func (s CardSet[T]) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clear removes all ids.
func (s *CardSet[T]) Clear() {
	for i := range s.words {
		s.words[i] = 0
	}
}

// All returns the ids in ascending order.
func (s CardSet[T]) All() []T {
	out := make([]T, 0, s.Len())
	for wi, w := range s.words {
		for w != 0 {
			pos := bits.TrailingZeros64(w)
			out = append(out, T(wi*wordBits+pos))
			w &= w - 1
		}
	}
	return out
}

// At returns the id at the given position, treating the set as an ordered
// collection from lowest to highest. The second return is false when the
// index is out of bounds.
func (s CardSet[T]) At(index int) (T, bool) {
	seen := 0
	for wi, w := range s.words {
		count := bits.OnesCount64(w)
		if seen+count <= index {
			seen += count
			continue
		}
		for w != 0 {
			pos := bits.TrailingZeros64(w)
			if seen == index {
				return T(wi*wordBits + pos), true
			}
			w &= w - 1
			seen++
		}
	}
	var zero T
	return zero, false
}

// UnionWith adds every id in other to this set.
func (s *CardSet[T]) UnionWith(other CardSet[T]) {
	for len(s.words) < len(other.words) {
		s.words = append(s.words, 0)
	}
	for i, w := range other.words {
		s.words[i] |= w
	}
}

// DifferenceWith removes every id in other from this set.
func (s *CardSet[T]) DifferenceWith(other CardSet[T]) {
	for i := 0; i < len(s.words) && i < len(other.words); i++ {
		s.words[i] &^= other.words[i]
	}
}

// IntersectWith keeps only ids present in both sets.
func (s *CardSet[T]) IntersectWith(other CardSet[T]) {
	for i := range s.words {
		if i < len(other.words) {
			s.words[i] &= other.words[i]
		} else {
			s.words[i] = 0
		}
	}
}

// Clone returns an independent copy of the set.
func (s CardSet[T]) Clone() CardSet[T] {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return CardSet[T]{words: words}
}

// Reinterpret returns the same membership viewed as a different id type.
// All zone-typed ids share the flat CardID representation, so the bit
// positions carry over unchanged.
func Reinterpret[U, T CardIDType](s CardSet[T]) CardSet[U] {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return CardSet[U]{words: words}
}

// String renders the set for debugging.
func (s CardSet[T]) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, id := range s.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", int(id))
	}
	b.WriteString("}")
	return b.String()
}

func wordMask[T CardIDType](id T) (int, uint64) {
	i := int(id)
	if i < 0 {
		panic(fmt.Sprintf("negative card id %d in CardSet", i))
	}
	return i / wordBits, 1 << (i % wordBits)
}
