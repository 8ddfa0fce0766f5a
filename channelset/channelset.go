// Package channelset provides set algebra over output-channel indices.
//
// Keep and prune sets are represented as Roaring Bitmaps so that the
// complement/difference bookkeeping of channel selection stays allocation-light
// even for wide layers.
package channelset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of output-channel indices backed by a 32-bit Roaring Bitmap.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Universe creates the set {0 .. n-1}.
func Universe(n int) *Set {
	s := New()
	if n > 0 {
		s.rb.AddRange(0, uint64(n))
	}
	return s
}

// FromIndices creates a set from the given channel indices.
func FromIndices(indices []int) *Set {
	s := New()
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Add adds a channel index to the set.
func (s *Set) Add(i int) {
	s.rb.Add(uint32(i))
}

// Remove removes a channel index from the set.
func (s *Set) Remove(i int) {
	s.rb.Remove(uint32(i))
}

// Contains checks if a channel index is in the set.
func (s *Set) Contains(i int) bool {
	return s.rb.Contains(uint32(i))
}

// Cardinality returns the number of elements in the set.
func (s *Set) Cardinality() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// Difference removes all elements of other from s.
func (s *Set) Difference(other *Set) {
	s.rb.AndNot(other.rb)
}

// Union adds all elements of other to s.
func (s *Set) Union(other *Set) {
	s.rb.Or(other.rb)
}

// Intersect keeps only elements present in both s and other.
func (s *Set) Intersect(other *Set) {
	s.rb.And(other.rb)
}

// Iterator returns an iterator over the set in ascending order.
func (s *Set) Iterator() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// ToSortedSlice returns the elements in ascending order.
func (s *Set) ToSortedSlice() []int {
	result := make([]int, 0, s.Cardinality())
	for i := range s.Iterator() {
		result = append(result, i)
	}
	return result
}
