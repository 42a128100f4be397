package models

import (
	"cmp"
	"slices"
)

// KeyCount is one (key, count) pair exported from a Tally.
type KeyCount[K cmp.Ordered] struct {
	Key   K     `json:"key"`
	Count int64 `json:"count"`
}

// Tally is a counter that remembers the order in which keys were first seen.
// Iteration follows that order, which keeps tie-breaking deterministic for identical input.
type Tally[K cmp.Ordered] struct {
	index map[K]int
	pairs []KeyCount[K]
}

func NewTally[K cmp.Ordered]() *Tally[K] {
	return &Tally[K]{index: make(map[K]int)}
}

// Increment adds one to the count of key, registering it on first use.
func (t *Tally[K]) Increment(key K) {
	if i, ok := t.index[key]; ok {
		t.pairs[i].Count++
		return
	}
	t.index[key] = len(t.pairs)
	t.pairs = append(t.pairs, KeyCount[K]{Key: key, Count: 1})
}

// Get returns the count of key, 0 when the key was never seen.
func (t *Tally[K]) Get(key K) int64 {
	if i, ok := t.index[key]; ok {
		return t.pairs[i].Count
	}
	return 0
}

func (t *Tally[K]) Len() int {
	return len(t.pairs)
}

// Total returns the sum of all counts.
func (t *Tally[K]) Total() int64 {
	var total int64
	for _, p := range t.pairs {
		total += p.Count
	}
	return total
}

// Pairs returns a copy of the pairs in first-seen order.
func (t *Tally[K]) Pairs() []KeyCount[K] {
	return slices.Clone(t.pairs)
}

// SortByCountDesc returns a copy of pairs sorted by count, highest first.
// The sort is stable, so equal counts keep their original (first-seen) order.
func SortByCountDesc[K cmp.Ordered](pairs []KeyCount[K]) []KeyCount[K] {
	sorted := slices.Clone(pairs)
	slices.SortStableFunc(sorted, func(a, b KeyCount[K]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return sorted
}

// SortByKeyAsc returns a copy of pairs sorted by key in ascending order.
func SortByKeyAsc[K cmp.Ordered](pairs []KeyCount[K]) []KeyCount[K] {
	sorted := slices.Clone(pairs)
	slices.SortStableFunc(sorted, func(a, b KeyCount[K]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return sorted
}

// CountMap converts pairs into a key -> count map.
func CountMap[K cmp.Ordered](pairs []KeyCount[K]) map[K]int64 {
	m := make(map[K]int64, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Count
	}
	return m
}
