// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package omap

import (
	"cmp"
	"errors"
)

// ErrConcurrentModification is reported by an Iterator's Err method when
// the map it was created from has been structurally modified (via Put,
// Delete, or Clear) since the iterator was created.
var ErrConcurrentModification = errors.New("omap: map modified during iteration")

// An Iterator walks a Map's entries in insertion order. Its zero value is
// not ready for use; obtain one from Map.Iterate.
type Iterator[K cmp.Ordered, V any] struct {
	m        *Map[K, V]
	modCount int
	cur      *node[K, V]
	err      error
}

// Iterate returns an Iterator positioned before the first entry of m.
func (m *Map[K, V]) Iterate() *Iterator[K, V] {
	return &Iterator[K, V]{m: m, modCount: m.modCount, cur: m.header}
}

// Next advances the iterator to the next entry and reports whether one was
// available. It returns false at the end of the map, or if the map has been
// structurally modified since the iterator was created (in which case Err
// reports ErrConcurrentModification).
func (it *Iterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.m.modCount != it.modCount {
		it.err = ErrConcurrentModification
		return false
	}
	next := it.cur.next
	if next == it.m.header {
		return false
	}
	it.cur = next
	return true
}

// Key returns the key of the entry Next most recently advanced to.
func (it *Iterator[K, V]) Key() K { return it.cur.key }

// Value returns the value of the entry Next most recently advanced to.
func (it *Iterator[K, V]) Value() V { return it.cur.value }

// Err reports the error, if any, that stopped iteration early.
func (it *Iterator[K, V]) Err() error { return it.err }

// Range is an iter.Seq2[K, V] over m's entries in insertion order, suitable
// for use as "for k, v := range m.Range { ... }". Iteration stops early,
// without reporting an error, if m is structurally modified from within the
// loop body; use an explicit Iterator if that condition must be detected.
func (m *Map[K, V]) Range(yield func(K, V) bool) {
	modCount := m.modCount
	for n := m.header.next; n != m.header; n = n.next {
		if m.modCount != modCount {
			return
		}
		if !yield(n.key, n.value) {
			return
		}
	}
}

// Keys is an iter.Seq[K] over m's keys in insertion order.
func (m *Map[K, V]) Keys(yield func(K) bool) {
	modCount := m.modCount
	for n := m.header.next; n != m.header; n = n.next {
		if m.modCount != modCount {
			return
		}
		if !yield(n.key) {
			return
		}
	}
}
