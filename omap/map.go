// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package omap implements an insertion-ordered map backed by a
// hash-bucketed table of self-balancing binary search trees.
package omap

import (
	"cmp"
	"hash/maphash"
)

// A Map associates keys of type K with values of type V, remembering the
// order in which keys were first inserted. Iteration (via Range or Keys)
// visits entries in that order, not key order. K must satisfy cmp.Ordered;
// only natural ordering is supported.
//
// The zero Map is not ready for use; construct one with New.
//
// A Map is not safe for concurrent use by multiple goroutines, and it is
// not safe to mutate a Map while an Iterator obtained from it is live.
type Map[K cmp.Ordered, V any] struct {
	seed     maphash.Seed
	table    []*node[K, V]
	header   *node[K, V]
	size     int
	modCount int
}

const initialCapacity = 16

// New constructs an empty Map.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	m := &Map[K, V]{
		seed:  maphash.MakeSeed(),
		table: make([]*node[K, V], initialCapacity),
	}
	m.header = &node[K, V]{}
	m.header.next = m.header
	m.header.prev = m.header
	return m
}

// Len reports the number of entries in m.
func (m *Map[K, V]) Len() int { return m.size }

// Get reports the value associated with key, if any.
func (m *Map[K, V]) Get(key K) (V, bool) {
	n, _ := m.find(key, false)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// ContainsKey reports whether key has an associated value in m.
func (m *Map[K, V]) ContainsKey(key K) bool {
	n, _ := m.find(key, false)
	return n != nil
}

// Put associates value with key, replacing any previous association. It
// reports the value previously associated with key, if any. A key that is
// new to the map is appended to the end of the iteration order; an existing
// key keeps its original position.
func (m *Map[K, V]) Put(key K, value V) (previous V, existed bool) {
	n, created := m.find(key, true)
	previous = n.value
	n.value = value
	return previous, !created
}

// Delete removes key's association, if any, and reports the value it held.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	n, _ := m.find(key, false)
	if n == nil {
		var zero V
		return zero, false
	}
	old := n.value
	m.removeInternal(n, true)
	m.size--
	m.modCount++
	return old, true
}

// Clear removes all entries from m.
func (m *Map[K, V]) Clear() {
	for i := range m.table {
		m.table[i] = nil
	}
	m.size = 0
	m.modCount++
	m.header.next = m.header
	m.header.prev = m.header
}

// hashKey computes the bucket hash for key: a general-purpose hash over any
// comparable type via hash/maphash.Comparable, folded to 32 bits and passed
// through the same secondary mixing LinkedHashTreeMap applies to
// Object.hashCode results, to spread hash codes with poor low-bit entropy
// across the bucket table.
func (m *Map[K, V]) hashKey(key K) uint32 {
	h := maphash.Comparable(m.seed, key)
	return secondaryHash(uint32(h) ^ uint32(h>>32))
}

func secondaryHash(h uint32) uint32 {
	h ^= (h >> 20) ^ (h >> 12)
	return h ^ (h >> 7) ^ (h >> 4)
}

func threshold(capacity int) int { return capacity * 3 / 4 }

// find locates key's node. If create is true and no such node exists, one
// is inserted (with the zero value of V) and returned along with true;
// otherwise the second result is false.
func (m *Map[K, V]) find(key K, create bool) (found *node[K, V], created bool) {
	hash := m.hashKey(key)
	index := int(hash) & (len(m.table) - 1)
	root := m.table[index]

	if root == nil {
		if !create {
			return nil, false
		}
		n := m.newNode(nil, key, hash)
		m.table[index] = n
		m.grew()
		return n, true
	}

	cur := root
	var c int
	for {
		c = cmp.Compare(key, cur.key)
		if c == 0 {
			return cur, false
		}
		var next *node[K, V]
		if c < 0 {
			next = cur.left
		} else {
			next = cur.right
		}
		if next == nil {
			break
		}
		cur = next
	}
	if !create {
		return nil, false
	}

	n := m.newNode(cur, key, hash)
	if c < 0 {
		cur.left = n
	} else {
		cur.right = n
	}
	m.rebalance(cur, true)
	m.grew()
	return n, true
}

// grew records that a node was added to the tree, growing the table if the
// load factor threshold has been exceeded.
func (m *Map[K, V]) grew() {
	m.size++
	m.modCount++
	if m.size > threshold(len(m.table)) {
		m.doubleCapacity()
	}
}

// newNode allocates a fresh node under parent and appends it to the end of
// the insertion-order list.
func (m *Map[K, V]) newNode(parent *node[K, V], key K, hash uint32) *node[K, V] {
	n := &node[K, V]{parent: parent, key: key, hash: hash, height: 1}
	last := m.header.prev
	n.prev = last
	n.next = m.header
	last.next = n
	m.header.prev = n
	return n
}

// node is one entry in the map: a member of both a bucket's AVL tree
// (parent/left/right) and the insertion-order doubly linked list
// (next/prev, through the map's sentinel header).
type node[K cmp.Ordered, V any] struct {
	parent, left, right *node[K, V]
	next, prev          *node[K, V]
	key                 K
	hash                uint32
	value               V
	height              int8
}

func (n *node[K, V]) first() *node[K, V] {
	cur := n
	for cur.left != nil {
		cur = cur.left
	}
	return cur
}

func (n *node[K, V]) last() *node[K, V] {
	cur := n
	for cur.right != nil {
		cur = cur.right
	}
	return cur
}

func height[K cmp.Ordered, V any](n *node[K, V]) int8 {
	if n == nil {
		return 0
	}
	return n.height
}
