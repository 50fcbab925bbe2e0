// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package omap_test

import (
	stdcmp "cmp"
	"errors"
	"fmt"
	"testing"

	"github.com/gojsonwire/jsonwire/omap"
	"github.com/google/go-cmp/cmp"
)

type entry[K comparable, V any] struct {
	Key   K
	Value V
}

func snapshot[K stdcmp.Ordered, V any](m *omap.Map[K, V]) []entry[K, V] {
	var got []entry[K, V]
	for k, v := range m.Range {
		got = append(got, entry[K, V]{k, v})
	}
	return got
}

func TestMap_insertionOrderPreserved(t *testing.T) {
	m := omap.New[string, int]()
	order := []string{"zebra", "apple", "mango", "banana"}
	for i, k := range order {
		m.Put(k, i)
	}

	want := []entry[string, int]{
		{"zebra", 0}, {"apple", 1}, {"mango", 2}, {"banana", 3},
	}
	if diff := cmp.Diff(want, snapshot(m)); diff != "" {
		t.Errorf("Range order (-want, +got):\n%s", diff)
	}

	// Re-inserting an existing key must not move it.
	if prev, existed := m.Put("apple", 99); !existed || prev != 1 {
		t.Errorf("Put(apple, 99) = (%d, %v), want (1, true)", prev, existed)
	}
	want[1].Value = 99
	if diff := cmp.Diff(want, snapshot(m)); diff != "" {
		t.Errorf("Range order after update (-want, +got):\n%s", diff)
	}
}

func TestMap_getAndContains(t *testing.T) {
	m := omap.New[int, string]()
	m.Put(1, "one")
	m.Put(2, "two")

	if v, ok := m.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = (%q, %v), want (one, true)", v, ok)
	}
	if _, ok := m.Get(3); ok {
		t.Errorf("Get(3) = ok, want not found")
	}
	if !m.ContainsKey(2) {
		t.Errorf("ContainsKey(2) = false, want true")
	}
	if m.ContainsKey(3) {
		t.Errorf("ContainsKey(3) = true, want false")
	}
}

func TestMap_deleteMaintainsContentsAndOrder(t *testing.T) {
	m := omap.New[int, int]()
	const n = 200
	for i := 0; i < n; i++ {
		m.Put(i, i*i)
	}
	if got := m.Len(); got != n {
		t.Fatalf("Len() = %d, want %d", got, n)
	}

	// Delete every third key.
	for i := 0; i < n; i += 3 {
		if _, ok := m.Delete(i); !ok {
			t.Fatalf("Delete(%d): not found", i)
		}
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		want := i%3 != 0
		if ok != want {
			t.Errorf("Get(%d): ok = %v, want %v", i, ok, want)
		}
		if ok && v != i*i {
			t.Errorf("Get(%d) = %d, want %d", i, v, i*i)
		}
	}

	// Remaining keys must still be in original insertion order.
	var lastSeen = -1
	for k := range m.Keys {
		if k < lastSeen {
			t.Fatalf("Keys out of insertion order: %d after %d", k, lastSeen)
		}
		lastSeen = k
	}
}

func TestMap_doubleCapacityPreservesContents(t *testing.T) {
	m := omap.New[int, int]()
	const n = 1000 // forces several doublings past the initial capacity of 16
	for i := 0; i < n; i++ {
		m.Put(i, -i)
	}
	if got := m.Len(); got != n {
		t.Fatalf("Len() = %d, want %d", got, n)
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		if !ok || v != -i {
			t.Errorf("Get(%d) = (%d, %v), want (%d, true)", i, v, ok, -i)
		}
	}
	seen := make(map[int]bool, n)
	count := 0
	for k := range m.Keys {
		if seen[k] {
			t.Fatalf("duplicate key %d after rehash", k)
		}
		seen[k] = true
		count++
	}
	if count != n {
		t.Errorf("Keys yielded %d entries, want %d", count, n)
	}
}

func TestMap_clear(t *testing.T) {
	m := omap.New[string, int]()
	m.Put("a", 1)
	m.Put("b", 2)
	m.Clear()
	if got := m.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
	if _, ok := m.Get("a"); ok {
		t.Errorf("Get(a) after Clear: found, want not found")
	}
	m.Put("c", 3)
	if diff := cmp.Diff([]entry[string, int]{{"c", 3}}, snapshot(m)); diff != "" {
		t.Errorf("Range after Clear+Put (-want, +got):\n%s", diff)
	}
}

func TestIterator_concurrentModification(t *testing.T) {
	m := omap.New[int, int]()
	m.Put(1, 1)
	m.Put(2, 2)

	it := m.Iterate()
	if !it.Next() {
		t.Fatal("Next() = false on first call, want true")
	}
	m.Put(3, 3)
	if it.Next() {
		t.Fatal("Next() = true after concurrent Put, want false")
	}
	if !errors.Is(it.Err(), omap.ErrConcurrentModification) {
		t.Errorf("Err() = %v, want ErrConcurrentModification", it.Err())
	}
}

func TestIterator_walksInInsertionOrder(t *testing.T) {
	m := omap.New[int, string]()
	for i := 0; i < 10; i++ {
		m.Put(i, fmt.Sprintf("v%d", i))
	}
	it := m.Iterate()
	i := 0
	for it.Next() {
		if it.Key() != i {
			t.Fatalf("Key() = %d, want %d", it.Key(), i)
		}
		if want := fmt.Sprintf("v%d", i); it.Value() != want {
			t.Fatalf("Value() = %q, want %q", it.Value(), want)
		}
		i++
	}
	if err := it.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
	if i != 10 {
		t.Errorf("iterated %d entries, want 10", i)
	}
}
