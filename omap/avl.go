// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package omap

import "cmp"

// rebalance walks from unbalanced up to the root of its bucket's tree,
// restoring the AVL height-balance invariant (child subtree heights differ
// by at most one) at every node along the way.
//
// When insert is true, rebalancing stops as soon as one node's height is
// unchanged by rotation or recomputation, since an insertion can only
// unbalance nodes on the path from the new leaf to the root, and once a
// node's height stabilizes so does everything above it. A removal must
// continue all the way to the root, since removing a node can shrink the
// height of every ancestor.
func (m *Map[K, V]) rebalance(unbalanced *node[K, V], insert bool) {
	for n := unbalanced; n != nil; n = n.parent {
		left, right := n.left, n.right
		leftHeight, rightHeight := height(left), height(right)
		delta := leftHeight - rightHeight

		switch delta {
		case -2:
			rightLeft, rightRight := right.left, right.right
			rightDelta := height(rightLeft) - height(rightRight)
			if rightDelta == -1 || (rightDelta == 0 && !insert) {
				m.rotateLeft(n)
			} else {
				m.rotateRight(right)
				m.rotateLeft(n)
			}
			if insert {
				return
			}
		case 2:
			leftLeft, leftRight := left.left, left.right
			leftDelta := height(leftLeft) - height(leftRight)
			if leftDelta == 1 || (leftDelta == 0 && !insert) {
				m.rotateRight(n)
			} else {
				m.rotateLeft(left)
				m.rotateRight(n)
			}
			if insert {
				return
			}
		case 0:
			n.height = leftHeight + 1
			if insert {
				return
			}
		default:
			n.height = max(leftHeight, rightHeight) + 1
		}
	}
}

// rotateLeft performs a left rotation around root, promoting root.right.
func (m *Map[K, V]) rotateLeft(root *node[K, V]) {
	left := root.left
	pivot := root.right
	pivotLeft := pivot.left
	pivotRight := pivot.right

	root.right = pivotLeft
	if pivotLeft != nil {
		pivotLeft.parent = root
	}

	m.replaceInParent(root, pivot)

	pivot.left = root
	root.parent = pivot

	root.height = max(height(left), height(pivotLeft)) + 1
	pivot.height = max(root.height, height(pivotRight)) + 1
}

// rotateRight performs a right rotation around root, promoting root.left.
func (m *Map[K, V]) rotateRight(root *node[K, V]) {
	right := root.right
	pivot := root.left
	pivotLeft := pivot.left
	pivotRight := pivot.right

	root.left = pivotRight
	if pivotRight != nil {
		pivotRight.parent = root
	}

	m.replaceInParent(root, pivot)

	pivot.right = root
	root.parent = pivot

	root.height = max(height(right), height(pivotRight)) + 1
	pivot.height = max(root.height, height(pivotLeft)) + 1
}

// replaceInParent detaches old from the tree, installing replacement in its
// place: as the corresponding child of old's parent, or as the bucket root
// (recomputed from old.hash, which is stable across this operation since a
// table resize never happens mid-rotation) if old had no parent.
func (m *Map[K, V]) replaceInParent(old, replacement *node[K, V]) {
	parent := old.parent
	old.parent = nil
	if replacement != nil {
		replacement.parent = parent
	}
	if parent == nil {
		index := int(old.hash) & (len(m.table) - 1)
		m.table[index] = replacement
		return
	}
	if parent.left == old {
		parent.left = replacement
	} else {
		parent.right = replacement
	}
}

// removeInternal detaches n from its bucket's tree (rebalancing on the way
// back to the root) and, if unlink is true, from the insertion-order list.
//
// A node with two children is not removed directly: its value in the tree
// is taken over by the adjacent node on whichever side is taller (the
// predecessor if the left subtree is taller, the successor otherwise, to
// keep the replacement's own removal cheap), which is spliced out of that
// subtree first via a recursive call with unlink=false.
func (m *Map[K, V]) removeInternal(n *node[K, V], unlink bool) {
	if unlink {
		n.prev.next = n.next
		n.next.prev = n.prev
		n.next, n.prev = nil, nil
	}

	left, right := n.left, n.right
	originalParent := n.parent

	switch {
	case left != nil && right != nil:
		var adjacent *node[K, V]
		if left.height > right.height {
			adjacent = left.last()
		} else {
			adjacent = right.first()
		}
		// adjacent has at most one child, so this never recurses further.
		// It may mutate n.left or n.right directly, if adjacent was itself
		// one of those two nodes; re-read them below rather than reusing
		// the stale left/right captured above.
		m.removeInternal(adjacent, false)

		adjacent.left = n.left
		if adjacent.left != nil {
			adjacent.left.parent = adjacent
		}
		adjacent.right = n.right
		if adjacent.right != nil {
			adjacent.right.parent = adjacent
		}
		adjacent.height = max(height(adjacent.left), height(adjacent.right)) + 1
		n.left, n.right = nil, nil
		m.replaceInParent(n, adjacent)

	case left != nil:
		m.replaceInParent(n, left)
		n.left = nil

	case right != nil:
		m.replaceInParent(n, right)
		n.right = nil

	default:
		m.replaceInParent(n, nil)
	}

	m.rebalance(originalParent, false)
}

// avlIterator walks a bucket's tree in ascending key order, one node at a
// time, using an explicit stack bounded by the tree's height (O(log n)
// auxiliary space). Unlike the technique this is grounded on, it never
// repurposes a node's own parent pointer as stack storage: see DESIGN.md.
type avlIterator[K cmp.Ordered, V any] struct {
	stack []*node[K, V]
}

func (it *avlIterator[K, V]) reset(root *node[K, V]) {
	it.stack = it.stack[:0]
	it.pushSpine(root)
}

func (it *avlIterator[K, V]) pushSpine(n *node[K, V]) {
	for n != nil {
		it.stack = append(it.stack, n)
		n = n.left
	}
}

func (it *avlIterator[K, V]) hasNext() bool { return len(it.stack) > 0 }

func (it *avlIterator[K, V]) next() *node[K, V] {
	top := len(it.stack) - 1
	n := it.stack[top]
	it.stack = it.stack[:top]
	it.pushSpine(n.right)
	return n
}

// buildBalanced arranges nodes, given in ascending key order, into a
// height-balanced subtree in O(len(nodes)) time by recursively splitting on
// the middle element. Every call site clears each node's tree pointers
// before this runs, so no rotation is ever required to restore balance:
// the shape it produces already satisfies the AVL invariant.
func buildBalanced[K cmp.Ordered, V any](nodes []*node[K, V]) *node[K, V] {
	if len(nodes) == 0 {
		return nil
	}
	mid := len(nodes) / 2
	root := nodes[mid]
	root.left = buildBalanced(nodes[:mid])
	root.right = buildBalanced(nodes[mid+1:])
	if root.left != nil {
		root.left.parent = root
	}
	if root.right != nil {
		root.right.parent = root
	}
	root.height = max(height(root.left), height(root.right)) + 1
	return root
}

// doubleCapacity rehashes every entry into a table of twice the size,
// splitting each old bucket's tree into two new ones based on the newly
// significant hash bit, in O(n) total time: each node is visited once by
// the iterator and once by buildBalanced.
//
// The per-bucket left/right slices are reused across buckets (reset with a
// zero-length reslice, not reallocated), so the extra memory this holds at
// any moment is bounded by the largest single bucket, not the whole table.
func (m *Map[K, V]) doubleCapacity() {
	oldTable := m.table
	oldCapacity := len(oldTable)
	newTable := make([]*node[K, V], oldCapacity*2)

	var it avlIterator[K, V]
	var left, right []*node[K, V]
	for i, root := range oldTable {
		if root == nil {
			continue
		}
		left, right = left[:0], right[:0]
		it.reset(root)
		for it.hasNext() {
			n := it.next()
			n.parent, n.left, n.right = nil, nil, nil
			if n.hash&uint32(oldCapacity) == 0 {
				left = append(left, n)
			} else {
				right = append(right, n)
			}
		}
		newTable[i] = buildBalanced(left)
		newTable[i+oldCapacity] = buildBalanced(right)
	}
	m.table = newTable
}
