package ssg

// minHeap is an index-based binary min-heap over arena slots, ordered by the
// stored lower bound. It mirrors container/heap's sift routines on a concrete
// type (no interface boxing) and additionally maintains each record's pos
// field, so a node can be deleted by handle in O(log n).
type minHeap struct {
	arena *arena
	slots []int // arena indices, heap-ordered by lowerBound
}

func (h *minHeap) len() int { return len(h.slots) }

// first returns the arena index of the minimum element, or -1 when empty.
func (h *minHeap) first() int {
	if len(h.slots) == 0 {
		return -1
	}

	return h.slots[0]
}

func (h *minHeap) less(i, j int) bool {
	return h.arena.at(h.slots[i]).lowerBound < h.arena.at(h.slots[j]).lowerBound
}

// swap exchanges two heap slots and keeps the records' pos fields current.
func (h *minHeap) swap(i, j int) {
	h.slots[i], h.slots[j] = h.slots[j], h.slots[i]
	h.arena.at(h.slots[i]).pos = i
	h.arena.at(h.slots[j]).pos = j
}

// push inserts an arena index and sifts it up. O(log n).
func (h *minHeap) push(slot int) {
	h.slots = append(h.slots, slot)
	h.arena.at(slot).pos = len(h.slots) - 1
	h.up(len(h.slots) - 1)
}

// removeAt deletes the element currently at heap position pos by swapping it
// to the end and re-sifting. O(log n).
func (h *minHeap) removeAt(pos int) {
	n := len(h.slots) - 1
	if pos != n {
		h.swap(pos, n)
	}
	h.arena.at(h.slots[n]).pos = -1
	h.slots = h.slots[:n]
	if pos < n {
		if !h.down(pos, n) {
			h.up(pos)
		}
	}
}

func (h *minHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *minHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}

	return i > i0
}
