package datastructure

import "errors"

var ErrEmptyHeap = errors.New("heap is empty")

// CellHeap d-ary binary heap priorityqueue over grid cells, ordered by
// ascending elevation. The flood's open queue: the lowest pending frontier
// cell floods next, so the water level over the whole front only ever rises.
type CellHeap struct {
	heap []GridCell
	d    int
}

func NewCellHeap() *CellHeap {
	return NewdAryCellHeap(4)
}

func NewdAryCellHeap(d int) *CellHeap {
	return &CellHeap{
		heap: make([]GridCell, 0),
		d:    d,
	}
}

// Preallocate reserves capacity up front. The open queue of a priority
// flood peaks near the boundary perimeter, so 2*(width+height) is a good
// hint.
func (h *CellHeap) Preallocate(size int) {
	h.heap = make([]GridCell, 0, size)
}

func (h *CellHeap) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp maintains the heap property after an insert. O(logN) tree height.
func (h *CellHeap) heapifyUp(index int) {
	for index != 0 && h.heap[index].Z < h.heap[h.parent(index)].Z {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown maintains the heap property after an extract: swap with the
// smallest child while one undercuts the parent. O(logN) tree height.
func (h *CellHeap) heapifyDown(index int) {
	leftMostChild := index*h.d + 1
	if leftMostChild >= len(h.heap) {
		return
	}

	sentinel := leftMostChild + h.d
	if sentinel > len(h.heap) {
		sentinel = len(h.heap)
	}

	smallest := leftMostChild
	for i := leftMostChild + 1; i < sentinel; i++ {
		if h.heap[i].Z < h.heap[smallest].Z {
			smallest = i
		}
	}

	if h.heap[smallest].Z < h.heap[index].Z {
		h.swap(index, smallest)
		h.heapifyDown(smallest)
	}
}

func (h *CellHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
}

func (h *CellHeap) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *CellHeap) Size() int {
	return len(h.heap)
}

func (h *CellHeap) Insert(c GridCell) {
	h.heap = append(h.heap, c)
	h.heapifyUp(len(h.heap) - 1)
}

// GetMin peeks at the lowest-elevation cell (index 0).
func (h *CellHeap) GetMin() (GridCell, error) {
	if h.IsEmpty() {
		return GridCell{}, ErrEmptyHeap
	}
	return h.heap[0], nil
}

// ExtractMin pops the lowest-elevation cell. O(logN) heapifyDown.
func (h *CellHeap) ExtractMin() (GridCell, error) {
	if h.IsEmpty() {
		return GridCell{}, ErrEmptyHeap
	}
	root := h.heap[0]

	h.swap(0, len(h.heap)-1)
	h.heap = h.heap[:len(h.heap)-1]
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}
