package mark

import "fmt"

// SpliceEvents replaces events[start : start+deleteCount] with items and
// returns the updated slice.
func SpliceEvents(events []Event, start, deleteCount int, items []Event) []Event {
	if start < 0 {
		start = 0
	}
	if start > len(events) {
		start = len(events)
	}
	if deleteCount > len(events)-start {
		deleteCount = len(events) - start
	}
	tail := events[start+deleteCount:]
	out := make([]Event, 0, len(events)-deleteCount+len(items))
	out = append(out, events[:start]...)
	out = append(out, items...)
	out = append(out, tail...)
	return out
}

// SpliceBuffer is a gap buffer: pushes, pops, shifts, and unshifts are
// amortized O(1), and splices near a previous access point are cheap. It is
// used where event streams undergo repeated localized edits whose cost must
// not be quadratic in document size.
//
// Internally left holds indices [0, cursor) in order and right holds
// [cursor, length) in reverse.
type SpliceBuffer[T any] struct {
	left  []T
	right []T
}

// NewSpliceBuffer creates a buffer seeded with the given items.
func NewSpliceBuffer[T any](initial []T) *SpliceBuffer[T] {
	b := &SpliceBuffer[T]{}
	b.left = append(b.left, initial...)
	return b
}

// Length returns the number of items.
func (b *SpliceBuffer[T]) Length() int {
	return len(b.left) + len(b.right)
}

// Get returns the item at index.
// It panics if index is out of bounds: that is a caller bug, not input-driven.
func (b *SpliceBuffer[T]) Get(index int) T {
	if index < 0 || index >= b.Length() {
		panic(fmt.Sprintf("splice buffer: index %d out of range [0, %d)", index, b.Length()))
	}
	b.setCursor(index + 1)
	return b.left[index]
}

// Slice returns a copy of items in [start, end).
func (b *SpliceBuffer[T]) Slice(start, end int) []T {
	if start < 0 {
		start = 0
	}
	if end > b.Length() {
		end = b.Length()
	}
	if end <= start {
		return nil
	}
	b.setCursor(end)
	out := make([]T, end-start)
	copy(out, b.left[start:end])
	return out
}

// Splice removes deleteCount items at start and inserts items in their place.
func (b *SpliceBuffer[T]) Splice(start, deleteCount int, items []T) {
	if start < 0 {
		start = 0
	}
	if start > b.Length() {
		start = b.Length()
	}
	b.setCursor(start)
	if deleteCount > len(b.right) {
		deleteCount = len(b.right)
	}
	b.right = b.right[:len(b.right)-deleteCount]
	b.left = append(b.left, items...)
}

// Push appends an item.
func (b *SpliceBuffer[T]) Push(item T) {
	b.setCursor(b.Length())
	b.left = append(b.left, item)
}

// Pop removes and returns the last item; ok is false when empty.
func (b *SpliceBuffer[T]) Pop() (item T, ok bool) {
	if b.Length() == 0 {
		return item, false
	}
	b.setCursor(b.Length())
	item = b.left[len(b.left)-1]
	b.left = b.left[:len(b.left)-1]
	return item, true
}

// Shift removes and returns the first item; ok is false when empty.
func (b *SpliceBuffer[T]) Shift() (item T, ok bool) {
	if b.Length() == 0 {
		return item, false
	}
	b.setCursor(0)
	item = b.right[len(b.right)-1]
	b.right = b.right[:len(b.right)-1]
	return item, true
}

// Unshift prepends an item.
func (b *SpliceBuffer[T]) Unshift(item T) {
	b.setCursor(0)
	b.right = append(b.right, item)
}

// setCursor moves the gap so that left holds exactly [0, n).
func (b *SpliceBuffer[T]) setCursor(n int) {
	for len(b.left) > n {
		item := b.left[len(b.left)-1]
		b.left = b.left[:len(b.left)-1]
		b.right = append(b.right, item)
	}
	for len(b.left) < n {
		item := b.right[len(b.right)-1]
		b.right = b.right[:len(b.right)-1]
		b.left = append(b.left, item)
	}
}
