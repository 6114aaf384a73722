package container

// node is a doubly linked list node. Nodes are owned by exactly one
// list; unlink detaches them fully so freed nodes never alias live
// structure.
type node[T any] struct {
	value T
	prev  *node[T]
	next  *node[T]
}

// OrderedList is a mutable, insertion-ordered sequence backed by a
// doubly linked list. Append is O(1); indexed and value-based access
// are O(n). The zero value is an empty list.
type OrderedList[T comparable] struct {
	head  *node[T]
	tail  *node[T]
	count int
}

// NewOrderedList returns an empty list.
func NewOrderedList[T comparable]() *OrderedList[T] {
	return &OrderedList[T]{}
}

// Len returns the number of elements.
func (l *OrderedList[T]) Len() int { return l.count }

// Append inserts v at the tail.
func (l *OrderedList[T]) Append(v T) {
	n := &node[T]{value: v}
	if l.tail == nil {
		l.head = n
		l.tail = n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.count++
}

// nodeAt walks to index i, nil if out of range.
func (l *OrderedList[T]) nodeAt(i int) *node[T] {
	if i < 0 || i >= l.count {
		return nil
	}
	n := l.head
	for ; i > 0; i-- {
		n = n.next
	}
	return n
}

// At returns the value at index i.
func (l *OrderedList[T]) At(i int) (T, error) {
	if n := l.nodeAt(i); n != nil {
		return n.value, nil
	}
	var zero T
	return zero, ErrIndexOutOfRange
}

// Ref returns a pointer to the stored value at index i for in-place
// mutation. The pointer is invalidated by any removal.
func (l *OrderedList[T]) Ref(i int) (*T, error) {
	if n := l.nodeAt(i); n != nil {
		return &n.value, nil
	}
	return nil, ErrIndexOutOfRange
}

// Set overwrites the value at index i.
func (l *OrderedList[T]) Set(i int, v T) error {
	n := l.nodeAt(i)
	if n == nil {
		return ErrIndexOutOfRange
	}
	n.value = v
	return nil
}

// unlink detaches n, covering the four structural cases: sole element,
// head, tail, interior. The remaining sequence keeps its order and
// adjacency in every case.
func (l *OrderedList[T]) unlink(n *node[T]) {
	switch {
	case n.prev == nil && n.next == nil:
		l.head = nil
		l.tail = nil
	case n.prev == nil:
		n.next.prev = nil
		l.head = n.next
	case n.next == nil:
		n.prev.next = nil
		l.tail = n.prev
	default:
		n.prev.next = n.next
		n.next.prev = n.prev
	}
	n.prev = nil
	n.next = nil
	l.count--
}

// RemoveAt unlinks the element at index i.
func (l *OrderedList[T]) RemoveAt(i int) error {
	n := l.nodeAt(i)
	if n == nil {
		return ErrIndexOutOfRange
	}
	l.unlink(n)
	return nil
}

// RemoveFirst unlinks the first element equal to v.
func (l *OrderedList[T]) RemoveFirst(v T) error {
	for n := l.head; n != nil; n = n.next {
		if n.value == v {
			l.unlink(n)
			return nil
		}
	}
	return ErrValueNotFound
}

// Clear releases every element and resets the list to empty.
func (l *OrderedList[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.prev = nil
		n.next = nil
		n = next
	}
	l.head = nil
	l.tail = nil
	l.count = 0
}

// Contains reports whether any element equals v.
func (l *OrderedList[T]) Contains(v T) bool {
	for n := l.head; n != nil; n = n.next {
		if n.value == v {
			return true
		}
	}
	return false
}

// ContainsFunc reports whether any element satisfies match.
func (l *OrderedList[T]) ContainsFunc(match func(T) bool) bool {
	for n := l.head; n != nil; n = n.next {
		if match(n.value) {
			return true
		}
	}
	return false
}

// ForEach visits elements in order until visit returns false.
func (l *OrderedList[T]) ForEach(visit func(T) bool) {
	for n := l.head; n != nil; n = n.next {
		if !visit(n.value) {
			return
		}
	}
}
