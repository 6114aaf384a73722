package container

import (
	"errors"
	"testing"
)

func listOf(values ...int) *OrderedList[int] {
	l := NewOrderedList[int]()
	for _, v := range values {
		l.Append(v)
	}
	return l
}

func assertOrder(t *testing.T, l *OrderedList[int], want []int) {
	t.Helper()
	if l.Len() != len(want) {
		t.Fatalf("len = %d, want %d", l.Len(), len(want))
	}
	for i, w := range want {
		got, err := l.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if got != w {
			t.Errorf("At(%d) = %d, want %d", i, got, w)
		}
	}
	// Walk the links both ways so a bad relink cannot hide behind a
	// correct forward traversal.
	for n := l.head; n != nil; n = n.next {
		if n.next != nil && n.next.prev != n {
			t.Fatal("broken next/prev adjacency")
		}
	}
	if l.Len() > 0 {
		if l.head.prev != nil || l.tail.next != nil {
			t.Fatal("head/tail not terminal")
		}
	}
}

func TestAppendAndIndex(t *testing.T) {
	l := listOf(10, 20, 30)
	assertOrder(t, l, []int{10, 20, 30})

	if _, err := l.At(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("At(3) err = %v, want ErrIndexOutOfRange", err)
	}
	if err := l.Set(1, 25); err != nil {
		t.Fatalf("Set: %v", err)
	}
	assertOrder(t, l, []int{10, 25, 30})

	ref, err := l.Ref(2)
	if err != nil {
		t.Fatalf("Ref: %v", err)
	}
	*ref = 35
	assertOrder(t, l, []int{10, 25, 35})
}

func TestRemoveAtFourCases(t *testing.T) {
	l := listOf(1, 2, 3, 4)

	// Interior.
	if err := l.RemoveAt(1); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, l, []int{1, 3, 4})

	// Tail.
	if err := l.RemoveAt(2); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, l, []int{1, 3})

	// Head.
	if err := l.RemoveAt(0); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, l, []int{3})

	// Sole element.
	if err := l.RemoveAt(0); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, l, nil)
	if l.head != nil || l.tail != nil {
		t.Error("head/tail should be nil after removing sole element")
	}

	if err := l.RemoveAt(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveAt on empty = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemoveFirst(t *testing.T) {
	l := listOf(5, 6, 5, 7)
	if err := l.RemoveFirst(5); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, l, []int{6, 5, 7})

	if err := l.RemoveFirst(99); !errors.Is(err, ErrValueNotFound) {
		t.Errorf("RemoveFirst(99) = %v, want ErrValueNotFound", err)
	}
}

// Appending then removing at that same index must restore the prior
// length and keep every other element's relative order.
func TestAppendRemoveRoundTrip(t *testing.T) {
	l := listOf(1, 2, 3)
	l.Append(4)
	if err := l.RemoveAt(3); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, l, []int{1, 2, 3})
}

func TestContains(t *testing.T) {
	l := listOf(1, 2, 3)
	if !l.Contains(2) || l.Contains(4) {
		t.Error("Contains gave wrong membership")
	}
	if !l.ContainsFunc(func(v int) bool { return v > 2 }) {
		t.Error("ContainsFunc missed a match")
	}
}

func TestClear(t *testing.T) {
	l := listOf(1, 2, 3)
	l.Clear()
	assertOrder(t, l, nil)

	// Reusable after clear.
	l.Append(9)
	assertOrder(t, l, []int{9})
}

func TestForEachStopsEarly(t *testing.T) {
	l := listOf(1, 2, 3)
	visited := 0
	l.ForEach(func(v int) bool {
		visited++
		return v < 2
	})
	if visited != 2 {
		t.Errorf("visited = %d, want 2", visited)
	}
}
