package history

// stack 有界栈，超出容量时丢弃最早的记录
type stack[T any] struct {
	items    []T
	capacity int
}

func newStack[T any](capacity int) *stack[T] {
	return &stack[T]{items: make([]T, 0, capacity), capacity: capacity}
}

func (s *stack[T]) push(v T) {
	if len(s.items) == s.capacity {
		var zero T
		s.items[0] = zero
		s.items = append(s.items[:0], s.items[1:]...)
	}
	s.items = append(s.items, v)
}

func (s *stack[T]) pop() (v T, ok bool) {
	n := len(s.items)
	if n == 0 {
		return v, false
	}
	v = s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, true
}

func (s *stack[T]) len() int { return len(s.items) }

func (s *stack[T]) clear() {
	clear(s.items)
	s.items = s.items[:0]
}
