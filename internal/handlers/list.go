package handlers

import (
	"iter"
	"sync"
)

// List is an appendable collection of handlers. Appending returns a removal
// function, and iteration yields the live entries in registration order.
type List[T any] struct {
	mu      sync.RWMutex
	next    uint64
	order   []uint64
	entries map[uint64]T
}

func NewList[T any]() *List[T] {
	return &List[T]{entries: make(map[uint64]T)}
}

func (l *List[T]) Append(value T) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	token := l.next
	l.next++
	l.order = append(l.order, token)
	l.entries[token] = value

	return sync.OnceFunc(func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		delete(l.entries, token)
		for i, t := range l.order {
			if t == token {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	})
}

func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.mu.RLock()
		defer l.mu.RUnlock()

		for _, token := range l.order {
			if value, ok := l.entries[token]; ok && !yield(value) {
				return
			}
		}
	}
}
