// Package dedupe tracks which match results have already been applied so a
// result can be committed at most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

// DefaultMaxSize is the ledger capacity when WithMaxSize is not given.
const DefaultMaxSize = 4096

// Ledger records applied result IDs.
type Ledger interface {
	// SeenAndRecord reports whether id was already recorded and records it
	// if not. The check and the write happen under one lock.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id. Used when a recorded result failed to apply.
	Unrecord(ctx context.Context, id string)

	// Contains reports whether id is recorded without recording it.
	Contains(id string) bool

	Size() int64
}

// memoryLedger keeps IDs in insertion order and evicts the oldest once
// maxSize is reached. maxSize <= 0 disables eviction.
type memoryLedger struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewLedger returns an in-memory ledger.
func NewLedger(opts ...Option) Ledger {
	l := &memoryLedger{
		maxSize: DefaultMaxSize,
		seen:    make(map[string]*list.Element),
		order:   list.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *memoryLedger) SeenAndRecord(_ context.Context, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[id]; ok {
		return true
	}
	if l.maxSize > 0 && l.order.Len() >= l.maxSize {
		l.evictOldest()
	}
	l.seen[id] = l.order.PushBack(id)
	return false
}

func (l *memoryLedger) Unrecord(_ context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.seen[id]; ok {
		l.order.Remove(e)
		delete(l.seen, id)
	}
}

func (l *memoryLedger) Contains(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[id]
	return ok
}

func (l *memoryLedger) Size() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(l.order.Len())
}

// evictOldest must be called with l.mu held.
func (l *memoryLedger) evictOldest() {
	front := l.order.Front()
	if front == nil {
		return
	}
	l.order.Remove(front)
	delete(l.seen, front.Value.(string))
}
