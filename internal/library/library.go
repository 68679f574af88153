// Package library holds the user's movie collection in memory. There
// is deliberately no persistence: the collection lives for the life of
// the process.
package library

import (
	"sync"

	"github.com/lbakerr/cinematch/internal/domain"
)

type Library struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
	version int64
}

func New() *Library {
	return &Library{}
}

func (l *Library) Add(entry domain.HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	l.version++
}

func (l *Library) AddAll(entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entries...)
	l.version++
}

// List returns a copy; callers may not mutate stored entries.
func (l *Library) List() []domain.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Version increments on every mutation; the response cache keys on it
// so stale recommendation lists can never be served.
func (l *Library) Version() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}
