package quest

import "sync"

// Log records which narrative lines have been revealed to the player, in
// the order they were revealed. It is append-only and safe for concurrent
// use.
type Log struct {
	catalog *Catalog

	mu       sync.RWMutex
	revealed []string
}

// NewLog creates an empty log that resolves ids against c.
func NewLog(c *Catalog) *Log {
	return &Log{catalog: c}
}

// Catalog returns the catalog the log resolves against.
func (l *Log) Catalog() *Catalog {
	return l.catalog
}

// Reveal appends id to the log. Unknown ids are accepted; the return value
// reports whether id resolved against the catalog.
func (l *Log) Reveal(id string) bool {
	l.mu.Lock()
	l.revealed = append(l.revealed, id)
	l.mu.Unlock()
	return l.catalog.Contains(id)
}

// Current returns the entry for the most recent reveal. It returns the zero
// Entry when nothing has been revealed or the last id is not in the catalog.
func (l *Log) Current() Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.revealed) == 0 {
		return Entry{}
	}
	e, _ := l.catalog.Lookup(l.revealed[len(l.revealed)-1])
	return e
}

// Revealed returns a copy of all revealed ids in order.
func (l *Log) Revealed() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.revealed))
	copy(out, l.revealed)
	return out
}

// Len returns the number of reveals recorded.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.revealed)
}

// History resolves every reveal in order. Ids missing from the catalog
// appear with empty text.
func (l *Log) History() []Entry {
	ids := l.Revealed()
	out := make([]Entry, len(ids))
	for i, id := range ids {
		e, ok := l.catalog.Lookup(id)
		if !ok {
			e = Entry{ID: id}
		}
		out[i] = e
	}
	return out
}
