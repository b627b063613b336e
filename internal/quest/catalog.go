package quest

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrEmptyID is returned when a catalog entry has no id.
	ErrEmptyID = errors.New("empty message id")

	// ErrDuplicateID is returned when two catalog entries share an id.
	ErrDuplicateID = errors.New("duplicate message id")
)

// Entry is one narrative line the player can be shown.
type Entry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Catalog is the immutable, ordered table of narrative lines.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog builds a catalog from entries. Ids must be non-empty and unique.
func NewCatalog(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)

	for i, e := range c.entries {
		if e.ID == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyID)
		}
		if _, dup := c.index[e.ID]; dup {
			return nil, fmt.Errorf("entry %d %q: %w", i, e.ID, ErrDuplicateID)
		}
		c.index[e.ID] = i
	}
	return c, nil
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.index[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Text returns the text for id, or "" if id is not in the catalog.
func (c *Catalog) Text(id string) string {
	e, _ := c.Lookup(id)
	return e.Text
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

//go:embed catalog.json
var defaultCatalogJSON []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := parseCatalog(defaultCatalogJSON)
	if err != nil {
		panic(fmt.Sprintf("built-in quest catalog: %v", err))
	}
	return c
})

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog()
}
