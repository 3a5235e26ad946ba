package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator hands out predictable IDs: "<prefix>-0001",
// "<prefix>-0002", and so on.
//
// Stores that normally mint UUIDv7 IDs accept one of these in tests so that
// golden output and assertions do not depend on wall-clock time.
//
// Thread-safety: all methods are safe for concurrent use.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator. An empty prefix becomes "id".
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Count returns how many IDs have been generated.
func (g *SequentialIDGenerator) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Reset starts the sequence over. The next Generate returns "<prefix>-0001".
func (g *SequentialIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}

// FixedIDGenerator returns the same ID every time. Useful for asserting that
// an upsert keeps an existing row's ID instead of minting a new one.
type FixedIDGenerator string

// Generate returns the fixed ID.
func (g FixedIDGenerator) Generate() string { return string(g) }
