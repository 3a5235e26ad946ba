package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDGenerator(t *testing.T) {
	gen := NewSequentialIDGenerator("saved")

	assert.Equal(t, "saved-0001", gen.Generate())
	assert.Equal(t, "saved-0002", gen.Generate())
	assert.Equal(t, 2, gen.Count())
}

func TestSequentialIDGenerator_DefaultPrefix(t *testing.T) {
	gen := NewSequentialIDGenerator("")
	assert.Equal(t, "id-0001", gen.Generate())
}

func TestSequentialIDGenerator_Reset(t *testing.T) {
	gen := NewSequentialIDGenerator("s")
	gen.Generate()
	gen.Generate()
	gen.Reset()

	assert.Equal(t, 0, gen.Count())
	assert.Equal(t, "s-0001", gen.Generate())
}

func TestSequentialIDGenerator_ThreadSafe(t *testing.T) {
	gen := NewSequentialIDGenerator("c")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 1000, "every generated ID must be unique")
	assert.Equal(t, 1000, gen.Count())
}

func TestFixedIDGenerator(t *testing.T) {
	gen := FixedIDGenerator("only")
	assert.Equal(t, "only", gen.Generate())
	assert.Equal(t, "only", gen.Generate())
}
