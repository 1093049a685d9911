package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDs(t *testing.T) {
	gen := NewSequentialIDs("lower")

	assert.Equal(t, "lower-0001", gen.Generate())
	assert.Equal(t, "lower-0002", gen.Generate())

	gen.Reset()
	assert.Equal(t, "lower-0001", gen.Generate())
}

func TestSequentialIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "run-0001", NewSequentialIDs("").Generate())
}

func TestSequentialIDs_ThreadSafe(t *testing.T) {
	gen := NewSequentialIDs("p")
	seen := sync.Map{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := gen.Generate()
				_, dup := seen.LoadOrStore(id, true)
				assert.False(t, dup, "duplicate id %s", id)
			}
		}()
	}
	wg.Wait()
}
