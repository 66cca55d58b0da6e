package ident

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID_Next(t *testing.T) {
	g := NewUUID()

	a := g.Next()
	b := g.Next()

	assert.True(t, strings.HasPrefix(a, DefaultPrefix), "id %q should carry the default prefix", a)
	assert.Len(t, a, len(DefaultPrefix)+32)
	assert.NotEqual(t, a, b, "consecutive ids must differ")
	assert.NotContains(t, a, "-")
}

func TestUUID_CustomPrefix(t *testing.T) {
	g := UUID{Prefix: "node_"}
	assert.True(t, strings.HasPrefix(g.Next(), "node_"))
}

func TestSequence(t *testing.T) {
	s := &Sequence{Prefix: "n"}
	assert.Equal(t, "n1", s.Next())
	assert.Equal(t, "n2", s.Next())
	assert.Equal(t, "n3", s.Next())
}

func TestSequence_Concurrent(t *testing.T) {
	s := &Sequence{Prefix: "id-"}

	const workers, perWorker = 8, 100
	ids := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				ids <- s.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestFunc(t *testing.T) {
	var g Generator = Func(func() string { return "fixed" })
	assert.Equal(t, "fixed", g.Next())
}
