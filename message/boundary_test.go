package message_test

import (
	"math/rand"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimemessage/message"
)

var boundaryPattern = regexp.MustCompile(`^-{21}[0-9a-f]{32}$`)

func TestRandomBoundary(t *testing.T) {
	t.Parallel()

	gen := message.NewRandomBoundary(rand.NewSource(42))
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		b := gen.Boundary()
		assert.Regexp(t, boundaryPattern, b)
		assert.False(t, seen[b], "boundary repeated")
		seen[b] = true
	}
}

func TestRandomBoundary_Repeatable(t *testing.T) {
	t.Parallel()

	a := message.NewRandomBoundary(rand.NewSource(7))
	b := message.NewRandomBoundary(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Boundary(), b.Boundary())
	}
}

func TestRandomBoundary_Concurrent(t *testing.T) {
	t.Parallel()

	gen := message.NewRandomBoundary(rand.NewSource(1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = gen.Boundary()
			}
		}()
	}
	wg.Wait()

	assert.Regexp(t, boundaryPattern, gen.Boundary())
}

func TestGenerateBoundary(t *testing.T) {
	t.Parallel()

	assert.Regexp(t, boundaryPattern, message.GenerateBoundary())
	assert.Len(t, message.GenerateBoundary(), len(message.BoundaryPrefix)+32)
}
