package message

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// BoundaryPrefix is the run of dashes that starts every generated boundary.
const BoundaryPrefix = "---------------------"

// BoundaryGenerator produces the boundary tokens assigned to multipart
// entities.
type BoundaryGenerator interface {
	Boundary() string
}

// BoundaryFunc adapts an ordinary function into a BoundaryGenerator.
type BoundaryFunc func() string

// Boundary calls f().
func (f BoundaryFunc) Boundary() string {
	return f()
}

// RandomBoundary generates boundaries from 128 bits of randomness drawn from
// a math/rand source: eight 16-bit groups, each rendered as four lower-case
// hex digits, after BoundaryPrefix. It is safe for concurrent use.
//
// The boundary is not checked against the content it will delimit.
type RandomBoundary struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomBoundary returns a generator drawing from src. Pass a fixed seed
// source for repeatable boundaries:
//
//	gen := message.NewRandomBoundary(rand.NewSource(42))
func NewRandomBoundary(src rand.Source) *RandomBoundary {
	return &RandomBoundary{rnd: rand.New(src)}
}

// Boundary returns a new boundary token.
func (g *RandomBoundary) Boundary() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(len(BoundaryPrefix) + 32)
	b.WriteString(BoundaryPrefix)
	for i := 0; i < 8; i++ {
		_, _ = fmt.Fprintf(&b, "%04x", g.rnd.Intn(1<<16))
	}
	return b.String()
}

// DefaultBoundaryGenerator is used by entities that were not given a generator
// of their own.
var DefaultBoundaryGenerator BoundaryGenerator = NewRandomBoundary(rand.NewSource(time.Now().UnixNano()))

// GenerateBoundary returns a boundary from DefaultBoundaryGenerator.
func GenerateBoundary() string {
	return DefaultBoundaryGenerator.Boundary()
}
