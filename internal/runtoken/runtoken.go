// Package runtoken generates the tokens that distinguish scoring runs with
// identical inputs in the history store.
package runtoken

import (
	"sync"

	"github.com/google/uuid"
)

// Generator produces run tokens.
type Generator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 tokens. Stateless.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
// Panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns predetermined tokens in order.
type SequenceGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewSequenceGenerator creates a generator over tokens.
func NewSequenceGenerator(tokens ...string) *SequenceGenerator {
	return &SequenceGenerator{tokens: tokens}
}

// Generate returns the next token. Panics once the tokens are exhausted.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("SequenceGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
