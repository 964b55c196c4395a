package testutil

// DefaultRunToken is returned by a FixedTokenGenerator built with an empty token.
const DefaultRunToken = "test-run-default"

// FixedTokenGenerator returns the same run token on every call, so run IDs
// derived from it are stable across test runs. Safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a generator for token, or DefaultRunToken if empty.
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = DefaultRunToken
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
