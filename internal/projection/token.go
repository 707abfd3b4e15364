package projection

import "sync/atomic"

// TokenSource issues monotonically increasing render tokens. A debounced
// preview render records the token it started from and discards its result
// if a newer token has been issued since.
type TokenSource struct {
	current atomic.Uint64
}

// Next invalidates all outstanding work and returns a fresh token.
func (t *TokenSource) Next() uint64 {
	return t.current.Add(1)
}

// Current returns the latest issued token.
func (t *TokenSource) Current() uint64 {
	return t.current.Load()
}

// Valid reports whether a result produced under token may still be applied.
func (t *TokenSource) Valid(token uint64) bool {
	return t.current.Load() == token
}
