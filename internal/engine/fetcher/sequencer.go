package fetcher

import "sync"

// Token identifies one fetch issued under a sequence key.
type Token struct {
	Key string
	Seq uint64
}

// Sequencer hands out monotonically increasing tokens per key, so the
// owner of a cache can tell whether a result it is about to apply was
// superseded by a later fetch. It is safe for concurrent use.
type Sequencer struct {
	mu   sync.Mutex
	last map[string]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{last: make(map[string]uint64)}
}

// Next issues a new token under key.
func (s *Sequencer) Next(key string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last[key]++
	return Token{Key: key, Seq: s.last[key]}
}

// Latest reports whether no token was issued under t.Key after t.
func (s *Sequencer) Latest(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return t.Seq != 0 && s.last[t.Key] == t.Seq
}
