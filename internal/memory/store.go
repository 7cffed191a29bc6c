// Package memory keeps per-user conversation state for the lifetime of
// the process.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/hyecheol/ragchat/internal/splitter"
)

// Turn is one completed (input, output) exchange.
type Turn struct {
	Input  string
	Output string
}

// Conversation is the ordered turn history for one user. All methods
// are safe for concurrent use; the embedded mutex serializes the
// read-modify-append cycle so concurrent requests for the same user
// cannot interleave history inconsistently.
type Conversation struct {
	mu sync.Mutex

	turns    []Turn
	lastUsed time.Time

	// referenceEnabled controls citation attachment for this session.
	referenceEnabled bool
}

// Append records a completed turn. Turns are append-only and never
// reordered or deleted.
func (c *Conversation) Append(input, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, Turn{Input: input, Output: output})
	c.lastUsed = time.Now()
}

// Len returns the number of recorded turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Turns returns a copy of the recorded turns in arrival order.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// SetReferenceEnabled toggles citation attachment for this session.
func (c *Conversation) SetReferenceEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.referenceEnabled = on
	c.lastUsed = time.Now()
}

// ReferenceEnabled reports whether citations are attached to answers.
func (c *Conversation) ReferenceEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.referenceEnabled
}

// transcript serializes the full history as alternating Human/Assistant
// lines.
func (c *Conversation) transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sb strings.Builder
	for _, t := range c.turns {
		sb.WriteString("Human: ")
		sb.WriteString(t.Input)
		sb.WriteString("\nAssistant: ")
		sb.WriteString(t.Output)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Window re-chunks the transcript with the given configuration and
// returns the last windowChunks chunks joined by a space. This bounds
// the history included in a prompt to roughly two transcript pages
// regardless of total conversation length. Returns "" when there is no
// history yet.
func (c *Conversation) Window(cfg splitter.Config, windowChunks int) string {
	if windowChunks <= 0 {
		windowChunks = 2
	}

	chunks := splitter.Split(c.transcript(), cfg)
	if len(chunks) == 0 {
		return ""
	}
	if len(chunks) > windowChunks {
		chunks = chunks[len(chunks)-windowChunks:]
	}
	return strings.Join(chunks, " ")
}

// Store maps user identity to conversation memory. Conversations are
// created on first contact and evicted only by TTL sweep.
type Store struct {
	mu   sync.Mutex
	byID map[string]*Conversation
	ttl  time.Duration

	// referenceDefault seeds each new conversation's citation setting.
	referenceDefault bool
}

// NewStore creates a store. ttl bounds how long an idle conversation is
// kept; zero disables eviction. referenceDefault seeds the per-session
// citation setting of newly created conversations.
func NewStore(ttl time.Duration, referenceDefault bool) *Store {
	return &Store{
		byID:             make(map[string]*Conversation),
		ttl:              ttl,
		referenceDefault: referenceDefault,
	}
}

// Get returns the conversation for userID, creating it on first
// contact. Subsequent calls for the same id return the same instance.
func (s *Store) Get(userID string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.byID[userID]
	if !ok {
		conv = &Conversation{
			lastUsed:         time.Now(),
			referenceEnabled: s.referenceDefault,
		}
		s.byID[userID] = conv
	} else {
		conv.mu.Lock()
		conv.lastUsed = time.Now()
		conv.mu.Unlock()
	}
	return conv
}

// Len returns the number of live conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Sweep drops conversations idle longer than the TTL and returns how
// many were evicted. A zero TTL makes Sweep a no-op.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, conv := range s.byID {
		conv.mu.Lock()
		idle := now.Sub(conv.lastUsed)
		conv.mu.Unlock()
		if idle > s.ttl {
			delete(s.byID, id)
			evicted++
		}
	}
	return evicted
}
