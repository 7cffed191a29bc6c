package memory

import (
	"strings"
	"testing"
	"time"

	"github.com/hyecheol/ragchat/internal/splitter"
)

func TestStore_GetReturnsSameInstance(t *testing.T) {
	store := NewStore(0, false)

	a := store.Get("alice")
	b := store.Get("alice")
	c := store.Get("bob")

	if a != b {
		t.Error("Get returned a different instance for the same user")
	}
	if a == c {
		t.Error("Get returned the same instance for different users")
	}
	if store.Len() != 2 {
		t.Errorf("store has %d conversations, want 2", store.Len())
	}
}

func TestStore_ReferenceDefault(t *testing.T) {
	on := NewStore(0, true).Get("u")
	off := NewStore(0, false).Get("u")

	if !on.ReferenceEnabled() {
		t.Error("conversation should inherit reference default true")
	}
	if off.ReferenceEnabled() {
		t.Error("conversation should inherit reference default false")
	}

	off.SetReferenceEnabled(true)
	if !off.ReferenceEnabled() {
		t.Error("SetReferenceEnabled(true) did not stick")
	}
}

func TestConversation_AppendOrder(t *testing.T) {
	conv := NewStore(0, false).Get("u")
	conv.Append("first", "one")
	conv.Append("second", "two")

	turns := conv.Turns()
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Input != "first" || turns[1].Input != "second" {
		t.Errorf("turns out of order: %+v", turns)
	}
}

func TestConversation_WindowEmpty(t *testing.T) {
	conv := NewStore(0, false).Get("u")

	if got := conv.Window(splitter.TranscriptConfig(), 2); got != "" {
		t.Errorf("Window on empty history = %q, want \"\"", got)
	}
}

func TestConversation_WindowSingleChunk(t *testing.T) {
	conv := NewStore(0, false).Get("u")
	conv.Append("hello", "hi there")

	want := "Human: hello\nAssistant: hi there\n"
	if got := conv.Window(splitter.TranscriptConfig(), 2); got != want {
		t.Errorf("Window = %q, want %q", got, want)
	}
}

func TestConversation_WindowLastTwoChunks(t *testing.T) {
	conv := NewStore(0, false).Get("u")
	long := strings.Repeat("x", 400)
	for i := 0; i < 20; i++ {
		conv.Append(long, long)
	}

	cfg := splitter.TranscriptConfig()
	chunks := splitter.Split(conv.transcript(), cfg)
	if len(chunks) < 3 {
		t.Fatalf("test transcript produced %d chunks, want >= 3", len(chunks))
	}

	want := chunks[len(chunks)-2] + " " + chunks[len(chunks)-1]
	if got := conv.Window(cfg, 2); got != want {
		t.Error("Window should return exactly the last two chunks")
	}
}

func TestConversation_WindowChunksConfigurable(t *testing.T) {
	conv := NewStore(0, false).Get("u")
	long := strings.Repeat("y", 400)
	for i := 0; i < 20; i++ {
		conv.Append(long, long)
	}

	cfg := splitter.TranscriptConfig()
	chunks := splitter.Split(conv.transcript(), cfg)
	if len(chunks) < 4 {
		t.Fatalf("test transcript produced %d chunks, want >= 4", len(chunks))
	}

	want := strings.Join(chunks[len(chunks)-3:], " ")
	if got := conv.Window(cfg, 3); got != want {
		t.Error("Window(3) should return exactly the last three chunks")
	}
}

func TestStore_SweepEvictsIdle(t *testing.T) {
	store := NewStore(time.Hour, false)
	store.Get("idle")
	store.Get("active")

	// Age the idle conversation past the TTL.
	store.mu.Lock()
	store.byID["idle"].lastUsed = time.Now().Add(-2 * time.Hour)
	store.mu.Unlock()

	if evicted := store.Sweep(time.Now()); evicted != 1 {
		t.Errorf("Sweep evicted %d, want 1", evicted)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d conversations after sweep, want 1", store.Len())
	}
}

func TestStore_SweepDisabledWithZeroTTL(t *testing.T) {
	store := NewStore(0, false)
	store.Get("u")

	if evicted := store.Sweep(time.Now().Add(24 * time.Hour)); evicted != 0 {
		t.Errorf("Sweep with zero TTL evicted %d, want 0", evicted)
	}
}
