package vectorindex

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/hyecheol/ragchat/internal/models"
)

// Memory is an in-process Index used for tests and local runs without
// an OpenSearch domain.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]memoryDoc
	embedder    Embedder
}

type memoryDoc struct {
	chunk  models.DocumentChunk
	vector []float32
}

var _ Index = (*Memory)(nil)

// NewMemory creates an empty in-memory index.
func NewMemory(embedder Embedder) *Memory {
	return &Memory{
		collections: make(map[string][]memoryDoc),
		embedder:    embedder,
	}
}

// CreateCollection registers an empty collection.
func (m *Memory) CreateCollection(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[name]; !ok {
		m.collections[name] = nil
	}
	return nil
}

// Add embeds and stores chunks.
func (m *Memory) Add(ctx context.Context, collection string, chunks []models.DocumentChunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range chunks {
		m.collections[collection] = append(m.collections[collection], memoryDoc{
			chunk:  c,
			vector: vectors[i],
		})
	}
	return nil
}

// Search scores every stored chunk in the matching collections by
// cosine similarity and returns the top k.
func (m *Memory) Search(ctx context.Context, collection, query string, k int) ([]models.DocumentChunk, error) {
	if k <= 0 {
		k = 4
	}

	queryVec, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		chunk models.DocumentChunk
		score float64
	}
	var candidates []scored

	prefix := strings.TrimSuffix(collection, "*")
	for name, docs := range m.collections {
		if IsWildcard(collection) {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
		} else if name != collection {
			continue
		}
		for _, doc := range docs {
			candidates = append(candidates, scored{
				chunk: doc.chunk,
				score: cosine(queryVec, doc.vector),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	out := make([]models.DocumentChunk, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.chunk)
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
