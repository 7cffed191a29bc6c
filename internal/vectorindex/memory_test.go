package vectorindex

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyecheol/ragchat/internal/models"
)

// hashEmbedder is a deterministic embedder: texts sharing words get
// closer vectors.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		var h uint32
		for _, r := range word {
			h = h*31 + uint32(r)
		}
		vec[h%8]++
	}
	return vec, nil
}

func (e hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func TestCollectionName(t *testing.T) {
	got := CollectionName("alice", "req-1")
	require.Equal(t, "rag-index-alice-req-1", got)
	require.True(t, IsWildcard(Wildcard))
	require.False(t, IsWildcard(got))
}

func TestMemory_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx := NewMemory(hashEmbedder{})

	coll := CollectionName("alice", "r1")
	require.NoError(t, idx.CreateCollection(ctx, coll))
	require.NoError(t, idx.Add(ctx, coll, []models.DocumentChunk{
		{Content: "refund policy terms", Name: "policy.pdf", Ordinal: 1},
		{Content: "shipping rates table", Name: "policy.pdf", Ordinal: 2},
	}))

	hits, err := idx.Search(ctx, coll, "refund policy", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "refund policy terms", hits[0].Content)
}

func TestMemory_WildcardSearchesAllUsers(t *testing.T) {
	ctx := context.Background()
	idx := NewMemory(hashEmbedder{})

	require.NoError(t, idx.Add(ctx, CollectionName("alice", "r1"), []models.DocumentChunk{
		{Content: "alpha document", Name: "a.txt", Ordinal: 1},
	}))
	require.NoError(t, idx.Add(ctx, CollectionName("bob", "r2"), []models.DocumentChunk{
		{Content: "bravo document", Name: "b.txt", Ordinal: 1},
	}))

	hits, err := idx.Search(ctx, Wildcard, "document", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2, "wildcard search spans collections from all users")
}

func TestMemory_SearchEmptyIndex(t *testing.T) {
	idx := NewMemory(hashEmbedder{})

	hits, err := idx.Search(context.Background(), Wildcard, "anything", 4)
	require.NoError(t, err)
	require.Empty(t, hits)
}
