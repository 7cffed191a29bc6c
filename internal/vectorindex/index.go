// Package vectorindex stores document chunks as vectors and retrieves
// them by similarity.
package vectorindex

import (
	"context"
	"strings"

	"github.com/hyecheol/ragchat/internal/models"
)

// collectionPrefix namespaces every collection managed by this service.
const collectionPrefix = "rag-index-"

// Wildcard matches every collection, across all users. Querying it
// deliberately lets one user's question retrieve passages from another
// user's documents; callers relying on isolation must pass a concrete
// collection name instead.
const Wildcard = collectionPrefix + "*"

// CollectionName derives the per-upload collection for a (user,
// request) pair. Each document upload gets a fresh collection rather
// than merging into the user's prior ones.
func CollectionName(userID, requestID string) string {
	return collectionPrefix + userID + "-" + requestID
}

// IsWildcard reports whether name addresses multiple collections.
func IsWildcard(name string) bool {
	return strings.HasSuffix(name, "*")
}

// Index is the narrow contract the dispatcher needs from a vector
// store. Implementations embed text themselves.
type Index interface {
	// CreateCollection provisions an empty collection. Creating an
	// existing collection is not an error.
	CreateCollection(ctx context.Context, name string) error

	// Add embeds and stores chunks in the named collection.
	Add(ctx context.Context, collection string, chunks []models.DocumentChunk) error

	// Search returns up to k chunks most similar to the query. The
	// collection may be a wildcard.
	Search(ctx context.Context, collection, query string, k int) ([]models.DocumentChunk, error)
}

// Embedder is the embedding capability an index implementation needs.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
