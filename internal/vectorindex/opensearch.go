package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/hyecheol/ragchat/internal/models"
)

// OpenSearchConfig holds connection settings for the OpenSearch domain.
type OpenSearchConfig struct {
	URL      string
	Username string
	Password string
	// Dimension of the knn_vector field; must match the embedder.
	Dimension int
}

// OpenSearch implements Index on an OpenSearch domain with knn enabled.
type OpenSearch struct {
	client    *opensearch.Client
	embedder  Embedder
	dimension int
}

var _ Index = (*OpenSearch)(nil)

// NewOpenSearch connects to the domain and returns an Index.
func NewOpenSearch(cfg OpenSearchConfig, embedder Embedder) (*OpenSearch, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create opensearch client: %w", err)
	}

	dim := cfg.Dimension
	if dim <= 0 {
		dim = 1536
	}

	return &OpenSearch{
		client:    client,
		embedder:  embedder,
		dimension: dim,
	}, nil
}

// indexDoc is the stored document shape.
type indexDoc struct {
	Content   string    `json:"content"`
	Name      string    `json:"name"`
	Ordinal   int       `json:"ordinal"`
	Embedding []float32 `json:"embedding"`
}

// CreateCollection provisions a knn index for one document upload.
func (o *OpenSearch) CreateCollection(ctx context.Context, name string) error {
	mapping := fmt.Sprintf(`{
  "settings": {"index": {"knn": true}},
  "mappings": {
    "properties": {
      "content":   {"type": "text"},
      "name":      {"type": "keyword"},
      "ordinal":   {"type": "integer"},
      "embedding": {"type": "knn_vector", "dimension": %d}
    }
  }
}`, o.dimension)

	req := opensearchapi.IndicesCreateRequest{
		Index: name,
		Body:  strings.NewReader(mapping),
	}
	res, err := req.Do(ctx, o.client)
	if err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		if strings.Contains(string(body), "resource_already_exists_exception") {
			return nil
		}
		return fmt.Errorf("create collection %s: %s", name, string(body))
	}
	return nil
}

// Add embeds chunks and writes them to the collection.
func (o *OpenSearch) Add(ctx context.Context, collection string, chunks []models.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := o.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}

	for i, c := range chunks {
		doc := indexDoc{
			Content:   c.Content,
			Name:      c.Name,
			Ordinal:   c.Ordinal,
			Embedding: vectors[i],
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal chunk: %w", err)
		}

		req := opensearchapi.IndexRequest{
			Index: collection,
			Body:  bytes.NewReader(payload),
		}
		res, err := req.Do(ctx, o.client)
		if err != nil {
			return fmt.Errorf("index chunk %d: %w", i, err)
		}
		if res.IsError() {
			body, _ := io.ReadAll(res.Body)
			res.Body.Close()
			return fmt.Errorf("index chunk %d: %s", i, string(body))
		}
		res.Body.Close()
	}

	slog.Debug("chunks indexed", "collection", collection, "count", len(chunks))
	return nil
}

// Search runs a knn query against the collection (or wildcard).
func (o *OpenSearch) Search(ctx context.Context, collection, query string, k int) ([]models.DocumentChunk, error) {
	if k <= 0 {
		k = 4
	}

	vector, err := o.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	body := map[string]any{
		"size": k,
		"query": map[string]any{
			"knn": map[string]any{
				"embedding": map[string]any{
					"vector": vector,
					"k":      k,
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{collection},
		Body:  bytes.NewReader(payload),
	}
	res, err := req.Do(ctx, o.client)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		// A wildcard over zero collections is an empty result, not a failure.
		if IsWildcard(collection) && strings.Contains(string(raw), "index_not_found_exception") {
			return nil, nil
		}
		return nil, fmt.Errorf("search %s: %s", collection, string(raw))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source indexDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]models.DocumentChunk, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, models.DocumentChunk{
			Content: hit.Source.Content,
			Name:    hit.Source.Name,
			Ordinal: hit.Source.Ordinal,
		})
	}
	return out, nil
}
