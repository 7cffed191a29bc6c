package cli

import (
	"context"
	"fmt"

	"github.com/hyecheol/ragchat/internal/calllog"
	"github.com/hyecheol/ragchat/internal/chat"
	"github.com/hyecheol/ragchat/internal/llm"
	"github.com/hyecheol/ragchat/internal/loader"
	"github.com/hyecheol/ragchat/internal/memory"
	"github.com/hyecheol/ragchat/internal/metrics"
	"github.com/hyecheol/ragchat/internal/retry"
	"github.com/hyecheol/ragchat/internal/splitter"
	"github.com/hyecheol/ragchat/internal/storage"
	"github.com/hyecheol/ragchat/internal/summary"
	"github.com/hyecheol/ragchat/internal/vectorindex"
)

// services bundles everything a command needs to handle requests.
type services struct {
	dispatcher    *chat.Service
	conversations *memory.Store
	collector     *metrics.Collector
}

// buildServices wires the dispatcher against the real AWS and
// OpenSearch backends.
func buildServices(ctx context.Context) (*services, error) {
	runtime, err := llm.NewRuntimeClient(ctx, cfg.BedrockRegion)
	if err != nil {
		return nil, fmt.Errorf("create bedrock runtime client: %w", err)
	}

	model, err := llm.NewModel(runtime, cfg.ModelID, cfg.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}

	embedder, err := llm.NewEmbedder(runtime, cfg.EmbedModelID, cfg.EmbedDimension)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	index, err := vectorindex.NewOpenSearch(vectorindex.OpenSearchConfig{
		URL:       cfg.OpenSearchURL,
		Username:  cfg.OpenSearchAccount,
		Password:  cfg.OpenSearchPassword,
		Dimension: cfg.EmbedDimension,
	}, embedder)
	if err != nil {
		return nil, fmt.Errorf("create vector index: %w", err)
	}

	blobs, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Prefix)
	if err != nil {
		return nil, fmt.Errorf("create blob store: %w", err)
	}

	sink, err := calllog.NewDynamoDB(ctx, cfg.CallLogTable)
	if err != nil {
		return nil, fmt.Errorf("create call log sink: %w", err)
	}

	conversations := memory.NewStore(cfg.ConversationTTL, cfg.EnableReference)
	collector := metrics.NewCollector()

	dispatcher := chat.NewService(chat.Config{
		HistoryWindowChunks: cfg.HistoryWindowChunks,
		RetrievalK:          cfg.RetrievalK,
		TranscriptSplit:     splitter.TranscriptConfig(),
		Retry: retry.Policy{
			Timeout:  cfg.CallTimeout,
			Attempts: cfg.RetryAttempts,
		},
	}, chat.Deps{
		Generator:     model,
		Index:         index,
		Loader:        loader.New(blobs, splitter.DocumentConfig()),
		Summarizer:    summary.New(model),
		Log:           sink,
		Conversations: conversations,
		Metrics:       collector,
		Logger:        logger,
	})

	return &services{
		dispatcher:    dispatcher,
		conversations: conversations,
		collector:     collector,
	}, nil
}
