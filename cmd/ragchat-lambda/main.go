// Package main provides the AWS Lambda entry point. Dependencies are
// wired once at cold start; the conversation store lives as long as
// the execution environment does.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/hyecheol/ragchat/internal/calllog"
	"github.com/hyecheol/ragchat/internal/chat"
	"github.com/hyecheol/ragchat/internal/config"
	"github.com/hyecheol/ragchat/internal/llm"
	"github.com/hyecheol/ragchat/internal/loader"
	"github.com/hyecheol/ragchat/internal/memory"
	"github.com/hyecheol/ragchat/internal/models"
	"github.com/hyecheol/ragchat/internal/retry"
	"github.com/hyecheol/ragchat/internal/splitter"
	"github.com/hyecheol/ragchat/internal/storage"
	"github.com/hyecheol/ragchat/internal/summary"
	"github.com/hyecheol/ragchat/internal/vectorindex"
)

func main() {
	cfg := config.Load()

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()
	slog.SetDefault(logger)

	ctx := context.Background()

	runtime, err := llm.NewRuntimeClient(ctx, cfg.BedrockRegion)
	if err != nil {
		logger.Error("failed to create bedrock runtime client", "error", err)
		os.Exit(1)
	}

	model, err := llm.NewModel(runtime, cfg.ModelID, cfg.MaxTokens)
	if err != nil {
		logger.Error("failed to create model", "error", err)
		os.Exit(1)
	}

	embedder, err := llm.NewEmbedder(runtime, cfg.EmbedModelID, cfg.EmbedDimension)
	if err != nil {
		logger.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}

	index, err := vectorindex.NewOpenSearch(vectorindex.OpenSearchConfig{
		URL:       cfg.OpenSearchURL,
		Username:  cfg.OpenSearchAccount,
		Password:  cfg.OpenSearchPassword,
		Dimension: cfg.EmbedDimension,
	}, embedder)
	if err != nil {
		logger.Error("failed to create vector index", "error", err)
		os.Exit(1)
	}

	blobs, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Prefix)
	if err != nil {
		logger.Error("failed to create blob store", "error", err)
		os.Exit(1)
	}

	sink, err := calllog.NewDynamoDB(ctx, cfg.CallLogTable)
	if err != nil {
		logger.Error("failed to create call log sink", "error", err)
		os.Exit(1)
	}

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
		Conversations: memory.NewStore(cfg.ConversationTTL, cfg.EnableReference),
		Logger:        logger,
	})

	logger.Info("ragchat lambda ready", "model", cfg.ModelID, "opensearch_url", cfg.OpenSearchURL)

	lambda.Start(func(ctx context.Context, req models.Request) (models.Response, error) {
		return dispatcher.Handle(ctx, req)
	})
}
