// Package chat dispatches inbound requests to the text and document
// pipelines and persists a call-log record per request.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hyecheol/ragchat/internal/calllog"
	"github.com/hyecheol/ragchat/internal/memory"
	"github.com/hyecheol/ragchat/internal/metrics"
	"github.com/hyecheol/ragchat/internal/models"
	"github.com/hyecheol/ragchat/internal/prompt"
	"github.com/hyecheol/ragchat/internal/retry"
	"github.com/hyecheol/ragchat/internal/splitter"
	"github.com/hyecheol/ragchat/internal/vectorindex"
)

// Control commands recognized on the text path.
const (
	cmdEnableReference  = "enableReference"
	cmdDisableReference = "disableReference"

	msgReferenceEnabled  = "Reference is enabled"
	msgReferenceDisabled = "Reference is disabled"
)

// directQueryThreshold is the query length (in runes) at which the
// history+retrieval pipeline is bypassed and the query goes straight to
// generation, keeping the prompt within budget.
const directQueryThreshold = 1800

// Generator produces text for a fully composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DocumentLoader converts an uploaded object into ordered chunks.
type DocumentLoader interface {
	Load(ctx context.Context, key string) ([]models.DocumentChunk, error)
}

// Summarizer produces a short summary from a document's chunks.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []models.DocumentChunk) (string, error)
}

// Config tunes the dispatcher.
type Config struct {
	// HistoryWindowChunks bounds how many transcript chunks of history
	// enter a prompt.
	HistoryWindowChunks int
	// RetrievalK is the passage count fetched per query.
	RetrievalK int
	// TranscriptSplit is the chunking configuration for history
	// windowing.
	TranscriptSplit splitter.Config
	// Retry bounds every external call.
	Retry retry.Policy
}

// Deps are the external collaborators of the dispatcher.
type Deps struct {
	Generator     Generator
	Index         vectorindex.Index
	Loader        DocumentLoader
	Summarizer    Summarizer
	Log           calllog.Sink
	Conversations *memory.Store
	Metrics       *metrics.Collector
	Logger        *slog.Logger
}

// Service is the request dispatcher.
type Service struct {
	cfg  Config
	deps Deps
}

// NewService creates a dispatcher. Metrics and Logger may be nil.
func NewService(cfg Config, deps Deps) *Service {
	if cfg.HistoryWindowChunks <= 0 {
		cfg.HistoryWindowChunks = 2
	}
	if cfg.RetrievalK <= 0 {
		cfg.RetrievalK = 4
	}
	if len(cfg.TranscriptSplit.Separators) == 0 {
		cfg.TranscriptSplit = splitter.TranscriptConfig()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewCollector()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Service{cfg: cfg, deps: deps}
}

// Handle processes one inbound request and writes its call-log record.
// A failed log write discards the produced message and fails the whole
// request.
func (s *Service) Handle(ctx context.Context, req models.Request) (models.Response, error) {
	start := time.Now()

	var msg string
	var err error
	switch req.Type {
	case models.RequestTypeText:
		msg, err = s.handleText(ctx, req)
	case models.RequestTypeDocument:
		msg, err = s.handleDocument(ctx, req)
	default:
		err = fmt.Errorf("unknown request type %q", req.Type)
	}
	if err != nil {
		s.deps.Logger.Error("request failed",
			"user_id", req.UserID, "request_id", req.RequestID, "type", req.Type, "error", err)
		return models.Response{}, err
	}

	if err := s.writeLog(ctx, req, msg); err != nil {
		return models.Response{}, err
	}

	s.deps.Logger.Info("request handled",
		"user_id", req.UserID, "request_id", req.RequestID, "type", req.Type,
		"duration_ms", time.Since(start).Milliseconds())

	return models.Response{StatusCode: 200, Msg: msg}, nil
}

// handleText runs the control commands, the direct path for long
// queries, or the full retrieval+history pipeline.
func (s *Service) handleText(ctx context.Context, req models.Request) (string, error) {
	conv := s.deps.Conversations.Get(req.UserID)

	switch req.Body {
	case cmdEnableReference:
		conv.SetReferenceEnabled(true)
		return msgReferenceEnabled, nil
	case cmdDisableReference:
		conv.SetReferenceEnabled(false)
		return msgReferenceDisabled, nil
	}

	query := req.Body
	if utf8.RuneCountInString(query) >= directQueryThreshold {
		// Over-budget queries skip history and retrieval entirely and
		// are not recorded in conversation memory.
		return s.generate(ctx, prompt.Bare(query))
	}

	history := conv.Window(s.cfg.TranscriptSplit, s.cfg.HistoryWindowChunks)

	passages, err := s.searchPassages(ctx, query)
	if err != nil {
		return "", err
	}

	answer, err := s.generate(ctx, prompt.Compose(query, history, passages))
	if err != nil {
		return "", err
	}

	if conv.ReferenceEnabled() {
		answer += prompt.References(passages)
	}

	// The stored output is newline-flattened so one turn stays one
	// transcript line.
	conv.Append(query, strings.ReplaceAll(answer, "\n", " "))

	return answer, nil
}

// handleDocument loads and indexes an uploaded document into a fresh
// per-(user, request) collection, then summarizes it.
func (s *Service) handleDocument(ctx context.Context, req models.Request) (string, error) {
	var chunks []models.DocumentChunk
	err := s.deps.Metrics.Timed(metrics.OpBlobFetch, func() error {
		var loadErr error
		chunks, loadErr = s.deps.Loader.Load(ctx, req.Body)
		return loadErr
	})
	if err != nil {
		return "", err
	}

	collection := vectorindex.CollectionName(req.UserID, req.RequestID)
	err = s.deps.Metrics.Timed(metrics.OpIndexWrite, func() error {
		return s.cfg.Retry.Do(ctx, func(ctx context.Context) error {
			if err := s.deps.Index.CreateCollection(ctx, collection); err != nil {
				return err
			}
			return s.deps.Index.Add(ctx, collection, chunks)
		})
	})
	if err != nil {
		return "", fmt.Errorf("index document %s: %w", req.Body, err)
	}

	s.deps.Logger.Info("document indexed",
		"user_id", req.UserID, "collection", collection, "chunks", len(chunks))

	msg, err := s.deps.Summarizer.Summarize(ctx, chunks)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return msg, nil
}

// searchPassages queries the wildcard collection: retrieval spans the
// indexed documents of every user, not only the requester's.
func (s *Service) searchPassages(ctx context.Context, query string) ([]models.DocumentChunk, error) {
	var passages []models.DocumentChunk
	err := s.deps.Metrics.Timed(metrics.OpIndexSearch, func() error {
		return s.cfg.Retry.Do(ctx, func(ctx context.Context) error {
			var searchErr error
			passages, searchErr = s.deps.Index.Search(ctx, vectorindex.Wildcard, query, s.cfg.RetrievalK)
			return searchErr
		})
	})
	if err != nil {
		return nil, fmt.Errorf("search passages: %w", err)
	}
	return passages, nil
}

func (s *Service) generate(ctx context.Context, p string) (string, error) {
	var out string
	err := s.deps.Metrics.Timed(metrics.OpGenerate, func() error {
		return s.cfg.Retry.Do(ctx, func(ctx context.Context) error {
			var genErr error
			out, genErr = s.deps.Generator.Generate(ctx, p)
			return genErr
		})
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return out, nil
}

func (s *Service) writeLog(ctx context.Context, req models.Request, msg string) error {
	entry := models.CallLogEntry{
		UserID:    req.UserID,
		RequestID: req.RequestID,
		Type:      req.Type,
		Body:      req.Body,
		Msg:       msg,
		CreatedAt: time.Now(),
	}

	err := s.deps.Metrics.Timed(metrics.OpLogWrite, func() error {
		return s.cfg.Retry.Do(ctx, func(ctx context.Context) error {
			return s.deps.Log.Append(ctx, entry)
		})
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogWrite, err)
	}
	return nil
}
