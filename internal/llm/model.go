// Package llm provides generation and embedding services backed by
// AWS Bedrock through langchaingo.
package llm

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/bedrock"
)

// NewRuntimeClient creates a Bedrock runtime client for the region.
func NewRuntimeClient(ctx context.Context, region string) (*bedrockruntime.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

// Model wraps a Bedrock-hosted LLM for text generation.
type Model struct {
	llm       *bedrock.LLM
	modelID   string
	maxTokens int
}

// NewModel creates a generation model on an existing runtime client.
func NewModel(client *bedrockruntime.Client, modelID string, maxTokens int) (*Model, error) {
	model, err := bedrock.New(
		bedrock.WithClient(client),
		bedrock.WithModel(modelID),
	)
	if err != nil {
		return nil, fmt.Errorf("create bedrock model: %w", err)
	}

	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Model{
		llm:       model,
		modelID:   modelID,
		maxTokens: maxTokens,
	}, nil
}

// Generate produces text for a fully composed prompt.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt,
		llms.WithMaxTokens(m.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return response, nil
}

// Model returns the generation model identifier.
func (m *Model) Model() string {
	return m.modelID
}
