// Package calllog persists one record per handled request to an
// append-only external store.
package calllog

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hyecheol/ragchat/internal/models"
)

// Sink appends call-log entries. Entries are never read back by this
// service.
type Sink interface {
	Append(ctx context.Context, entry models.CallLogEntry) error
}

// DynamoDB implements Sink on a DynamoDB table.
type DynamoDB struct {
	client *dynamodb.Client
	table  string
}

var _ Sink = (*DynamoDB)(nil)

// NewDynamoDB creates a sink using default AWS credential resolution.
func NewDynamoDB(ctx context.Context, table string) (*DynamoDB, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &DynamoDB{
		client: dynamodb.NewFromConfig(cfg),
		table:  table,
	}, nil
}

// Append writes one entry.
func (d *DynamoDB) Append(ctx context.Context, entry models.CallLogEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	item := map[string]types.AttributeValue{
		"user-id":    &types.AttributeValueMemberS{Value: entry.UserID},
		"request-id": &types.AttributeValueMemberS{Value: entry.RequestID},
		"type":       &types.AttributeValueMemberS{Value: string(entry.Type)},
		"body":       &types.AttributeValueMemberS{Value: entry.Body},
		"msg":        &types.AttributeValueMemberS{Value: entry.Msg},
		"created-at": &types.AttributeValueMemberS{Value: createdAt.UTC().Format(time.RFC3339)},
	}

	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put call log item: %w", err)
	}
	return nil
}
