package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values.
type Config struct {
	// S3 document source
	S3Bucket string
	S3Prefix string

	// DynamoDB call log
	CallLogTable string

	// Bedrock
	BedrockRegion  string
	ModelID        string
	EmbedModelID   string
	EmbedDimension int
	MaxTokens      int

	// OpenSearch vector index
	OpenSearchURL      string
	OpenSearchAccount  string
	OpenSearchPassword string

	// Conversation behavior
	EnableReference     bool
	HistoryWindowChunks int
	ConversationTTL     time.Duration
	RetrievalK          int

	// External call policy
	CallTimeout   time.Duration
	RetryAttempts int

	// HTTP server
	HTTPAddr string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		S3Bucket: getEnv("S3_BUCKET", ""),
		S3Prefix: getEnv("S3_PREFIX", "docs"),

		CallLogTable: getEnv("CALL_LOG_TABLE", "call-log"),

		BedrockRegion:  getEnv("BEDROCK_REGION", "us-west-2"),
		ModelID:        getEnv("MODEL_ID", "anthropic.claude-v2"),
		EmbedModelID:   getEnv("EMBED_MODEL_ID", "amazon.titan-embed-text-v1"),
		EmbedDimension: getEnvInt("EMBED_DIMENSION", 1536),
		MaxTokens:      getEnvInt("MAX_TOKENS", 1024),

		OpenSearchURL:      getEnv("OPENSEARCH_URL", "https://localhost:9200"),
		OpenSearchAccount:  getEnv("OPENSEARCH_ACCOUNT", "admin"),
		OpenSearchPassword: getEnv("OPENSEARCH_PASSWORD", ""),

		EnableReference:     getEnv("ENABLE_REFERENCE", "false") == "true",
		HistoryWindowChunks: getEnvInt("HISTORY_WINDOW_CHUNKS", 2),
		ConversationTTL:     getEnvDuration("CONVERSATION_TTL", 24*time.Hour),
		RetrievalK:          getEnvInt("RETRIEVAL_K", 4),

		CallTimeout:   getEnvDuration("CALL_TIMEOUT", 60*time.Second),
		RetryAttempts: getEnvInt("RETRY_ATTEMPTS", 3),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		LogFile:  getEnv("RAGCHAT_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("RAGCHAT_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
