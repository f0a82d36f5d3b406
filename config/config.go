package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"compass-api"`
	Port                          int      `env:"PORT" env-default:"3000"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST,PUT,PATCH,DELETE"`
	StartupMaxAttempts            int      `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// Auth Issuer URL
	AuthIssuerURL string `env:"AUTH_ISSUER_URL" env-default:""`
	// Auth Client ID
	AuthClientID string `env:"AUTH_CLIENT_ID" env-default:""`
	// Auth Enabled - when false, allows X-Tenant-ID and X-User-ID headers for testing
	AuthEnabled bool `env:"AUTH_ENABLED" env-default:"false"`

	// Redis host
	RedisHost string `env:"REDIS_HOST" env-default:"localhost"`
	// Redis port
	RedisPort int `env:"REDIS_PORT" env-default:"6379"`
	// Redis password
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	// Redis database number
	RedisDB int `env:"REDIS_DB" env-default:"0"`
	// Key namespace prefix for tenant plan libraries
	RedisLibraryNamespace string `env:"REDIS_LIBRARY_NAMESPACE" env-default:"compass:library"`
	// TTL for the per-tenant library mutation lock
	LibraryLockTTL time.Duration `env:"LIBRARY_LOCK_TTL" env-default:"5s"`

	// Kafka brokers (comma-separated)
	KafkaBrokers string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	// Kafka topic for plan lifecycle events
	KafkaPlanEventsTopic string `env:"KAFKA_PLAN_EVENTS_TOPIC" env-default:"plan-events"`
	// Kafka topic for events that failed to publish downstream
	KafkaErrorTopic string `env:"KAFKA_ERROR_TOPIC" env-default:"plan-events-errors"`
	// Enable/disable event emission
	KafkaEnabled bool `env:"KAFKA_ENABLED" env-default:"true"`

	// Strategy generation backend base URL
	StrategyBaseURL string `env:"STRATEGY_BASE_URL" env-default:"http://localhost:4000"`
	// Strategy generation request timeout
	StrategyTimeout time.Duration `env:"STRATEGY_TIMEOUT" env-default:"45s"`
	// Source tag sent with every strategy generation request
	StrategySourceTag string `env:"STRATEGY_SOURCE_TAG" env-default:"compass-api"`
	// Max strategy generations allowed per tenant per window (0 disables)
	StrategyRateLimit int64 `env:"STRATEGY_RATE_LIMIT" env-default:"30"`
	// Sliding window for the strategy generation limit
	StrategyRateWindow time.Duration `env:"STRATEGY_RATE_WINDOW" env-default:"1h"`

	// Tracing settings
	// Enable OTLP tracing export (set to true to send traces to collector)
	OTLPEnabled bool `env:"OTLP_ENABLED" env-default:"false"`
	// OTLP collector endpoint
	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:"localhost:4317"`
	// OTLP protocol (grpc or http)
	OTLPProtocol string `env:"OTLP_PROTOCOL" env-default:"grpc"`
	// Disable TLS for OTLP (for local development)
	OTLPInsecure bool `env:"OTLP_INSECURE" env-default:"true"`
}
