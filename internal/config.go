package internal

import "time"

type Config struct {
	Host string `env:"HOST,default=0.0.0.0"`
	Port int    `env:"PORT,default=8000"`

	LogLevel       string `env:"LOG_LEVEL,default=info"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`

	// LimitPriceRecords caps one repository page; nil means unbounded.
	LimitPriceRecords *int `env:"LIMIT_PRICE_RECORDS"`

	// ConnectionBufferSize is the per-connection outbound event buffer.
	// A full buffer counts as a delivery failure and prunes the participant.
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=5s"`

	// SessionTTL bounds the lifetime of sessions that were created but never
	// joined. Joined sessions are garbage-collected on last leave instead.
	SessionTTL   time.Duration `env:"SESSION_TTL,default=10m"`
	ReapInterval time.Duration `env:"REAP_INTERVAL,default=1m"`

	// AssistantID is the reserved sender identity for generated replies.
	AssistantID string `env:"ASSISTANT_ID,default=ai_assistant"`

	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`

	StatsInterval time.Duration `env:"STATS_INTERVAL,default=5s"`
}
