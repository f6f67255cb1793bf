package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration, read from the environment.
type Config struct {
	AppEnv     string `env:"APP_ENV"   env-default:"dev"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	HTTP       HTTPConfig
	Translator TranslatorConfig
	Speech     SpeechConfig
	OpenAI     OpenAIConfig
	Cache      CacheConfig
	Kafka      KafkaConfig

	HealthcheckInterval time.Duration `env:"HEALTHCHECK_INTERVAL" env-default:"15s"`
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type TranslatorConfig struct {
	Backend    string        `env:"TRANSLATOR_BACKEND"     env-default:"google"`
	TargetLang string        `env:"TRANSLATOR_TARGET_LANG" env-default:"en"`
	ChunkSize  int           `env:"TRANSLATOR_CHUNK_SIZE"  env-default:"1500"`
	Timeout    time.Duration `env:"TRANSLATOR_TIMEOUT"     env-default:"15s"`
}

type SpeechConfig struct {
	Backend string `env:"SPEECH_BACKEND" env-default:"google"`
	Lang    string `env:"SPEECH_LANG"    env-default:"es"`
	Voice   string `env:"SPEECH_VOICE"   env-default:"alloy"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `env:"OPENAI_MODEL"    env-default:"gpt-4o-mini"`
	BaseURL string        `env:"OPENAI_BASE_URL"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT"  env-default:"60s"`
}

type CacheConfig struct {
	Backend        string        `env:"CACHE_BACKEND"       env-default:"memory"`
	TTL            time.Duration `env:"CACHE_TTL"           env-default:"24h"`
	RedisURL       string        `env:"REDIS_URL"           env-default:"redis://localhost:6379"`
	ValkeyAddress  string        `env:"VALKEY_INIT_ADDRESS" env-default:"localhost:6379"`
	ValkeyPassword string        `env:"VALKEY_PASSWORD"`
	ValkeyTLS      bool          `env:"VALKEY_TLS"          env-default:"false"`
}

type KafkaConfig struct {
	Broker       string `env:"KAFKA_BROKER"            env-default:"localhost:29092"`
	GroupID      string `env:"KAFKA_CONSUMER_GROUP_ID" env-default:"sentilens-worker"`
	RequestTopic string `env:"KAFKA_REQUEST_TOPIC"     env-default:"analysis-request"`
	ResultsTopic string `env:"KAFKA_RESULTS_TOPIC"     env-default:"analysis-results"`

	BatchSize    int           `env:"BATCH_SIZE"    env-default:"10"`
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT" env-default:"5s"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks backend selections and the settings they depend on.
func (c *Config) Validate() error {
	switch c.Translator.Backend {
	case "google":
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("TRANSLATOR_BACKEND=openai requires OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown TRANSLATOR_BACKEND %q", c.Translator.Backend)
	}

	switch c.Speech.Backend {
	case "google":
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("SPEECH_BACKEND=openai requires OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown SPEECH_BACKEND %q", c.Speech.Backend)
	}

	switch c.Cache.Backend {
	case "memory", "redis", "valkey", "none":
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}

	if c.Translator.ChunkSize <= 0 {
		return fmt.Errorf("TRANSLATOR_CHUNK_SIZE must be positive, got %d", c.Translator.ChunkSize)
	}
	if c.Translator.TargetLang == "" {
		return fmt.Errorf("TRANSLATOR_TARGET_LANG must not be empty")
	}
	if c.Kafka.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.Kafka.BatchSize)
	}
	return nil
}
