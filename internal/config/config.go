package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the contact-mining service.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Mining       MiningConfig       `yaml:"mining"`
	Verification VerificationConfig `yaml:"verification"`
	Render       RenderConfig       `yaml:"render"`
	LLM          LLMConfig          `yaml:"llm"`
	Ingest       IngestConfig       `yaml:"ingest"`
	Scoring      ScoringConfig      `yaml:"scoring"`
}

// ServerConfig holds the address of the worker's HTTP health-check endpoint.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection.
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds the canonical-store Postgres connection settings.
type DatabaseConfig struct {
	URL             string `yaml:"url"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifeMins int    `yaml:"conn_max_life_minutes"`
}

// ConnMaxLifetime returns the configured connection lifetime as a duration.
func (c DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifeMins) * time.Minute
}

// RedisConfig holds the optional Redis connection used for the
// distributed lock guarding the Verification Queue's single worker
// across replicas.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Enabled  bool   `yaml:"enabled"`
}

// MiningConfig controls the Job Runner: which miners are eligible by
// default and how many jobs it will run concurrently.
type MiningConfig struct {
	MaxConcurrentJobs int  `yaml:"max_concurrent_jobs"`
	EnableStructured  bool `yaml:"enable_structured"`
	EnableTabular     bool `yaml:"enable_tabular"`
	EnableUnstructured bool `yaml:"enable_unstructured"`
	EnableDOMBlock    bool `yaml:"enable_dom_block"`
	EnableAIExtractor bool `yaml:"enable_ai_extractor"`
}

// VerificationConfig controls the mailbox-verification worker.
type VerificationConfig struct {
	Enabled             bool   `yaml:"enabled"`
	Provider            string `yaml:"provider"` // "mx" or "bedrock"
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	BatchSize           int    `yaml:"batch_size"`
	StaleAgeMinutes     int    `yaml:"stale_age_minutes"`
	UseDistributedLock  bool   `yaml:"use_distributed_lock"`
}

// PollInterval returns the configured poll interval as a duration.
func (c VerificationConfig) PollInterval() time.Duration {
	if c.PollIntervalSeconds == 0 {
		return 15 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// StaleAge returns the configured reclaim threshold as a duration.
func (c VerificationConfig) StaleAge() time.Duration {
	if c.StaleAgeMinutes == 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.StaleAgeMinutes) * time.Minute
}

// RenderConfig holds settings for the HTTP page-render collaborator.
// cmd/worker does not read it.
type RenderConfig struct {
	MaxRetries     int `yaml:"max_retries"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the configured HTTP timeout as a duration.
func (c RenderConfig) Timeout() time.Duration {
	if c.TimeoutSeconds == 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LLMConfig controls the Bedrock collaborator backing the AI-extractor
// miner.
type LLMConfig struct {
	Enabled bool   `yaml:"enabled"`
	ModelID string `yaml:"model_id"`
	Region  string `yaml:"region"`
}

// IngestConfig controls the S3 upload watcher.
type IngestConfig struct {
	Enabled         bool   `yaml:"enabled"`
	S3Bucket        string `yaml:"s3_bucket"`
	S3Region        string `yaml:"s3_region"`
	TenantID        string `yaml:"tenant_id"`
	IntervalMinutes int    `yaml:"interval_minutes"`
}

// Interval returns the configured poll interval as a duration.
func (c IngestConfig) Interval() time.Duration {
	if c.IntervalMinutes == 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// ScoringConfig controls the quality scorer's accept/reject thresholds.
type ScoringConfig struct {
	MinScoreToAccept    float64 `yaml:"min_score_to_accept"`
	BlockOnHighRiskOnly bool    `yaml:"block_on_high_risk_only"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Database.ConnMaxLifeMins == 0 {
		cfg.Database.ConnMaxLifeMins = 5
	}
	if cfg.Mining.MaxConcurrentJobs == 0 {
		cfg.Mining.MaxConcurrentJobs = 4
	}
	if cfg.Verification.Provider == "" {
		cfg.Verification.Provider = "mx"
	}
	if cfg.Verification.BatchSize == 0 {
		cfg.Verification.BatchSize = 50
	}
	if cfg.Render.MaxRetries == 0 {
		cfg.Render.MaxRetries = 3
	}
	if cfg.LLM.ModelID == "" {
		cfg.LLM.ModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	if cfg.LLM.Region == "" {
		cfg.LLM.Region = "us-east-1"
	}
	if cfg.Scoring.MinScoreToAccept == 0 {
		cfg.Scoring.MinScoreToAccept = 0.5
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides. It
// automatically loads a .env file (if present) before reading env vars, so
// secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("VERIFICATION_PROVIDER"); v != "" {
		cfg.Verification.Provider = v
	}
	if v := os.Getenv("BEDROCK_MODEL_ID"); v != "" {
		cfg.LLM.ModelID = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.LLM.Region = v
		if cfg.Ingest.S3Region == "" {
			cfg.Ingest.S3Region = v
		}
	}
	if v := os.Getenv("INGEST_S3_BUCKET"); v != "" {
		cfg.Ingest.S3Bucket = v
		cfg.Ingest.Enabled = true
	}
	if v := os.Getenv("INGEST_TENANT_ID"); v != "" {
		cfg.Ingest.TenantID = v
	}

	return cfg, nil
}
