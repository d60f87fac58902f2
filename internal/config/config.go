package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Paths        PathsConfig        `yaml:"paths"`
	Whisper      WhisperConfig      `yaml:"whisper"`
	LLM          LLMConfig          `yaml:"llm"`
	Summarize    SummarizeConfig    `yaml:"summarize"`
	Distribution DistributionConfig `yaml:"distribution"`
	Store        StoreConfig        `yaml:"store"`
	RabbitMQ     RabbitMQConfig     `yaml:"rabbitmq"`
	Minio        MinioConfig        `yaml:"minio"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type WhisperConfig struct {
	ModelPath      string `yaml:"model_path"`
	BinaryPath     string `yaml:"binary_path"`
	Language       string `yaml:"language"`
	Threads        int    `yaml:"threads"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout is the bound applied to one whisper invocation.
func (w WhisperConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

type LLMConfig struct {
	OpenAI         OpenAIConfig `yaml:"openai"`
	Ollama         OllamaConfig `yaml:"ollama"`
	Google         GoogleConfig `yaml:"google"`
	RefineOrder    []string     `yaml:"refine_order"`
	SummaryOrder   []string     `yaml:"summary_order"`
	EventsOrder    []string     `yaml:"events_order"`
	TimeoutSeconds int          `yaml:"timeout_seconds"`
}

// Timeout is the bound applied to one generation call.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type GoogleConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type SummarizeConfig struct {
	MaxChunkSize int `yaml:"max_chunk_size"`
}

type DistributionConfig struct {
	MaxConcurrent  int `yaml:"max_concurrent"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout is the bound applied to one delivery attempt.
func (d DistributionConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
	Queue    string `yaml:"queue"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates a YAML config file. Environment variables
// override the secrets that should not live in the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnv overlays secrets from the environment over the file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.OpenAI.APIKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.LLM.Google.APIKeys = append(c.LLM.Google.APIKeys, v)
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		c.LLM.Ollama.BaseURL = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		c.RabbitMQ.URL = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		c.Minio.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		c.Minio.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.Minio.SecretKey = v
	}
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Whisper.TimeoutSeconds == 0 {
		c.Whisper.TimeoutSeconds = 900
	}
	if c.LLM.OpenAI.BaseURL == "" {
		c.LLM.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.LLM.OpenAI.Model == "" {
		c.LLM.OpenAI.Model = "gpt-4o-mini"
	}
	if c.LLM.Ollama.Model == "" {
		c.LLM.Ollama.Model = "gemma2:9b"
	}
	if c.LLM.Google.Model == "" {
		c.LLM.Google.Model = "gemini-2.0-flash"
	}
	if len(c.LLM.RefineOrder) == 0 {
		c.LLM.RefineOrder = []string{"ollama", "openai"}
	}
	if len(c.LLM.SummaryOrder) == 0 {
		c.LLM.SummaryOrder = []string{"openai", "google", "ollama"}
	}
	if len(c.LLM.EventsOrder) == 0 {
		c.LLM.EventsOrder = c.LLM.SummaryOrder
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 120
	}
	if c.Summarize.MaxChunkSize == 0 {
		c.Summarize.MaxChunkSize = 15000
	}
	if c.Distribution.MaxConcurrent == 0 {
		c.Distribution.MaxConcurrent = 4
	}
	if c.Distribution.TimeoutSeconds == 0 {
		c.Distribution.TimeoutSeconds = 30
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/meetingflow.db"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "meetings"
	}
	if c.RabbitMQ.Queue == "" {
		c.RabbitMQ.Queue = "recording.completed"
	}
	if c.Minio.Bucket == "" {
		c.Minio.Bucket = "recordings"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
