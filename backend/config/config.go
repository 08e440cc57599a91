package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string
	LogFormat  string

	StoreDriver string // sqlite, postgres, bolt, redis, memory
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	SQLitePath  string
	BoltPath    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LLMProvider     string // gemini, openai, anthropic, ollama, mock
	LLMModel        string
	LLMTimeout      time.Duration
	GeminiAPIKey    string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	OllamaHost      string

	VectorDriver        string // keyword, chromem
	Embedder            string // hash, openai, ollama
	EmbeddingModel      string
	VectorMinSimilarity float64
	CorpusPath          string

	RevealInterval   time.Duration
	ProgressInterval time.Duration
}

var defaults = map[string]any{
	"SERVER_PORT":           "8080",
	"LOG_FORMAT":            "text",
	"STORE_DRIVER":          "sqlite",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "postgres",
	"DB_NAME":               "creator_studio",
	"SQLITE_PATH":           "file::memory:?cache=shared",
	"BOLT_PATH":             "creator.db",
	"REDIS_ADDR":            "localhost:6379",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"LLM_PROVIDER":          "gemini",
	"LLM_MODEL":             "",
	"LLM_TIMEOUT":           "0s",
	"GEMINI_API_KEY":        "",
	"OPENAI_API_KEY":        "",
	"OPENAI_BASE_URL":       "",
	"ANTHROPIC_API_KEY":     "",
	"OLLAMA_HOST":           "http://localhost:11434",
	"VECTOR_DRIVER":         "keyword",
	"EMBEDDER":              "hash",
	"EMBEDDING_MODEL":       "",
	"VECTOR_MIN_SIMILARITY": 0.25,
	"CORPUS_PATH":           "",
	"REVEAL_INTERVAL":       "800ms",
	"PROGRESS_INTERVAL":     "500ms",
}

// LoadConfig reads .env (if present), an optional YAML file named by
// CREATOR_CONFIG and the process environment, in increasing priority.
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := os.Getenv("CREATOR_CONFIG"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		ServerPort:          v.GetString("SERVER_PORT"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		StoreDriver:         strings.ToLower(v.GetString("STORE_DRIVER")),
		DBHost:              v.GetString("DB_HOST"),
		DBPort:              v.GetString("DB_PORT"),
		DBUser:              v.GetString("DB_USER"),
		DBPassword:          v.GetString("DB_PASSWORD"),
		DBName:              v.GetString("DB_NAME"),
		SQLitePath:          v.GetString("SQLITE_PATH"),
		BoltPath:            v.GetString("BOLT_PATH"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		LLMProvider:         strings.ToLower(v.GetString("LLM_PROVIDER")),
		LLMModel:            v.GetString("LLM_MODEL"),
		LLMTimeout:          v.GetDuration("LLM_TIMEOUT"),
		GeminiAPIKey:        v.GetString("GEMINI_API_KEY"),
		OpenAIAPIKey:        v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:       v.GetString("OPENAI_BASE_URL"),
		AnthropicAPIKey:     v.GetString("ANTHROPIC_API_KEY"),
		OllamaHost:          v.GetString("OLLAMA_HOST"),
		VectorDriver:        strings.ToLower(v.GetString("VECTOR_DRIVER")),
		Embedder:            strings.ToLower(v.GetString("EMBEDDER")),
		EmbeddingModel:      v.GetString("EMBEDDING_MODEL"),
		VectorMinSimilarity: v.GetFloat64("VECTOR_MIN_SIMILARITY"),
		CorpusPath:          v.GetString("CORPUS_PATH"),
		RevealInterval:      v.GetDuration("REVEAL_INTERVAL"),
		ProgressInterval:    v.GetDuration("PROGRESS_INTERVAL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks driver names and that the selected provider has its key.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "sqlite", "postgres", "bolt", "redis", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER: %q", c.StoreDriver)
	}

	switch c.LLMProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "ollama", "mock":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER: %q", c.LLMProvider)
	}

	switch c.VectorDriver {
	case "keyword", "chromem":
	default:
		return fmt.Errorf("unknown VECTOR_DRIVER: %q", c.VectorDriver)
	}

	if c.VectorDriver == "chromem" {
		switch c.Embedder {
		case "hash", "ollama":
		case "openai":
			if c.OpenAIAPIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is required for the openai embedder")
			}
		default:
			return fmt.Errorf("unknown EMBEDDER: %q", c.Embedder)
		}
	}
	return nil
}
