package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kingshuk-14/sathiAI/pkg/llm"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Relay    RelayConfig    `koanf:"relay"`
	OCR      OCRConfig      `koanf:"ocr"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Guard    GuardConfig    `koanf:"guard"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
	// AllowedOrigins is a comma separated list; "*" allows any origin.
	AllowedOrigins string `koanf:"allowed_origins"`
}

type RelayConfig struct {
	Provider     string        `koanf:"provider"`
	APIKey       string        `koanf:"api_key"`
	LegacyAPIKey string        `koanf:"legacy_api_key"`
	BaseURL      string        `koanf:"base_url"`
	Model        string        `koanf:"model"`
	MaxTokens    int           `koanf:"max_tokens"`
	Temperature  float64       `koanf:"temperature"`
	Timeout      time.Duration `koanf:"timeout"`
	URL          string        `koanf:"url"`
}

type OCRConfig struct {
	URL       string `koanf:"url"`
	Languages string `koanf:"languages"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type RedisConfig struct {
	URL string `koanf:"url"`
}

type GuardConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// envKeys maps the environment variables the app reads to config keys.
var envKeys = map[string]string{
	"PORT":              "server.port",
	"ALLOWED_ORIGINS":   "server.allowed_origins",
	"RELAY_PROVIDER":    "relay.provider",
	"LLM_API_KEY":       "relay.api_key",
	"VITE_LLM_API_KEY":  "relay.legacy_api_key",
	"RELAY_BASE_URL":    "relay.base_url",
	"LLM_MODEL":         "relay.model",
	"RELAY_MAX_TOKENS":  "relay.max_tokens",
	"RELAY_TEMPERATURE": "relay.temperature",
	"RELAY_TIMEOUT":     "relay.timeout",
	"RELAY_URL":         "relay.url",
	"OCR_URL":           "ocr.url",
	"OCR_LANGUAGES":     "ocr.languages",
	"DATABASE_URL":      "database.url",
	"REDIS_URL":         "redis.url",
	"GUARD_TTL":         "guard.ttl",
	"LOG_LEVEL":         "log.level",
	"LOG_FORMAT":        "log.format",
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: "*",
		},
		Relay: RelayConfig{
			Provider:    llm.ProviderHuggingFace,
			MaxTokens:   llm.DefaultMaxTokens,
			Temperature: llm.DefaultTemperature,
			Timeout:     60 * time.Second,
			URL:         "http://localhost:8080/api/chat",
		},
		OCR:   OCRConfig{Languages: "eng"},
		Guard: GuardConfig{TTL: 2 * time.Minute},
		Log:   LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads .env, then the YAML file at path when it exists, then the
// environment. Later sources override earlier ones.
func Load(path string) (*Config, error) {
	godotenv.Load()

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if cfg.Relay.APIKey == "" {
		cfg.Relay.APIKey = cfg.Relay.LegacyAPIKey
	}

	return &cfg, nil
}

// Origins splits AllowedOrigins into its entries.
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (r RelayConfig) Upstream() llm.UpstreamConfig {
	return llm.UpstreamConfig{
		Provider:    r.Provider,
		APIKey:      r.APIKey,
		BaseURL:     r.BaseURL,
		Model:       r.Model,
		MaxTokens:   r.MaxTokens,
		Temperature: r.Temperature,
		Timeout:     r.Timeout,
	}
}

func (o OCRConfig) LanguageList() []string {
	var out []string
	for _, l := range strings.Split(o.Languages, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Logger builds the process logger: JSON unless format is "text".
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
