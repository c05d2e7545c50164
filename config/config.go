package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Providers ProviderConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Pipeline  PipelineConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowAll         bool
	AllowCredentials bool
}

// ProviderConfig holds credentials and endpoints of the upstream model providers.
// The Fireworks endpoint serves both DeepSeek and Qwen.
type ProviderConfig struct {
	FireworksAPIKey  string
	FireworksBaseURL string
	GoogleAPIKey     string
	GoogleBaseURL    string
	DeepSeekModel    string
	QwenModel        string
	GeminiModel      string
	Timeout          int // seconds

	// ModelsSet records which of DEEPSEEK_MODEL, QWEN_MODEL and GEMINI_MODEL
	// were present in the environment rather than defaulted.
	ModelsSet ModelsSet
}

type ModelsSet struct {
	DeepSeek bool
	Qwen     bool
	Gemini   bool
}

type RateLimitConfig struct {
	MaxRequests int
	WindowMs    int
	Backend     string // "memory" or "redis"
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type PipelineConfig struct {
	PartialResults bool
}

type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

const (
	DefaultDeepSeekModel = "accounts/fireworks/models/deepseek-v3-0324"
	DefaultQwenModel     = "accounts/fireworks/models/qwen3-30b-a3b"

	localDevOrigin = "http://localhost:3000"
)

// LoadConfig reads the process environment. Values from envFile (or ./.env when
// envFile is empty) are loaded first but never override variables already set.
func LoadConfig(envFile ...string) (*Config, error) {
	files := make([]string, 0, len(envFile))
	for _, f := range envFile {
		if f != "" {
			files = append(files, f)
		}
	}
	godotenv.Load(files...)

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", getEnv("NODE_ENV", "production")),
		},
		CORS: CORSConfig{
			AllowedOrigins:   allowedOrigins(),
			AllowedMethods:   strings.Split(getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"), ","),
			AllowedHeaders:   strings.Split(getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization,X-Requested-With"), ","),
			AllowAll:         getEnvAsBool("CORS_ALLOW_ALL", false),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
		},
		Providers: ProviderConfig{
			FireworksAPIKey:  getEnv("FIREWORKS_API_KEY", ""),
			FireworksBaseURL: strings.TrimRight(getEnv("FIREWORKS_BASE_URL", ""), "/"),
			GoogleAPIKey:     getEnv("GOOGLE_API_KEY", ""),
			GoogleBaseURL:    strings.TrimRight(getEnv("GOOGLE_BASE_URL", ""), "/"),
			DeepSeekModel:    getEnv("DEEPSEEK_MODEL", DefaultDeepSeekModel),
			QwenModel:        getEnv("QWEN_MODEL", DefaultQwenModel),
			GeminiModel:      getEnv("GEMINI_MODEL", ""),
			Timeout:          getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 60),
			ModelsSet: ModelsSet{
				DeepSeek: os.Getenv("DEEPSEEK_MODEL") != "",
				Qwen:     os.Getenv("QWEN_MODEL") != "",
				Gemini:   os.Getenv("GEMINI_MODEL") != "",
			},
		},
		RateLimit: RateLimitConfig{
			MaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 10),
			WindowMs:    getEnvAsInt("RATE_LIMIT_WINDOW_MS", 60000),
			Backend:     strings.ToLower(getEnv("RATE_LIMIT_BACKEND", "memory")),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Pipeline: PipelineConfig{
			PartialResults: getEnvAsBool("PIPELINE_PARTIAL_RESULTS", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return config, nil
}

// IsDevelopment reports whether detailed errors may be shown to clients.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Environment, "development")
}

func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Providers.Timeout) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowMs) * time.Millisecond
}

func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// allowedOrigins is the local dev origin, the public app URL, the Vercel
// deployment host and anything listed in CORS_ALLOWED_ORIGINS, without duplicates.
func allowedOrigins() []string {
	candidates := []string{localDevOrigin, strings.TrimRight(getEnv("APP_URL", ""), "/")}
	if host := getEnv("VERCEL_URL", ""); host != "" {
		candidates = append(candidates, "https://"+host)
	}
	candidates = append(candidates, strings.Split(getEnv("CORS_ALLOWED_ORIGINS", ""), ",")...)

	seen := make(map[string]bool, len(candidates))
	origins := make([]string, 0, len(candidates))
	for _, origin := range candidates {
		origin = strings.TrimSpace(origin)
		if origin == "" || seen[origin] {
			continue
		}
		seen[origin] = true
		origins = append(origins, origin)
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
