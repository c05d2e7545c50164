package config

import "os"

// EnvVar describes one environment variable the service reads.
type EnvVar struct {
	Name     string
	Required bool
	Example  string
}

// EnvVars lists the provider variables in the order they are reported.
var EnvVars = []EnvVar{
	{Name: "FIREWORKS_API_KEY", Required: true, Example: "fw-..."},
	{Name: "GOOGLE_API_KEY", Required: true, Example: "AIza..."},
	{Name: "FIREWORKS_BASE_URL", Required: true, Example: "https://api.fireworks.ai/inference/v1"},
	{Name: "GOOGLE_BASE_URL", Required: true, Example: "https://generativelanguage.googleapis.com/v1beta"},
	{Name: "DEEPSEEK_MODEL", Example: DefaultDeepSeekModel},
	{Name: "QWEN_MODEL", Example: DefaultQwenModel},
	{Name: "GEMINI_MODEL", Example: "gemini-2.5-pro"},
	{Name: "ENVIRONMENT", Example: "production"},
	{Name: "APP_URL", Example: "https://your-app.example.com"},
	{Name: "RATE_LIMIT_BACKEND", Example: "memory"},
}

// RequiredKeys are checked before every pipeline run.
func RequiredKeys() []string {
	keys := make([]string, 0, 4)
	for _, v := range EnvVars {
		if v.Required {
			keys = append(keys, v.Name)
		}
	}
	return keys
}

// Value returns the configured value behind a provider variable name.
func (c *Config) Value(key string) string {
	switch key {
	case "FIREWORKS_API_KEY":
		return c.Providers.FireworksAPIKey
	case "GOOGLE_API_KEY":
		return c.Providers.GoogleAPIKey
	case "FIREWORKS_BASE_URL":
		return c.Providers.FireworksBaseURL
	case "GOOGLE_BASE_URL":
		return c.Providers.GoogleBaseURL
	case "DEEPSEEK_MODEL":
		return c.Providers.DeepSeekModel
	case "QWEN_MODEL":
		return c.Providers.QwenModel
	case "GEMINI_MODEL":
		return c.Providers.GeminiModel
	case "ENVIRONMENT":
		return c.Server.Environment
	case "RATE_LIMIT_BACKEND":
		return c.RateLimit.Backend
	}
	return os.Getenv(key)
}
