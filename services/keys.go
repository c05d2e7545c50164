package services

import (
	"strings"

	"multimodel-api/config"
)

// ValidateAPIKeys fails with a configuration error naming every missing
// provider credential or base URL.
func ValidateAPIKeys(cfg *config.Config) error {
	var missing []string
	for _, key := range config.RequiredKeys() {
		if strings.TrimSpace(cfg.Value(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return NewConfigurationError("Missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}
