package config

import (
	"fmt"
	"strings"
)

// ConfigError reports required settings that are absent at startup.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s environment variables are required", strings.Join(e.Missing, " and "))
}
