package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ServerName    = "ogury-mcp-server"
	ServerVersion = "0.1.0"
)

type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Ogury     Ogury     `mapstructure:",squash"`
	RateLimit RateLimit `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Ogury struct {
	BaseURL           string        `mapstructure:"ogury_base_url"`
	ClientID          string        `mapstructure:"ogury_client_id"`
	ClientSecret      string        `mapstructure:"ogury_client_secret"`
	HTTPTimeout       time.Duration `mapstructure:"ogury_http_timeout"`
	TokenPrefetchCron string        `mapstructure:"ogury_token_prefetch_cron"`
}

type RateLimit struct {
	RequestsPerSecond float64 `mapstructure:"rate_limit_rps"`
	Burst             int     `mapstructure:"rate_limit_burst"`
}

type Auth struct {
	JWTSecret string `mapstructure:"mcp_jwt_secret"`
}

// Transport selects the front end: a PORT switches the process to HTTP.
func (c *Config) Transport() Transport {
	if strings.TrimSpace(c.Server.Port) != "" {
		return TransportHTTP
	}
	return TransportStdio
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "")
	v.SetDefault("PORT", "")

	v.SetDefault("OGURY_BASE_URL", "https://api.ogury.com")
	v.SetDefault("OGURY_CLIENT_ID", "")
	v.SetDefault("OGURY_CLIENT_SECRET", "")
	v.SetDefault("OGURY_HTTP_TIMEOUT", "30s")
	v.SetDefault("OGURY_TOKEN_PREFETCH_CRON", "") // empty disables the prefetch job

	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	v.SetDefault("MCP_JWT_SECRET", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	return Load(viper.New())
}

// Load reads the configuration from the environment known to v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	SetDefaults(v)
	v.AutomaticEnv()

	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Ogury.BaseURL = strings.TrimRight(config.Ogury.BaseURL, "/")

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Ogury.ClientID == "" {
		missing = append(missing, "OGURY_CLIENT_ID")
	}
	if c.Ogury.ClientSecret == "" {
		missing = append(missing, "OGURY_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	if c.Ogury.HTTPTimeout <= 0 {
		c.Ogury.HTTPTimeout = 30 * time.Second
	}

	return nil
}

// loadEnvFile loads a local .env when present. Variables already set in the environment win.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Debug("config: could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("config: loaded .env from ", location)
			return
		}
	}
}
