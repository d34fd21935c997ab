package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix      = "STEAMFEEDS_"
	envFileEnv     = "STEAMFEEDS_ENV_FILE"
	configPathEnv  = "STEAMFEEDS_CONFIG"
	logLevelEnv    = "STEAMFEEDS_LOG_LEVEL"
	userAgentEnv   = "STEAMFEEDS_USER_AGENT"
	httpTimeoutEnv = "STEAMFEEDS_HTTP_TIMEOUT"
	delayEnv       = "STEAMFEEDS_DELAY"

	DefaultUserAgent = "Steam Feeds (https://github.com/steamfeeds/steamfeeds)"
	DefaultDelay     = 250 * time.Millisecond
)

// Config holds every tunable of a run.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	HTTP     HTTPConfig     `yaml:"http" json:"http"`
	Throttle ThrottleConfig `yaml:"throttle" json:"throttle"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn warning error"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	UserAgent string   `yaml:"userAgent" json:"userAgent" validate:"required"`
	Timeout   Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`
}

// ThrottleConfig is the pause inserted after every request.
type ThrottleConfig struct {
	Delay Duration `yaml:"delay" json:"delay" validate:"gte=0"`
}

// Duration accepts Go duration strings such as "250ms" in config files.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std converts to time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging:  LoggingConfig{Level: "warn"},
		HTTP:     HTTPConfig{UserAgent: DefaultUserAgent, Timeout: Duration(30 * time.Second)},
		Throttle: ThrottleConfig{Delay: Duration(DefaultDelay)},
	}
}

// Load merges defaults, an optional config file and environment overrides,
// then validates the result. An empty path falls back to $STEAMFEEDS_CONFIG.
// A dotenv file is read only when $STEAMFEEDS_ENV_FILE names one; only its
// STEAMFEEDS_* keys are used and the process environment takes precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	env, err := newEnv(os.Getenv(envFileEnv))
	if err != nil {
		return cfg, err
	}

	if path == "" {
		path = env.get(configPathEnv)
	}
	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("config: merge %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(env); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFile(path string) (Config, error) {
	var fileCfg Config

	raw, err := os.ReadFile(path)
	if err != nil {
		return fileCfg, fmt.Errorf("config: cannot read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &fileCfg)
	case ".json", ".json5":
		err = json5.Unmarshal(raw, &fileCfg)
	default:
		return fileCfg, fmt.Errorf("config: unsupported file type %q", ext)
	}
	if err != nil {
		return fileCfg, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return fileCfg, nil
}

// envSource resolves STEAMFEEDS_* settings from the process environment, falling
// back to an explicitly named dotenv file.
type envSource struct {
	file map[string]string
}

func newEnv(envFile string) (envSource, error) {
	if envFile == "" {
		return envSource{}, nil
	}

	values, err := godotenv.Read(envFile)
	if err != nil {
		return envSource{}, fmt.Errorf("config: read env file %s: %w", envFile, err)
	}

	file := make(map[string]string, len(values))
	for key, value := range values {
		if strings.HasPrefix(key, envPrefix) {
			file[key] = value
		}
	}
	return envSource{file: file}, nil
}

func (e envSource) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return e.file[key]
}

func (c *Config) applyEnvOverrides(env envSource) error {
	if v := env.get(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := env.get(userAgentEnv); v != "" {
		c.HTTP.UserAgent = v
	}

	if v := env.get(httpTimeoutEnv); v != "" {
		if err := c.HTTP.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("config: %s: %w", httpTimeoutEnv, err)
		}
	}

	if v := env.get(delayEnv); v != "" {
		if err := c.Throttle.Delay.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("config: %s: %w", delayEnv, err)
		}
	}

	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
