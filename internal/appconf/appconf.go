package appconf

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// UnmarshalYAML accepts the same names as the -env flag and rejects
// anything else.
func (e *Environment) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "development", "test", "production", "prod":
		*e = EnvFlagToEnvironment(name)
		return nil
	}
	return fmt.Errorf("unknown environment %q", name)
}

// EnvFlagToEnvironment maps the -env flag value to an Environment. Unknown
// values fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds all the configuration settings for the Application.
type Config struct {
	Port               int           `yaml:"port" validate:"gte=0,lte=65535"`
	Env                Environment   `yaml:"env"`
	DataBaseURL        string        `yaml:"dataBaseURL" validate:"required,url"`
	DataRequestTimeout time.Duration `yaml:"dataRequestTimeout" validate:"gte=0"`
	FileDetailsTTL     time.Duration `yaml:"fileDetailsTTL" validate:"gte=0"`
	RateLimit          int           `yaml:"rateLimit" validate:"gte=0"`
	LogLevel           string        `yaml:"logLevel" validate:"omitempty,oneof=debug info warn warning error"`
	EnableDebugUI      bool          `yaml:"enableDebugUI"`
}

func Default() Config {
	return Config{
		Port:               4000,
		Env:                Development,
		DataBaseURL:        "https://data.nthusa.tw",
		DataRequestTimeout: 10 * time.Second,
		FileDetailsTTL:     time.Minute,
		RateLimit:          100,
		LogLevel:           "info",
	}
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid configuration: field %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadFile overlays the YAML document at path onto base and validates the
// result.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config file: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// LoadDotEnv loads the given .env files, ignoring ones that do not exist.
// Later files override earlier ones.
func LoadDotEnv(paths ...string) {
	for i, path := range paths {
		if i == 0 {
			_ = godotenv.Load(path)
			continue
		}
		_ = godotenv.Overload(path)
	}
}

// ApplyEnv overrides cfg with NTHU_* environment variables that are set.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv("NTHU_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NTHU_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := getenv("NTHU_ENV"); v != "" {
		cfg.Env = EnvFlagToEnvironment(v)
	}
	if v := getenv("NTHU_DATA_URL"); v != "" {
		cfg.DataBaseURL = v
	}
	if v := getenv("NTHU_FILE_DETAILS_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NTHU_FILE_DETAILS_TTL: %w", err)
		}
		cfg.FileDetailsTTL = ttl
	}
	if v := getenv("NTHU_RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NTHU_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = limit
	}
	if v := getenv("NTHU_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
