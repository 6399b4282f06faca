// Package config loads the bridge configuration.
//
// Sources are layered, later ones winning: built-in defaults, an optional
// YAML file, an optional .env file, then MONERO_BRIDGE_* environment
// variables. The merged result is validated before use.
package config

import (
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/0-don/monero-ts/domain/errors"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/go-playground/validator/v10"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// validate is a package-level singleton; building a validator is expensive.
var validate = validator.New()

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func init() {
	_ = validate.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifier.MatchString(fl.Field().String())
	})
}

// Config is the complete bridge configuration.
type Config struct {
	Log LogConfig `yaml:"log"`

	// Network is the network new wallets are created for.
	Network string `yaml:"network" env:"MONERO_BRIDGE_NETWORK" validate:"oneof=mainnet testnet stagenet"`

	// HostModule is the WASM import module name.
	HostModule string `yaml:"host_module" env:"MONERO_BRIDGE_HOST_MODULE" validate:"required,identifier"`

	// JSNamespace installs the JS exports under one global object when set.
	JSNamespace string `yaml:"js_namespace" env:"MONERO_BRIDGE_JS_NAMESPACE" validate:"omitempty,identifier"`

	// ListenAddr is the HTTP debug surface address.
	ListenAddr string `yaml:"listen_addr" env:"MONERO_BRIDGE_LISTEN_ADDR" validate:"required"`

	ScriptTimeout time.Duration `yaml:"script_timeout" env:"MONERO_BRIDGE_SCRIPT_TIMEOUT" validate:"gt=0"`

	// MaxRequestSize bounds string and bytes arguments read from a guest.
	MaxRequestSize uint32 `yaml:"max_request_size" env:"MONERO_BRIDGE_MAX_REQUEST_SIZE" validate:"min=1,max=67108864"`
}

// LogConfig configures the log package.
type LogConfig struct {
	Level  string `yaml:"level" env:"MONERO_BRIDGE_LOG_LEVEL" validate:"oneof=trace debug info warn warning error"`
	Format string `yaml:"format" env:"MONERO_BRIDGE_LOG_FORMAT" validate:"oneof=console json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Network:        entities.Mainnet.String(),
		HostModule:     "monero",
		ListenAddr:     "127.0.0.1:8089",
		ScriptTimeout:  30 * time.Second,
		MaxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
}

// Options selects the files Load reads.
type Options struct {
	// File is an optional YAML file. Missing is an error when set.
	File string

	// EnvFile is an optional dotenv file. Missing is ignored.
	EnvFile string
}

// Load builds the configuration from all sources and validates it.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := loadYAML(opts.File, &cfg); err != nil {
			return nil, err
		}
	}

	if opts.EnvFile != "" {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(opts.EnvFile); err != nil && !stdErrors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if err := decodeEnv(&cfg); err != nil {
		return nil, &errors.ConfigError{Err: fmt.Errorf("environment: %w", err)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeEnv applies MONERO_BRIDGE_* variables. Every field is strict so a
// malformed value fails the load instead of leaving the previous layer.
// cfg is always a valid target, so ErrInvalidTarget only means no variable
// was set.
func decodeEnv(cfg *Config) error {
	err := envdecode.StrictDecode(cfg)
	if stdErrors.Is(err, envdecode.ErrInvalidTarget) {
		return nil
	}
	return err
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Validate checks every field constraint and reports the first violation.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stdErrors.As(err, &verrs) && len(verrs) > 0 {
			return &errors.ConfigError{Field: verrs[0].Namespace(), Err: err}
		}
		return &errors.ConfigError{Err: err}
	}
	return nil
}

// NetworkType returns Network as a NetworkType.
func (c *Config) NetworkType() entities.NetworkType {
	n, err := entities.ParseNetworkType(c.Network)
	if err != nil {
		return entities.Mainnet
	}
	return n
}
