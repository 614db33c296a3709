package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// CacheSize bounds the host match cache. Zero disables it.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// BloomFPRate is the target false-positive rate for the domain-rule
	// prefilter, strictly between 0 and 1.
	BloomFPRate float64 `koanf:"bloom_fp_rate" validate:"required,fp_rate"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Port is the port the HTTP surface binds to.
	Port int `koanf:"port" validate:"required,gte=1,lt=65535"`

	// StorePath is the path of the persisted settings database.
	StorePath string `koanf:"store_path" validate:"required"`

	// HomeURL is the platform home surface used for dismissal redirects.
	HomeURL string `koanf:"home_url" validate:"required,http_url"`
}

// DEFAULT_APP_CONFIG defines the default application configuration for the
// blocking service.
var DEFAULT_APP_CONFIG = AppConfig{
	CacheSize:   1024,
	BloomFPRate: 0.01,
	Env:         "prod",
	LogLevel:    "info",
	Port:        8480,
	StorePath:   "/var/lib/tubegate/settings.db",
	HomeURL:     "https://www.youtube.com/",
}

// validFPRate validates that the field value is a usable Bloom filter
// false-positive rate: strictly greater than 0 and strictly less than 1.
func validFPRate(fl validator.FieldLevel) bool {
	p := fl.Field().Float()
	return p > 0 && p < 1
}

// envLoader loads environment variables with the prefix "TUBEGATE_",
// lowercasing keys and trimming the prefix. It can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "TUBEGATE_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "TUBEGATE_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads default configuration values using the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "fp_rate" validation.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("fp_rate", validFPRate)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
