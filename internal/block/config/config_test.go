package config

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "prod" {
		t.Errorf("expected Env=prod, got %q", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel=info, got %q", cfg.LogLevel)
	}
	if cfg.Port != 8480 {
		t.Errorf("expected Port=8480, got %d", cfg.Port)
	}
	if cfg.CacheSize != 1024 {
		t.Errorf("expected CacheSize=1024, got %d", cfg.CacheSize)
	}
	if cfg.BloomFPRate != 0.01 {
		t.Errorf("expected BloomFPRate=0.01, got %v", cfg.BloomFPRate)
	}
	if cfg.StorePath != "/var/lib/tubegate/settings.db" {
		t.Errorf("unexpected StorePath %q", cfg.StorePath)
	}
	if cfg.HomeURL != "https://www.youtube.com/" {
		t.Errorf("unexpected HomeURL %q", cfg.HomeURL)
	}
}

func TestLoad_ValidOverrides(t *testing.T) {
	t.Setenv("TUBEGATE_ENV", "dev")
	t.Setenv("TUBEGATE_LOG_LEVEL", "debug")
	t.Setenv("TUBEGATE_PORT", "9480")
	t.Setenv("TUBEGATE_CACHE_SIZE", "0")
	t.Setenv("TUBEGATE_BLOOM_FP_RATE", "0.05")
	t.Setenv("TUBEGATE_STORE_PATH", "/tmp/settings.db")
	t.Setenv("TUBEGATE_HOME_URL", "https://m.youtube.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Env != "dev" || cfg.LogLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Port != 9480 {
		t.Errorf("expected Port=9480, got %d", cfg.Port)
	}
	if cfg.CacheSize != 0 {
		t.Errorf("expected CacheSize=0, got %d", cfg.CacheSize)
	}
	if cfg.BloomFPRate != 0.05 {
		t.Errorf("expected BloomFPRate=0.05, got %v", cfg.BloomFPRate)
	}
	if cfg.StorePath != "/tmp/settings.db" {
		t.Errorf("unexpected StorePath %q", cfg.StorePath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad env", "TUBEGATE_ENV", "staging"},
		{"bad level", "TUBEGATE_LOG_LEVEL", "loud"},
		{"port too high", "TUBEGATE_PORT", "70000"},
		{"fp rate zero", "TUBEGATE_BLOOM_FP_RATE", "0"},
		{"fp rate one", "TUBEGATE_BLOOM_FP_RATE", "1"},
		{"home url not http", "TUBEGATE_HOME_URL", "not-a-url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_LoaderErrors(t *testing.T) {
	origDefault := defaultLoader
	origEnv := envLoader
	origReg := registerValidation
	defer func() {
		defaultLoader = origDefault
		envLoader = origEnv
		registerValidation = origReg
	}()

	defaultLoader = func(k *koanf.Koanf) error { return errors.New("boom") }
	if _, err := Load(); err == nil {
		t.Error("expected error from default loader")
	}
	defaultLoader = origDefault

	envLoader = func(k *koanf.Koanf) error { return errors.New("boom") }
	if _, err := Load(); err == nil {
		t.Error("expected error from env loader")
	}
	envLoader = origEnv

	registerValidation = func(v *validator.Validate) error { return errors.New("boom") }
	if _, err := Load(); err == nil {
		t.Error("expected error from validation registration")
	}
}
