// SPDX-License-Identifier: Apache-2.0

// Package config loads the media source subsystem's runtime
// configuration from YAML, following the teacher's internal/config
// loader shape (FileConfig struct + Load(path)).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RuntimeConfig is the top-level configuration document.
type RuntimeConfig struct {
	LogLevel string `yaml:"logLevel,omitempty"`

	FallbackRate RateConfig     `yaml:"fallbackRate,omitempty"`
	Scanner      ScannerConfig  `yaml:"scanner,omitempty"`
	HTTP         HTTPConfig     `yaml:"http,omitempty"`
	Redis        RedisConfig    `yaml:"redis,omitempty"`
	Badger       BadgerConfig   `yaml:"badger,omitempty"`
	RateLimit    RateLimitConfig `yaml:"rateLimit,omitempty"`
}

// RateConfig is a rational frame rate, used as the fallback supplied to
// acquire-detail when a probe reports no usable rate.
type RateConfig struct {
	Num int64 `yaml:"num,omitempty"`
	Den int64 `yaml:"den,omitempty"`
}

// ScannerConfig controls the filesystem watch used to track source
// online/offline status.
type ScannerConfig struct {
	PollInterval string `yaml:"pollInterval,omitempty"` // e.g. "5s"; the fsnotify scanner does not poll
}

// HTTPConfig controls the optional HTTP projection surface.
type HTTPConfig struct {
	ListenAddr string `yaml:"listenAddr,omitempty"`
}

// RedisConfig configures the frame-cache adapter.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// BadgerConfig configures the persisted metadata store adapter.
type BadgerConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// RateLimitConfig bounds the frequency of acquire-detail probes and the
// HTTP request rate (go-chi/httprate).
type RateLimitConfig struct {
	ProbesPerSecond  float64 `yaml:"probesPerSecond,omitempty"`
	HTTPPerMinute    int     `yaml:"httpPerMinute,omitempty"`
}

// Default returns the zero-configuration RuntimeConfig: a sane fallback
// rate and in-memory adapters everywhere, suitable for tests and
// mediasourcectl's default invocation.
func Default() RuntimeConfig {
	return RuntimeConfig{
		LogLevel:     "info",
		FallbackRate: RateConfig{Num: 24, Den: 1},
		Scanner:      ScannerConfig{PollInterval: "5s"},
		HTTP:         HTTPConfig{ListenAddr: ":8080"},
		RateLimit:    RateLimitConfig{ProbesPerSecond: 4, HTTPPerMinute: 300},
	}
}

// Load parses a YAML document at path into a RuntimeConfig, starting
// from Default() so unset fields keep their sane defaults.
func Load(path string) (RuntimeConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ScannerPollInterval parses ScannerConfig.PollInterval, defaulting to 5s
// on an empty or malformed value.
func (c RuntimeConfig) ScannerPollInterval() time.Duration {
	if c.Scanner.PollInterval == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(c.Scanner.PollInterval)
	if err != nil {
		return 5 * time.Second
	}
	return d
}
