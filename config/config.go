// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/leotrs/smol/pipeline"
	"github.com/leotrs/smol/spectrum"
	"github.com/leotrs/smol/switching"
)

// EnvPrefix prefixes environment overrides: switching.max_leaves is read
// from SMOL_SWITCHING_MAX_LEAVES.
const EnvPrefix = "SMOL"

// Keys.
const (
	KeyPrecision         = "spectrum.precision"
	KeyHashLength        = "spectrum.hash_length"
	KeyTraceMaxPower     = "switching.trace_max_power"
	KeyTracePrecision    = "switching.trace_precision"
	KeyStrict            = "switching.strict"
	KeyIsoTimeout        = "switching.iso_timeout"
	KeyMaxLeaves         = "switching.max_leaves"
	KeyCacheSize         = "switching.cache_size"
	KeySpectralTolerance = "switching.spectral_tolerance"
	KeyWorkers           = "pipeline.workers"
	KeyStorePath         = "store.path"
	KeyLogLevel          = "logging.level"
)

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Config manages smol configuration using Viper.
type Config struct {
	v *viper.Viper
}

// New creates a configuration holding the defaults, with SMOL_* environment
// overrides enabled.
func New() *Config {
	v := viper.New()

	v.SetDefault(KeyPrecision, spectrum.DefaultPrecision)
	v.SetDefault(KeyHashLength, spectrum.DefaultHashLength)

	v.SetDefault(KeyTraceMaxPower, switching.DefaultMaxPower)
	v.SetDefault(KeyTracePrecision, switching.DefaultPrecision)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyIsoTimeout, switching.DefaultIsoTimeout)
	v.SetDefault(KeyMaxLeaves, switching.DefaultMaxLeaves)
	v.SetDefault(KeyCacheSize, switching.DefaultCacheSize)
	v.SetDefault(KeySpectralTolerance, switching.DefaultSpectralTolerance)

	v.SetDefault(KeyWorkers, runtime.NumCPU())
	v.SetDefault(KeyStorePath, "smol.db")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// LoadFile merges a configuration file (YAML, JSON or TOML by extension).
func (c *Config) LoadFile(path string) error {
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}

	return nil
}

// Set overrides a key, e.g. from a command-line flag.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

func (c *Config) Precision() int { return c.v.GetInt(KeyPrecision) }
func (c *Config) HashLength() int { return c.v.GetInt(KeyHashLength) }
func (c *Config) TraceMaxPower() int { return c.v.GetInt(KeyTraceMaxPower) }
func (c *Config) TracePrecision() int { return c.v.GetInt(KeyTracePrecision) }
func (c *Config) Strict() bool { return c.v.GetBool(KeyStrict) }
func (c *Config) IsoTimeout() time.Duration { return c.v.GetDuration(KeyIsoTimeout) }
func (c *Config) MaxLeaves() int { return c.v.GetInt(KeyMaxLeaves) }
func (c *Config) CacheSize() int { return c.v.GetInt(KeyCacheSize) }
func (c *Config) SpectralTolerance() float64 { return c.v.GetFloat64(KeySpectralTolerance) }
func (c *Config) Workers() int { return c.v.GetInt(KeyWorkers) }
func (c *Config) StorePath() string { return c.v.GetString(KeyStorePath) }
func (c *Config) LogLevel() string { return c.v.GetString(KeyLogLevel) }

// Validate checks every value against the range its consumer accepts. The
// option constructors panic on out-of-range values, so builders call
// Validate first.
func (c *Config) Validate() error {
	checks := []struct {
		key string
		ok  bool
	}{
		{KeyPrecision, c.Precision() >= 0 && c.Precision() <= spectrum.MaxPrecision},
		{KeyHashLength, c.HashLength() >= spectrum.MinHashLength && c.HashLength() <= spectrum.MaxHashLength},
		{KeyTraceMaxPower, c.TraceMaxPower() >= 1},
		{KeyTracePrecision, c.TracePrecision() >= 0 && c.TracePrecision() <= spectrum.MaxPrecision},
		{KeyIsoTimeout, c.IsoTimeout() > 0},
		{KeyMaxLeaves, c.MaxLeaves() >= 1},
		{KeyCacheSize, c.CacheSize() >= 1},
		{KeySpectralTolerance, c.SpectralTolerance() > 0},
		{KeyWorkers, c.Workers() >= 1},
		{KeyStorePath, c.StorePath() != ""},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s = %v", ErrInvalid, chk.key, c.v.Get(chk.key))
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel()); err != nil {
		return fmt.Errorf("%w: %s = %q", ErrInvalid, KeyLogLevel, c.LogLevel())
	}

	return nil
}

// Logger creates a console zerolog logger writing to w at the configured
// level. Writes to w are serialized. An unknown level falls back to info.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(w),
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "smol").Logger()
}

// SpectrumOptions returns the fingerprint policy as spectrum options.
func (c *Config) SpectrumOptions() []spectrum.Option {
	return []spectrum.Option{
		spectrum.WithPrecision(c.Precision()),
		spectrum.WithHashLength(c.HashLength()),
	}
}

// Detector builds a switch detector whose certifier shares one trace cache.
func (c *Config) Detector(log zerolog.Logger) (*switching.Detector, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cache, err := switching.NewTraceCache(c.CacheSize())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	certOpts := []switching.CertifierOption{
		switching.WithMaxPower(c.TraceMaxPower()),
		switching.WithPrecision(c.TracePrecision()),
		switching.WithSpectralTolerance(c.SpectralTolerance()),
		switching.WithTraceCache(cache),
		switching.WithCertifierLogger(log),
	}
	if c.Strict() {
		certOpts = append(certOpts, switching.WithStrictCertification())
	}

	return switching.NewDetector(
		switching.WithCertifier(switching.NewCertifier(certOpts...)),
		switching.WithIsoTimeout(c.IsoTimeout()),
		switching.WithMaxLeaves(c.MaxLeaves()),
		switching.WithLogger(log),
	), nil
}

// Runner builds the ingest runner.
func (c *Config) Runner(log zerolog.Logger) (*pipeline.Runner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return pipeline.NewRunner(
		pipeline.WithWorkers(c.Workers()),
		pipeline.WithSpectrumOptions(c.SpectrumOptions()...),
		pipeline.WithLogger(log),
	), nil
}

// Settings is the effective configuration as a document.
type Settings struct {
	Spectrum struct {
		Precision  int `yaml:"precision" json:"precision"`
		HashLength int `yaml:"hash_length" json:"hash_length"`
	} `yaml:"spectrum" json:"spectrum"`
	Switching struct {
		TraceMaxPower     int     `yaml:"trace_max_power" json:"trace_max_power"`
		TracePrecision    int     `yaml:"trace_precision" json:"trace_precision"`
		Strict            bool    `yaml:"strict" json:"strict"`
		IsoTimeout        string  `yaml:"iso_timeout" json:"iso_timeout"`
		MaxLeaves         int     `yaml:"max_leaves" json:"max_leaves"`
		CacheSize         int     `yaml:"cache_size" json:"cache_size"`
		SpectralTolerance float64 `yaml:"spectral_tolerance" json:"spectral_tolerance"`
	} `yaml:"switching" json:"switching"`
	Pipeline struct {
		Workers int `yaml:"workers" json:"workers"`
	} `yaml:"pipeline" json:"pipeline"`
	Store struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"store" json:"store"`
	Logging struct {
		Level string `yaml:"level" json:"level"`
	} `yaml:"logging" json:"logging"`
}

// Settings snapshots the effective values.
func (c *Config) Settings() Settings {
	var s Settings
	s.Spectrum.Precision = c.Precision()
	s.Spectrum.HashLength = c.HashLength()
	s.Switching.TraceMaxPower = c.TraceMaxPower()
	s.Switching.TracePrecision = c.TracePrecision()
	s.Switching.Strict = c.Strict()
	s.Switching.IsoTimeout = c.IsoTimeout().String()
	s.Switching.MaxLeaves = c.MaxLeaves()
	s.Switching.CacheSize = c.CacheSize()
	s.Switching.SpectralTolerance = c.SpectralTolerance()
	s.Pipeline.Workers = c.Workers()
	s.Store.Path = c.StorePath()
	s.Logging.Level = c.LogLevel()

	return s
}

// YAML renders the effective configuration. The output loads back with
// LoadFile.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c.Settings())
	if err != nil {
		return nil, fmt.Errorf("config: yaml: %w", err)
	}

	return out, nil
}
