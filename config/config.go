// Copyright (c) 2023 Colin McRae

// Package config holds the settings of a reduction run. Settings come from
// Defaults, then an optional TOML file, then command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/kobzistiy/lll/bignumber"
	"github.com/kobzistiy/lll/bkz"
	"github.com/naoina/toml"
)

const (
	AlgorithmLLL = "lll"
	AlgorithmBKZ = "bkz"

	DefaultDelta        = "3/4"
	DefaultBlockSize    = bkz.DefaultBlockSize
	DefaultPassesPerRow = bkz.DefaultPassesPerRow
	DefaultVerbosity    = 2
)

var logger = log.New("pkg", "config")

// ConfigError reports settings that cannot be used: a missing or conflicting
// flag, or a value out of range. It is detected before any reduction starts.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config is the effective configuration of one run. Delta is kept as text so
// that it stays exact in a TOML file.
type Config struct {
	Algorithm    string
	Delta        string
	BlockSize    int
	PassesPerRow int
	Verbosity    int
}

// Defaults returns the configuration used when nothing is overridden. The
// algorithm is left unset.
func Defaults() *Config {
	return &Config{
		Delta:        DefaultDelta,
		BlockSize:    DefaultBlockSize,
		PassesPerRow: DefaultPassesPerRow,
		Verbosity:    DefaultVerbosity,
	}
}

// These settings make field names in the TOML file match the Go field names exactly
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Load overrides the fields of cfg that appear in the TOML read from r
func (cfg *Config) Load(source string, r io.Reader) error {
	err := tomlSettings.NewDecoder(r).Decode(cfg)
	if err != nil {
		var lineErr *toml.LineError
		if errors.As(err, &lineErr) {
			return &ConfigError{Msg: source + ", " + lineErr.Error()}
		}
		return &ConfigError{Msg: "could not read " + source, Err: err}
	}
	return nil
}

// LoadFile overrides the fields of cfg that appear in the TOML file at path
func (cfg *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ConfigError{Msg: "could not open config file", Err: err}
	}
	defer f.Close()
	return cfg.Load(path, f)
}

// Dump returns cfg as TOML
func (cfg *Config) Dump() (string, error) {
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DeltaValue returns cfg.Delta as an exact rational
func (cfg *Config) DeltaValue() (*bignumber.BigNumber, error) {
	return ParseDelta(cfg.Delta)
}

// Validate checks the settings that do not depend on the basis. A delta
// outside (1/4, 1) is accepted with a warning, since LLL still terminates for
// delta <= 1/4 but may be slow to do so for delta >= 1.
func (cfg *Config) Validate() error {
	switch cfg.Algorithm {
	case AlgorithmLLL, AlgorithmBKZ:
	case "":
		return &ConfigError{Msg: "specify exactly one algorithm with --lll or --bkz"}
	default:
		return &ConfigError{Msg: fmt.Sprintf("unknown algorithm %q", cfg.Algorithm)}
	}
	delta, err := cfg.DeltaValue()
	if err != nil {
		return err
	}
	if delta.Cmp(quarter) <= 0 || delta.Cmp(one) >= 0 {
		logger.Warn("Delta is outside (1/4, 1); reduction may be slow or weak", "delta", delta.String())
	}
	if cfg.PassesPerRow < 1 {
		return &ConfigError{Msg: fmt.Sprintf("passes per row = %d must be at least 1", cfg.PassesPerRow)}
	}
	if cfg.Verbosity < 0 || 5 < cfg.Verbosity {
		return &ConfigError{Msg: fmt.Sprintf("verbosity %d is not in {0,...,5}", cfg.Verbosity)}
	}
	return nil
}

// ValidateForBasis checks the block size against a basis with numRows rows.
// A basis with 0 or 1 rows is reduced trivially, so any block size is allowed.
func (cfg *Config) ValidateForBasis(numRows int) error {
	if cfg.Algorithm != AlgorithmBKZ || numRows <= 1 {
		return nil
	}
	if cfg.BlockSize < 2 || numRows < cfg.BlockSize {
		return &ConfigError{
			Msg: fmt.Sprintf("--block-size %d is not in {2,...,%d} for a basis with %d rows",
				cfg.BlockSize, numRows, numRows),
		}
	}
	return nil
}

var (
	quarter = mustParseDelta("1/4")
	one     = mustParseDelta("1")
)

func mustParseDelta(s string) *bignumber.BigNumber {
	retVal, err := ParseDelta(s)
	if err != nil {
		panic(err)
	}
	return retVal
}

// ParseDelta parses a delta written as a fraction such as "3/4" or as a
// decimal such as "0.75". Both are exact.
func ParseDelta(s string) (*bignumber.BigNumber, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &ConfigError{Msg: "delta is empty"}
	}
	delta, err := bignumber.NewFromDecimalString(s)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("delta %q", s), Err: err}
	}
	return delta, nil
}
