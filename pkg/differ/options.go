package differ

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultMaxDepth bounds traversal when Options.MaxDepth is unset.
const DefaultMaxDepth = 512

type OutputFormat string

const (
	OutputNative = OutputFormat("native")
	OutputJSON   = OutputFormat("json")
	OutputYAML   = OutputFormat("yaml")
)

var (
	ErrInvalidPattern = errors.New("invalid ignore-keys pattern")
	ErrUnknownFormat  = errors.New("unknown output format")
)

// ConfigError reports an invalid option before any diffing happens. It
// wraps ErrInvalidPattern or ErrUnknownFormat where one applies.
type ConfigError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Msg)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseOutputFormat resolves a format name. The empty string means the
// default, native.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case "", string(OutputNative):
		return OutputNative, nil
	case string(OutputJSON):
		return OutputJSON, nil
	case string(OutputYAML):
		return OutputYAML, nil
	}
	return "", fmt.Errorf("%w: %q (supported: native, json, yaml)", ErrUnknownFormat, name)
}

// Options configures one diff run. The zero value means: exact numeric
// equality, positional array comparison, no key exclusion, no path
// filter, native output, no normalization, full entry list.
type Options struct {
	// Epsilon is the maximum absolute difference under which two
	// numbers still compare equal. Zero means exact equality.
	Epsilon float64

	// ArrayIDKey matches array elements across the two trees by the
	// value of this object key instead of by position.
	ArrayIDKey string

	// IgnoreKeysRegex excludes matching object keys from comparison.
	IgnoreKeysRegex string

	// PathFilter keeps only entries whose path contains this substring.
	PathFilter string

	// OutputFormat names the rendering target: native, json or yaml.
	OutputFormat string

	// IgnoreWhitespace trims and collapses runs of whitespace in
	// strings before comparing.
	IgnoreWhitespace bool

	// IgnoreCase folds string case before comparing.
	IgnoreCase bool

	// BriefMode stops at the first difference; the result carries at
	// most that one entry.
	BriefMode bool

	// QuietMode suppresses entry construction entirely; only the
	// changed/unchanged signal survives.
	QuietMode bool

	// MaxDepth bounds traversal depth; zero means DefaultMaxDepth.
	MaxDepth int
}

// Config is the validated form of Options: pattern compiled, format
// resolved, defaults applied. It is immutable for the duration of a
// diff run.
type Config struct {
	Epsilon          float64
	ArrayIDKey       string
	IgnoreKeys       *regexp.Regexp
	PathFilter       string
	OutputFormat     OutputFormat
	IgnoreWhitespace bool
	IgnoreCase       bool
	BriefMode        bool
	QuietMode        bool
	MaxDepth         int
}

// Validate compiles and defaults the raw options. It must succeed
// before any comparison is attempted.
func (o Options) Validate() (*Config, error) {
	cfg := &Config{
		Epsilon:          o.Epsilon,
		ArrayIDKey:       o.ArrayIDKey,
		PathFilter:       o.PathFilter,
		IgnoreWhitespace: o.IgnoreWhitespace,
		IgnoreCase:       o.IgnoreCase,
		BriefMode:        o.BriefMode,
		QuietMode:        o.QuietMode,
		MaxDepth:         o.MaxDepth,
	}

	if o.Epsilon < 0 {
		return nil, &ConfigError{Field: "epsilon", Msg: fmt.Sprintf("must not be negative, got %v", o.Epsilon)}
	}
	if o.MaxDepth < 0 {
		return nil, &ConfigError{Field: "max_depth", Msg: fmt.Sprintf("must not be negative, got %d", o.MaxDepth)}
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	if o.IgnoreKeysRegex != "" {
		re, err := regexp.Compile(o.IgnoreKeysRegex)
		if err != nil {
			return nil, &ConfigError{
				Field: "ignore_keys_regex",
				Msg:   err.Error(),
				Err:   fmt.Errorf("%w: %v", ErrInvalidPattern, err),
			}
		}
		cfg.IgnoreKeys = re
	}

	format, err := ParseOutputFormat(o.OutputFormat)
	if err != nil {
		return nil, &ConfigError{Field: "output_format", Msg: err.Error(), Err: err}
	}
	cfg.OutputFormat = format

	return cfg, nil
}
