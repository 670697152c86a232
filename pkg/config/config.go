// Package config provides configuration loading and validation for the
// corpusync CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel validation errors.
var (
	ErrEmptyFixtureDir  = errors.New("upstream fixture dir must not be empty")
	ErrInvalidExt       = errors.New("file extension must start with a dot")
	ErrEmptySeparator   = errors.New("segment separator must not be empty")
	ErrEmptyPrefix      = errors.New("segment comment prefix must not be empty")
	ErrEmptyCorpusDir   = errors.New("corpus dir name must not be empty")
	ErrInvalidLogLevel  = errors.New("invalid logging level")
	ErrEmptyEntryPrefix = errors.New("corpus entry prefix must not be empty")
)

// Config holds all settings for a corpus sync run.
type Config struct {
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Segment  SegmentConfig  `mapstructure:"segment"`
	Corpus   CorpusConfig   `mapstructure:"corpus"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// UpstreamConfig locates the fixture files inside the upstream repository.
type UpstreamConfig struct {
	// FixtureDir is the fixture tree's path relative to the upstream root.
	FixtureDir string `mapstructure:"fixture_dir"`
	// FixtureExt selects which files are treated as fixtures.
	FixtureExt string `mapstructure:"fixture_ext"`
}

// SegmentConfig holds the delimiter conventions of the fixture format.
type SegmentConfig struct {
	Separator     string `mapstructure:"separator"`
	CommentPrefix string `mapstructure:"comment_prefix"`
}

// CorpusConfig shapes the generated corpus tree.
type CorpusConfig struct {
	// DirName is the official corpus tree's path relative to the corpus
	// repository root.
	DirName string `mapstructure:"dir_name"`
	// EntryPrefix and EntryExt name the emitted entry files.
	EntryPrefix string `mapstructure:"entry_prefix"`
	EntryExt    string `mapstructure:"entry_ext"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Upstream.FixtureDir) == "" {
		return ErrEmptyFixtureDir
	}

	for _, ext := range []string{c.Upstream.FixtureExt, c.Corpus.EntryExt} {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidExt, ext)
		}
	}

	if c.Segment.Separator == "" {
		return ErrEmptySeparator
	}

	if c.Segment.CommentPrefix == "" {
		return ErrEmptyPrefix
	}

	if strings.TrimSpace(c.Corpus.DirName) == "" {
		return ErrEmptyCorpusDir
	}

	if c.Corpus.EntryPrefix == "" {
		return ErrEmptyEntryPrefix
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}
