package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultFixtureDir, cfg.Upstream.FixtureDir)
	assert.Equal(t, DefaultFixtureExt, cfg.Upstream.FixtureExt)
	assert.Equal(t, DefaultSeparator, cfg.Segment.Separator)
	assert.Equal(t, DefaultCommentPrefix, cfg.Segment.CommentPrefix)
	assert.Equal(t, DefaultCorpusDirName, cfg.Corpus.DirName)
	assert.Equal(t, DefaultEntryPrefix, cfg.Corpus.EntryPrefix)
	assert.Equal(t, DefaultEntryExt, cfg.Corpus.EntryExt)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `upstream:
  fixture_dir: fixtures
  fixture_ext: .tst
segment:
  separator: "==="
logging:
  level: debug
`

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "fixtures", cfg.Upstream.FixtureDir)
	assert.Equal(t, ".tst", cfg.Upstream.FixtureExt)
	assert.Equal(t, "===", cfg.Segment.Separator)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset keys keep their defaults.
	assert.Equal(t, DefaultCommentPrefix, cfg.Segment.CommentPrefix)
	assert.Equal(t, DefaultCorpusDirName, cfg.Corpus.DirName)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Upstream: UpstreamConfig{FixtureDir: "tests/typ", FixtureExt: ".typ"},
		Segment:  SegmentConfig{Separator: "---", CommentPrefix: "//"},
		Corpus:   CorpusConfig{DirName: "corpus/official", EntryPrefix: "test", EntryExt: ".scm"},
		Logging:  LoggingConfig{Level: "info"},
	}

	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty fixture dir", func(c *Config) { c.Upstream.FixtureDir = " " }, ErrEmptyFixtureDir},
		{"bad fixture ext", func(c *Config) { c.Upstream.FixtureExt = "typ" }, ErrInvalidExt},
		{"bad entry ext", func(c *Config) { c.Corpus.EntryExt = "scm" }, ErrInvalidExt},
		{"empty separator", func(c *Config) { c.Segment.Separator = "" }, ErrEmptySeparator},
		{"empty comment prefix", func(c *Config) { c.Segment.CommentPrefix = "" }, ErrEmptyPrefix},
		{"empty corpus dir", func(c *Config) { c.Corpus.DirName = "" }, ErrEmptyCorpusDir},
		{"empty entry prefix", func(c *Config) { c.Corpus.EntryPrefix = "" }, ErrEmptyEntryPrefix},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
