package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "sqlite:moodkeeper.db", c.GatewayDSN)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.False(t, c.S3.Enabled())
}

func TestLoad_GeneratesSecretWhenUnset(t *testing.T) {
	t.Chdir(t.TempDir())

	a := Load(nil)
	b := Load(nil)
	assert.Len(t, a.SecretKey, 64)
	assert.NotEqual(t, a.SecretKey, b.SecretKey)

	c := Load([]string{"-k", "fixed"})
	assert.Equal(t, "fixed", c.SecretKey)
}

func TestParseEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MOODKEEPER_GATEWAY_DSN", "postgres://u:p@db/mood")
	t.Setenv("MOODKEEPER_REQUEST_TIMEOUT", "3s")
	t.Setenv("MOODKEEPER_S3_BUCKET", "letters")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "postgres://u:p@db/mood", cfg.GatewayDSN)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "moodkeeper-session.db", cfg.SessionDB, "unset variables keep defaults")
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("MOODKEEPER_LETTERS_DIR=/tmp/notes\nMOODKEEPER_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("MOODKEEPER_LOG_LEVEL", "warn")
	t.Cleanup(func() { os.Unsetenv("MOODKEEPER_LETTERS_DIR") })

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "/tmp/notes", cfg.LettersDir)
	assert.Equal(t, "warn", cfg.LogLevel, "process environment wins over .env")
}

func TestParseEnv_BadDurationPanics(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MOODKEEPER_REQUEST_TIMEOUT", "soon")
	require.Panics(t, func() { parseEnv(defaults()) })
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]any{
		"gateway_dsn":     "grpc://store:50051",
		"request_timeout": "1500ms",
		"s3":              map[string]any{"endpoint": "http://minio:9000", "bucket": "notes"},
	})
	require.NoError(t, err)
	path := writeFile(t, "cfg.json", string(b))

	cfg := defaults()
	parseFile(cfg, []string{"-config", path})

	assert.Equal(t, "grpc://store:50051", cfg.GatewayDSN)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "http://minio:9000", cfg.S3.Endpoint)
	assert.Equal(t, "us-east-1", cfg.S3.Region, "absent keys keep earlier values")
}

func TestParseFile_YAML(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
gateway_dsn: sqlite:/var/lib/mood.db
log_level: debug
lockbox_token_validity: 2m
s3:
  bucket: archive
  access_key: AK
`)

	cfg := defaults()
	parseFile(cfg, []string{"-c", path})

	want := defaults()
	want.GatewayDSN = "sqlite:/var/lib/mood.db"
	want.LogLevel = "debug"
	want.LockboxTokenValidityDuration = 2 * time.Minute
	want.S3.Bucket = "archive"
	want.S3.AccessKey = "AK"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseFile_NoFlagNoChange(t *testing.T) {
	cfg := defaults()
	parseFile(cfg, []string{"journal", "list"})
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFile_Errors(t *testing.T) {
	require.Panics(t, func() { parseFile(defaults(), []string{"-c", filepath.Join(t.TempDir(), "missing.json")}) })

	bad := writeFile(t, "bad.json", `{"request_timeout": true}`)
	require.Panics(t, func() { parseFile(defaults(), []string{"-c", bad}) })
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		mutate      func(*Config)
		expectPanic bool
	}{
		{
			name: "known flags among subcommand args",
			args: []string{"-g", "grpc://x:1", "journal", "list", "-t", "30", "--search", "rain"},
			mutate: func(c *Config) {
				c.GatewayDSN = "grpc://x:1"
				c.RequestTimeout = 30 * time.Second
			},
		},
		{
			name:   "no flags keeps the file timeout",
			args:   []string{"weekly"},
			mutate: func(c *Config) {},
		},
		{
			name: "bucket and letters dir",
			args: []string{"-b", "notes", "-o", "/tmp/letters"},
			mutate: func(c *Config) {
				c.S3.Bucket = "notes"
				c.LettersDir = "/tmp/letters"
			},
		},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.RequestTimeout = 1500 * time.Millisecond

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			want := defaults()
			want.RequestTimeout = 1500 * time.Millisecond
			tt.mutate(want)

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MOODKEEPER_GATEWAY_DSN", "sqlite:env.db")
	t.Setenv("MOODKEEPER_LOG_LEVEL", "warn")
	path := writeFile(t, "cfg.yml", "gateway_dsn: sqlite:file.db\nsession_db: file-session.db\n")

	cfg := Load([]string{"-c", path, "-g", "sqlite:flag.db", "dashboard"})

	assert.Equal(t, "sqlite:flag.db", cfg.GatewayDSN)
	assert.Equal(t, "file-session.db", cfg.SessionDB)
	assert.Equal(t, "warn", cfg.LogLevel)
}
