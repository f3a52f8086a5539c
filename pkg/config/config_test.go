package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pardot/pkg/cache"
	errs "github.com/matzehuels/pardot/pkg/errors"
	"github.com/matzehuels/pardot/pkg/integrations/pardot"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvEmail, EnvPassword, EnvUserKey, EnvBaseURL, EnvCacheBackend,
		EnvRedisAddr, EnvRedisDB, EnvMongoURI, EnvServerAddr,
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, pardot.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, cache.BackendFile, cfg.Cache.Backend)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.False(t, cfg.Credentials().Complete())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
[api]
email = "ops@example.com"
password = "pw"
user_key = "uk"
timeout = "10s"

[cache]
backend = "redis"
prefix = "site-a:"

[cache.redis]
addr = "localhost:6379"
db = 2

[server]
addr = ":9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, pardot.Credentials{Email: "ops@example.com", Password: "pw", UserKey: "uk"}, cfg.Credentials())
	assert.Equal(t, 10*time.Second, cfg.API.Timeout.Duration)
	assert.Equal(t, ":9000", cfg.Server.Addr)

	opts := cfg.CacheOptions()
	assert.Equal(t, cache.BackendRedis, opts.Backend)
	assert.Equal(t, "localhost:6379", opts.Redis.Addr)
	assert.Equal(t, 2, opts.Redis.DB)
	assert.Equal(t, "site-a:pardot_campaigns", cfg.Keyer().CampaignsKey())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
[api]
email = "file@example.com"
`)
	t.Setenv(EnvEmail, "env@example.com")
	t.Setenv(EnvPassword, "pw")
	t.Setenv(EnvUserKey, "uk")
	t.Setenv(EnvCacheBackend, "mongo")
	t.Setenv(EnvMongoURI, "mongodb://localhost:27017")
	t.Setenv(EnvServerAddr, ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env@example.com", cfg.API.Email)
	assert.True(t, cfg.Credentials().Complete())
	assert.Equal(t, cache.BackendMongo, cfg.Cache.Backend)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "pardot_campaigns", cfg.Keyer().CampaignsKey())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "syntax", file: `[api`},
		{name: "backend", file: "[cache]\nbackend = \"memcached\""},
		{name: "redis without addr", file: "[cache]\nbackend = \"redis\""},
		{name: "mongo without uri", file: "[cache]\nbackend = \"mongo\""},
		{name: "base url", file: "[api]\nbase_url = \"ftp://example.com\""},
		{name: "timeout", file: "[api]\ntimeout = \"soon\""},
		{name: "redis db", env: map[string]string{EnvRedisDB: "one"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeFile(t, tt.file))
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeConfigInvalid), "got %v", err)
		})
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), dir)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName, "config.toml"), path)
}

func TestWriteRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	in := &Config{API: API{Email: "a@b.c", Password: "pw", UserKey: "uk"}}

	require.NoError(t, Write(path, in))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in.Credentials(), out.Credentials())
}
