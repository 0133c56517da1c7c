package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "config.yml")
	require.NoError(t, err)

	assert.Equal(t, 2333, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "academy-media", cfg.Storage.MediaPath)
	assert.Equal(t,
		"root:password@tcp(127.0.0.1:3306)/enov_academy?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DSN)
}

func TestParseExplicitValues(t *testing.T) {
	content := []byte(`
port: 8080
env: production
database:
  host: db.internal
  port: 3307
  user: academy
  password: pw
  name: academy
redis_url: redis://cache:6379/1
allowed_origins:
  - enov.ci
  - "*.enov.ci"
admin:
  key: s3cret
  username: admin
  password_hash: $2a$10$abcdefghijklmnopqrstuv
storage:
  bucket: enov-academy
  region: eu-west-3
  media_path: /academy-media/
mail:
  host: smtp.enov.ci
  user: no-reply@enov.ci
  pass: mailpw
  recipient: contact@enov.ci
`)

	cfg, err := Parse(content, "config.yml")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "academy:pw@tcp(db.internal:3307)/academy?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN)
	assert.Equal(t, []string{"enov.ci", "*.enov.ci"}, cfg.AllowedOrigins)
	assert.Equal(t, "s3cret", cfg.Admin.Key)
	assert.Equal(t, "academy-media", cfg.Storage.MediaPath, "media path is stored without slashes")
	assert.Equal(t, "contact@enov.ci", cfg.Mail.Recipient)
}

func TestParseAliases(t *testing.T) {
	content := []byte(`
node_env: production
admin_key: legacy-key
`)

	cfg, err := Parse(content, "config.yml")
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "legacy-key", cfg.Admin.Key)
}

func TestParseAdminKeyPrecedence(t *testing.T) {
	content := []byte(`
admin:
  key: primary
admin_key: legacy
`)

	cfg, err := Parse(content, "config.yml")
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Admin.Key)
}

func TestParseExplicitDSNWins(t *testing.T) {
	content := []byte(`
dsn: "user:pw@tcp(10.0.0.5:3306)/other?parseTime=True"
database:
  host: ignored.internal
`)

	cfg, err := Parse(content, "config.yml")
	require.NoError(t, err)
	assert.Equal(t, "user:pw@tcp(10.0.0.5:3306)/other?parseTime=True", cfg.DSN)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("prot: 8080\n"), "config.yml")
	require.Error(t, err)
}

func TestParseRejectsInvalidPort(t *testing.T) {
	_, err := Parse([]byte("port: 99999\n"), "config.yml")
	require.Error(t, err)

	_, err = Parse([]byte("port: -1\n"), "config.yml")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yml")
	require.Error(t, err)
}
