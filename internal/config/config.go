package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "enov_academy"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultMediaPath  = "academy-media"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	DSN            string         `yaml:"dsn"`
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Admin          AdminConfig    `yaml:"admin"`
	Storage        StorageConfig  `yaml:"storage"`
	Mail           MailConfig     `yaml:"mail"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Loc      string `yaml:"loc"`
}

// AdminConfig is the single-operator credential set. Key is the shared
// secret compared verbatim on every admin request; Username/PasswordHash
// gate the login endpoint that hands the key out as a session cookie.
type AdminConfig struct {
	Key          string `yaml:"key"`
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
}

// StorageConfig points at the S3-compatible bucket holding academy media.
type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	MediaPath       string `yaml:"media_path"`
}

type MailConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Pass      string `yaml:"pass"`
	From      string `yaml:"from"`
	Recipient string `yaml:"recipient"`
}

type rawAppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"`
	NodeEnv        string         `yaml:"node_env"`
	DSN            string         `yaml:"dsn"`
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Admin          AdminConfig    `yaml:"admin"`
	AdminKey       string         `yaml:"admin_key"`
	Storage        StorageConfig  `yaml:"storage"`
	Mail           MailConfig     `yaml:"mail"`
}

func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	return Parse(content, path)
}

// Parse decodes YAML content into a validated AppConfig.
func Parse(content []byte, path string) (*AppConfig, error) {
	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	applyRaw(&cfg, raw)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d in %q, expected 1-65535", cfg.Database.Port, path)
	}
	if cfg.DSN == "" {
		cfg.DSN = buildDSN(cfg.Database)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
			Loc:      defaultDBLoc,
		},
		RedisURL: defaultRedisURL,
		Storage: StorageConfig{
			MediaPath: defaultMediaPath,
		},
	}
}

func applyRaw(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if env := firstNonEmpty(raw.Env, raw.NodeEnv); env != "" {
		cfg.Env = env
	}
	cfg.DSN = strings.TrimSpace(raw.DSN)
	applyDatabase(&cfg.Database, raw.Database)
	if raw.RedisURL != "" {
		cfg.RedisURL = strings.TrimSpace(raw.RedisURL)
	}
	cfg.AllowedOrigins = raw.AllowedOrigins
	cfg.Admin = raw.Admin
	if cfg.Admin.Key == "" {
		cfg.Admin.Key = strings.TrimSpace(raw.AdminKey)
	}
	applyStorage(&cfg.Storage, raw.Storage)
	cfg.Mail = raw.Mail
}

func applyDatabase(dst *DatabaseConfig, src DatabaseConfig) {
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.Port != 0 {
		dst.Port = src.Port
	}
	if src.User != "" {
		dst.User = src.User
	}
	if src.Password != "" {
		dst.Password = src.Password
	}
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Charset != "" {
		dst.Charset = src.Charset
	}
	if src.Loc != "" {
		dst.Loc = src.Loc
	}
}

func applyStorage(dst *StorageConfig, src StorageConfig) {
	mediaPath := strings.Trim(strings.TrimSpace(src.MediaPath), "/")
	src.MediaPath = dst.MediaPath
	if mediaPath != "" {
		src.MediaPath = mediaPath
	}
	*dst = src
}

func buildDSN(db DatabaseConfig) string {
	loc := db.Loc
	if loc == "" {
		loc = defaultDBLoc
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=%s",
		db.User, db.Password, db.Host, db.Port, db.Name, db.Charset, url.QueryEscape(loc))
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
