// Package devops loads the server configuration: a yaml file for the
// static parts, environment variables for secrets, and optionally AWS SSM
// Parameter Store for the database DSN in deployed environments.
package devops

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port        string `yaml:"port"`
	Mode        string `yaml:"mode"` // gin mode: debug, release, test
	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	DSNParameter  string `yaml:"dsnParameter"` // SSM parameter name; overrides DSN when set
	MaxConnection int    `yaml:"maxConnection"`
}

type JWTConfig struct {
	Issuer         string `yaml:"issuer"`
	Audience       string `yaml:"audience"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookieName"`
	MaxAge     int    `yaml:"maxAge"`
}

type StorageConfig struct {
	Bucket    string `yaml:"bucket"`    // S3 bucket; empty switches to LocalDir
	LocalDir  string `yaml:"localDir"`  // fallback blob directory
	MaxSizeMB int64  `yaml:"maxSizeMB"` // upload cap, defaults to 50
}

type MailConfig struct {
	Sender string `yaml:"sender"`
}

type ReportConfig struct {
	FontPath    string `yaml:"fontPath"`
	StampPath   string `yaml:"stampPath"`
	RowsPerPage int    `yaml:"rowsPerPage"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Session  SessionConfig  `yaml:"session"`
	Storage  StorageConfig  `yaml:"storage"`
	Mail     MailConfig     `yaml:"mail"`
	Report   ReportConfig   `yaml:"report"`

	// From environment only, never from the file.
	Salt          string `yaml:"-"`
	JWTSignKey    string `yaml:"-"`
	SessionSecret string `yaml:"-"`
	PDFPassword   string `yaml:"-"`
}

var (
	once    sync.Once
	loaded  *Config
	loadErr error
)

// Load reads the configuration once per process.
func Load(ctx context.Context, path string) (*Config, error) {
	once.Do(func() {
		loaded, loadErr = load(ctx, path)
	})
	return loaded, loadErr
}

func load(ctx context.Context, path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Salt = os.Getenv("CARDTIME_SALT")
	cfg.JWTSignKey = os.Getenv("CARDTIME_JWT_SIGNKEY")
	cfg.SessionSecret = os.Getenv("CARDTIME_SESSION_SECRET")
	cfg.PDFPassword = os.Getenv("CARDTIME_PDF_PASSWORD")

	if dsn := os.Getenv("CARDTIME_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	} else if cfg.Database.DSNParameter != "" {
		dsn, err := fetchParameter(ctx, cfg.Database.DSNParameter)
		if err != nil {
			return nil, err
		}
		cfg.Database.DSN = dsn
	}

	applyDefaults(cfg)
	return cfg, validate(cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Database.MaxConnection <= 0 {
		cfg.Database.MaxConnection = 10
	}
	if cfg.JWT.TimeoutSeconds <= 0 {
		cfg.JWT.TimeoutSeconds = 1800
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "cardtime.session"
	}
	if cfg.Session.MaxAge <= 0 {
		cfg.Session.MaxAge = 8 * 60 * 60
	}
	if cfg.Storage.MaxSizeMB <= 0 {
		cfg.Storage.MaxSizeMB = 50
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = os.TempDir()
	}
	if cfg.Report.RowsPerPage <= 0 {
		cfg.Report.RowsPerPage = 40
	}
}

func validate(cfg *Config) error {
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database dsn is not configured")
	}
	if cfg.Salt == "" {
		return fmt.Errorf("CARDTIME_SALT is not set")
	}
	if len(cfg.JWTSignKey) < 16 {
		return fmt.Errorf("CARDTIME_JWT_SIGNKEY must be at least 16 characters")
	}
	if cfg.SessionSecret == "" {
		return fmt.Errorf("CARDTIME_SESSION_SECRET is not set")
	}
	return nil
}

func (c *Config) JWTTimeout() time.Duration {
	return time.Duration(c.JWT.TimeoutSeconds) * time.Second
}

func fetchParameter(ctx context.Context, name string) (string, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}
	return *out.Parameter.Value, nil
}
