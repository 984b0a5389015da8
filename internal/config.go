package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string `validate:"oneof=dev prod"`
	LogLevel   string `validate:"oneof=debug info warn error"`
	ShipEngine ShipEngineConfig
	Storage    StorageConfig
	Sentry     SentryConfig
}

// ShipEngineConfig holds the API credentials used by the CLI.
type ShipEngineConfig struct {
	APIKey  string        `validate:"required"`
	BaseURL string        `validate:"omitempty,url"`
	Timeout time.Duration `validate:"gte=0"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN              string  `validate:"omitempty,url"`
	SampleRate       float64 `validate:"gte=0,lte=1"`
	TracesSampleRate float64 `validate:"gte=0,lte=1"`
}

// StorageConfig selects where downloaded labels are archived.
// "s3" covers AWS and any S3-compatible endpoint (MinIO); "r2" derives the
// endpoint from the Cloudflare account id.
type StorageConfig struct {
	Provider        string `validate:"oneof=local s3 r2"`
	LocalPath       string `validate:"required_if=Provider local"`
	LocalURL        string
	Bucket          string `validate:"required_unless=Provider local"`
	Region          string
	Endpoint        string `validate:"omitempty,url"`
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	R2AccountID     string `validate:"required_if=Provider r2"`
	UsePathStyle    bool
}

var configDefaults = map[string]any{
	"env":                       "dev",
	"log_level":                 "info",
	"shipengine.api_key":        "",
	"shipengine.base_url":       "https://api.shipengine.com",
	"shipengine.timeout":        "30s",
	"storage.provider":          "local",
	"storage.local_path":        "./labels",
	"storage.local_url":         "",
	"storage.bucket":            "",
	"storage.region":            "us-east-1",
	"storage.endpoint":          "",
	"storage.access_key_id":     "",
	"storage.secret_access_key": "",
	"storage.public_url":        "",
	"storage.r2_account_id":     "",
	"storage.path_style":        false,
	"sentry.dsn":                "",
	"sentry.sample_rate":        1.0,
	"sentry.traces_sample_rate": 0.0,
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Debug(".env file not found, using environment variables and defaults")
		}
	}

	return loadConfig(newViper())
}

// newViper binds every config key to its environment variable, e.g.
// "shipengine.api_key" to SHIPENGINE_API_KEY.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	return v
}

func loadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:      strings.ToLower(v.GetString("env")),
		LogLevel: strings.ToLower(v.GetString("log_level")),
		ShipEngine: ShipEngineConfig{
			APIKey:  strings.TrimSpace(v.GetString("shipengine.api_key")),
			BaseURL: v.GetString("shipengine.base_url"),
			Timeout: v.GetDuration("shipengine.timeout"),
		},
		Storage: StorageConfig{
			Provider:        strings.ToLower(v.GetString("storage.provider")),
			LocalPath:       v.GetString("storage.local_path"),
			LocalURL:        v.GetString("storage.local_url"),
			Bucket:          v.GetString("storage.bucket"),
			Region:          v.GetString("storage.region"),
			Endpoint:        v.GetString("storage.endpoint"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			PublicURL:       v.GetString("storage.public_url"),
			R2AccountID:     v.GetString("storage.r2_account_id"),
			UsePathStyle:    v.GetBool("storage.path_style"),
		},
		Sentry: SentryConfig{
			DSN:              v.GetString("sentry.dsn"),
			SampleRate:       v.GetFloat64("sentry.sample_rate"),
			TracesSampleRate: v.GetFloat64("sentry.traces_sample_rate"),
		},
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", describeValidation(err))
	}

	return cfg, nil
}

// envNames maps validated struct fields back to the variables that set them.
var envNames = map[string]string{
	"Config.Env":                     "ENV",
	"Config.LogLevel":                "LOG_LEVEL",
	"Config.ShipEngine.APIKey":       "SHIPENGINE_API_KEY",
	"Config.ShipEngine.BaseURL":      "SHIPENGINE_BASE_URL",
	"Config.ShipEngine.Timeout":      "SHIPENGINE_TIMEOUT",
	"Config.Storage.Provider":        "STORAGE_PROVIDER",
	"Config.Storage.LocalPath":       "STORAGE_LOCAL_PATH",
	"Config.Storage.Bucket":          "STORAGE_BUCKET",
	"Config.Storage.Endpoint":        "STORAGE_ENDPOINT",
	"Config.Storage.R2AccountID":     "STORAGE_R2_ACCOUNT_ID",
	"Config.Sentry.DSN":              "SENTRY_DSN",
	"Config.Sentry.SampleRate":       "SENTRY_SAMPLE_RATE",
	"Config.Sentry.TracesSampleRate": "SENTRY_TRACES_SAMPLE_RATE",
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := envNames[fe.Namespace()]
		if name == "" {
			name = fe.Namespace()
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %q", name, fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
