package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Email providers supported by the delivery layer
const (
	ProviderEmailJS = "emailjs"
	ProviderResend  = "resend"
	ProviderSMTP    = "smtp"
	ProviderNoop    = "noop"
)

var structValidator = validator.New()

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Email         EmailConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string   `validate:"required,numeric"`
	GinMode        string   `validate:"oneof=debug release test"`
	AppEnv         string   `validate:"required"`
	AllowedOrigins []string `validate:"required,min=1,dive,required"`
}

// EmailConfig describes the external email collaborator. The service and template
// identifiers are EmailJS terms; the resend and smtp providers reuse the template
// identifiers as keys into the locally rendered templates.
type EmailConfig struct {
	Provider               string `validate:"oneof=emailjs resend smtp noop"`
	ServiceID              string
	AdminTemplateID        string `validate:"required"`
	ConfirmationTemplateID string `validate:"required,nefield=AdminTemplateID"`
	AdminAddress           string `validate:"omitempty,email"`
	FromAddress            string
	EmailJS                EmailJSConfig
	Resend                 ResendConfig
	SMTP                   SMTPConfig
}

type EmailJSConfig struct {
	APIURL     string `validate:"required,url"`
	PublicKey  string
	PrivateKey string
}

type ResendConfig struct {
	APIKey string
}

type SMTPConfig struct {
	Host     string
	Port     int `validate:"omitempty,min=1,max=65535"`
	Username string
	Password string
}

type LoggingConfig struct {
	Level string `validate:"oneof=debug info warn error"`
	Dir   string
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string `validate:"required"`
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("EMAIL_PROVIDER", ProviderEmailJS)
	v.SetDefault("EMAILJS_API_URL", "https://api.emailjs.com/api/v1.0/email/send")
	v.SetDefault("EMAILJS_ADMIN_TEMPLATE_ID", "template_cfg8uob")
	v.SetDefault("EMAILJS_USER_TEMPLATE_ID", "template_znr8kor")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "inquiry-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "inquiry")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "inquiry-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Email: EmailConfig{
			Provider:               strings.ToLower(strings.TrimSpace(v.GetString("EMAIL_PROVIDER"))),
			ServiceID:              v.GetString("EMAILJS_SERVICE_ID"),
			AdminTemplateID:        v.GetString("EMAILJS_ADMIN_TEMPLATE_ID"),
			ConfirmationTemplateID: v.GetString("EMAILJS_USER_TEMPLATE_ID"),
			AdminAddress:           v.GetString("ADMIN_EMAIL"),
			FromAddress:            v.GetString("EMAIL_FROM"),
			EmailJS: EmailJSConfig{
				APIURL:     v.GetString("EMAILJS_API_URL"),
				PublicKey:  v.GetString("EMAILJS_PUBLIC_KEY"),
				PrivateKey: v.GetString("EMAILJS_PRIVATE_KEY"),
			},
			Resend: ResendConfig{
				APIKey: v.GetString("RESEND_API_KEY"),
			},
			SMTP: SMTPConfig{
				Host:     v.GetString("SMTP_HOST"),
				Port:     v.GetInt("SMTP_PORT"),
				Username: v.GetString("SMTP_USERNAME"),
				Password: v.GetString("SMTP_PASSWORD"),
			},
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(v.GetString("LOG_LEVEL")),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct tags first, then the rules that depend on the chosen provider
func (c *Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.Email.Provider {
	case ProviderEmailJS:
		if c.Email.ServiceID == "" {
			return fmt.Errorf("EMAILJS_SERVICE_ID is required when EMAIL_PROVIDER=emailjs")
		}
		if c.Email.EmailJS.PublicKey == "" {
			return fmt.Errorf("EMAILJS_PUBLIC_KEY is required when EMAIL_PROVIDER=emailjs")
		}
	case ProviderResend:
		if c.Email.Resend.APIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required when EMAIL_PROVIDER=resend")
		}
	case ProviderSMTP:
		if c.Email.SMTP.Host == "" {
			return fmt.Errorf("SMTP_HOST is required when EMAIL_PROVIDER=smtp")
		}
	}

	// Locally rendered templates need somewhere to send the admin copy from and to
	if c.Email.Provider == ProviderResend || c.Email.Provider == ProviderSMTP {
		if c.Email.AdminAddress == "" {
			return fmt.Errorf("ADMIN_EMAIL is required when EMAIL_PROVIDER=%s", c.Email.Provider)
		}
		if c.Email.FromAddress == "" {
			return fmt.Errorf("EMAIL_FROM is required when EMAIL_PROVIDER=%s", c.Email.Provider)
		}
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// splitList parses a comma-separated value, dropping blanks
func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
