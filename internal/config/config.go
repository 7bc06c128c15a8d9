package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	JWT       JWTConfig       `yaml:"jwt"`
	Processor ProcessorConfig `yaml:"processor"`
	Fees      FeesConfig      `yaml:"fees"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SMTPConfig contains email service settings
type SMTPConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	AdminEmail string `yaml:"admin_email"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// ProcessorConfig contains payment gateway settings
type ProcessorConfig struct {
	BaseURL       string `yaml:"base_url"`
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	Currency      string `yaml:"currency"`
}

// FeesConfig contains marketplace fee settings. Amounts are in major
// currency units.
type FeesConfig struct {
	VariableFeePercent      float64 `yaml:"variable_fee_percent"`
	RenterFixedThreshold    float64 `yaml:"renter_fixed_threshold"`
	RenterFixedBelow        float64 `yaml:"renter_fixed_below"`
	RenterFixedAbove        float64 `yaml:"renter_fixed_above"`
	HubberFixedThreshold    float64 `yaml:"hubber_fixed_threshold"`
	HubberFixedBelow        float64 `yaml:"hubber_fixed_below"`
	HubberFixedAbove        float64 `yaml:"hubber_fixed_above"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpirePendingModifications string `yaml:"expire_pending_modifications"`
	ReportFailedRefunds        string `yaml:"report_failed_refunds"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SMTP
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}
	if val := os.Getenv("SMTP_FROM"); val != "" {
		c.SMTP.From = val
	}
	if val := os.Getenv("ADMIN_EMAIL"); val != "" {
		c.SMTP.AdminEmail = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Processor
	if val := os.Getenv("PROCESSOR_BASE_URL"); val != "" {
		c.Processor.BaseURL = val
	}
	if val := os.Getenv("PROCESSOR_SECRET_KEY"); val != "" {
		c.Processor.SecretKey = val
	}
	if val := os.Getenv("PROCESSOR_WEBHOOK_SECRET"); val != "" {
		c.Processor.WebhookSecret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// SMTP validation
	if c.SMTP.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTP.Port)
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		c.JWT.AccessTokenExpiry = 60 // 1 hour
	}

	// Processor validation
	if c.Processor.BaseURL == "" {
		return fmt.Errorf("processor base URL is required")
	}
	if c.Processor.SecretKey == "" {
		return fmt.Errorf("processor secret key is required")
	}
	if c.Processor.WebhookSecret == "" {
		return fmt.Errorf("processor webhook secret is required")
	}
	if c.Processor.Currency == "" {
		c.Processor.Currency = "eur"
	}

	// Fee defaults
	if c.Fees.VariableFeePercent == 0 {
		c.Fees.VariableFeePercent = 10
	}
	if c.Fees.RenterFixedThreshold == 0 {
		c.Fees.RenterFixedThreshold = 8
	}
	if c.Fees.RenterFixedBelow == 0 {
		c.Fees.RenterFixedBelow = 0.50
	}
	if c.Fees.RenterFixedAbove == 0 {
		c.Fees.RenterFixedAbove = 2
	}
	if c.Fees.HubberFixedThreshold == 0 {
		c.Fees.HubberFixedThreshold = 10
	}
	if c.Fees.HubberFixedBelow == 0 {
		c.Fees.HubberFixedBelow = 0.50
	}
	if c.Fees.HubberFixedAbove == 0 {
		c.Fees.HubberFixedAbove = 2
	}

	// Scheduler defaults
	if c.Scheduler.ExpirePendingModifications == "" {
		c.Scheduler.ExpirePendingModifications = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.ReportFailedRefunds == "" {
		c.Scheduler.ReportFailedRefunds = "0 0 7 * * *" // 7 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
