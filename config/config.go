package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/configparser"
)

// Flags
var (
	modeFlag = flag.String("mode", "", "application mode: report-service or archive-service")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
	ErrInvalidMode     = errors.New("unknown application mode")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode

		Server   ServerConfig
		Chart    ChartConfig
		Database DatabaseConfig
		RabbitMQ RabbitMQConfig
		Redis    RedisConfig
		Auth     Auth
		Log      LogConfig
	}

	ServerConfig struct {
		ReportService  string `env:"SERVER_REPORT_SERVICE" default:"3000" validate:"required,numeric"`
		ArchiveService string `env:"SERVER_ARCHIVE_SERVICE" default:"3001" validate:"required,numeric"`
		MaxBodyBytes   int64  `env:"SERVER_MAX_BODY_BYTES" default:"4194304" validate:"gt=0"` // 4 MiB

		ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" default:"10s"`
		ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	ChartConfig struct {
		Source types.ChartSource `env:"CHART_SOURCE" default:"file" validate:"oneof=file postgres"`
		// Path is a CSV or XLSX chart, used when Source is file.
		Path string `env:"CHART_PATH" default:"mileage_chart.csv" validate:"required_if=Source file"`
		// BranchesFile overrides the built-in branch directory. Empty keeps the built-in one.
		BranchesFile string `env:"CHART_BRANCHES_FILE"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432" validate:"numeric"`
		User     string `env:"DATABASE_USER" default:"mileage_user"`
		Password string `env:"DATABASE_PASSWORD" default:"mileage_pass"`
		Database string `env:"DATABASE_DATABASE" default:"mileage_db"`

		MaxConns int32 `env:"DATABASE_MAXCONNS" default:"20" validate:"gte=0"` // max open connections
	}

	RabbitMQConfig struct {
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672" validate:"numeric"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	RedisConfig struct {
		Enabled     bool          `env:"REDIS_ENABLED" default:"false"`
		Addr        string        `env:"REDIS_ADDR" default:"localhost:6379" validate:"required_if=Enabled true"`
		Password    string        `env:"REDIS_PASSWORD"`
		DB          int           `env:"REDIS_DB" default:"0" validate:"gte=0"`
		TTL         time.Duration `env:"REDIS_TTL" default:"24h"`
		MaxIdle     int           `env:"REDIS_MAX_IDLE" default:"4"`
		MaxActive   int           `env:"REDIS_MAX_ACTIVE" default:"16"`
		IdleTimeout time.Duration `env:"REDIS_IDLE_TIMEOUT" default:"4m"`
	}

	Auth struct {
		AccessTokenTTL time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" default:"12h"`
		JWTSecret      string        `env:"AUTH_JWT_SECRET" default:"supersecretkey" validate:"min=8"`
	}

	LogConfig struct {
		Level string `env:"LOG_LEVEL" default:"INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c DatabaseConfig) GetMaxConns() int32 {
	return c.MaxConns
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
	)
}

// Port returns the HTTP port of the configured mode.
func (c Config) Port() string {
	if c.Mode == types.ArchiveService {
		return c.Server.ArchiveService
	}
	return c.Server.ReportService
}

func NewConfig(filepath string) (*Config, error) {
	cfg, err := Load(filepath)
	if err != nil {
		return nil, err
	}

	// Parsing flags
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return cfg, nil
}

// Load reads the config file and the environment without looking at flags.
// Tools that do not run a service mode use it directly.
func Load(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func parseFlags(cfg *Config) error {
	if modeFlag == nil || *modeFlag == "" {
		return ErrModeNotProvided
	}

	mode := types.ServiceMode(*modeFlag)
	switch mode {
	case types.ReportService, types.ArchiveService:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	cfg.Mode = mode

	return nil
}
