package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is loaded once at startup and passed into constructors explicitly;
// there is no process-wide configuration singleton.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth   AuthConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	NATS   NATSConfig
	Mailer MailerConfig
}

type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET"`
	TokenTTL          time.Duration `env:"TOKEN_TTL,           default=1h"`
	LoginAttemptLimit int           `env:"LOGIN_ATTEMPT_LIMIT, default=5"`
	LockoutDuration   time.Duration `env:"LOCKOUT_DURATION,    default=15m"`
	BcryptCost        int           `env:"BCRYPT_COST,         default=12"`
	StaffEmailDomains []string      `env:"STAFF_EMAIL_DOMAINS, default=clinicore.health"`
	RegistrarRoles    []string      `env:"REGISTRAR_ROLES,     default=admin,receptionist"`
	DeliveryWorkers   int           `env:"DELIVERY_WORKERS,    default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_service"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type NATSConfig struct {
	URL string `env:"NATS_URL, default=nats://localhost:4222"`
}

type MailerConfig struct {
	// Provider selects the NotificationSender implementation:
	// "mailersend", "smtp", or "dev".
	Provider     string `env:"MAILER_PROVIDER, default=dev"`
	APIKey       string `env:"MAILERSEND_API_KEY"`
	FromName     string `env:"MAILER_FROM_NAME,  default=Clinicore"`
	FromEmail    string `env:"MAILER_FROM_EMAIL, default=no-reply@clinicore.health"`
	SMTPHost     string `env:"SMTP_HOST, default=localhost"`
	SMTPPort     int    `env:"SMTP_PORT, default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
