package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full environment-driven configuration of the gateway process.
type Config struct {
	Port     string `env:"PORT,      default=7897"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs the session cookie. Mandatory: an unsigned session
	// ID would let clients forge identities.
	SessionSecret string `env:"SESSION_SECRET, required"`

	// PublicDir holds the static dashboard assets. The gateway only serves
	// the bytes; the dashboard itself is display-only.
	PublicDir string `env:"PUBLIC_DIR, default=public"`

	// CredentialScheme selects how passwords are stored and compared:
	// "plaintext" (legacy directory compatibility) or "bcrypt".
	CredentialScheme string `env:"CREDENTIAL_SCHEME, default=plaintext"`

	Upstream UpstreamConfig
	Store    StoreConfig
	Sessions SessionsConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type UpstreamConfig struct {
	BaseURL        string `env:"UPSTREAM_BASE_URL, default=http://localhost:7895"`
	TimeoutSeconds int    `env:"UPSTREAM_TIMEOUT_SECONDS, default=10"`
}

// StoreConfig selects the directory/registry backend: "file" (users.json,
// machines.json) or "mongo".
type StoreConfig struct {
	Driver       string `env:"STORE_DRIVER,   default=file"`
	UsersPath    string `env:"USERS_PATH,     default=users.json"`
	MachinesPath string `env:"MACHINES_PATH,  default=machines.json"`
	AuditPath    string `env:"AUDIT_LOG_PATH, default=admin.log"`
}

// SessionsConfig selects the session backend: "memory" (single instance,
// sessions die with the process) or "redis".
type SessionsConfig struct {
	Store string `env:"SESSION_STORE, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fleet_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD, default="`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
