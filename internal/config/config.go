// Package config provides functionality for managing configuration options
// for the application using defaults, an optional YAML file, a .env file,
// environment variables and command-line flags, in increasing priority.
package config

import (
	"cmp"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Options holds the configuration values for the application.
type Options struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Mail      MailConfig      `koanf:"mail"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Log       LogConfig       `koanf:"log"`
	Web       WebConfig       `koanf:"web"`

	// Config is the path to the YAML config file, if any.
	Config string `koanf:"-"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Address defines the server's listening address (ip:port). When empty
	// the server listens on ":" + Port.
	Address         string        `koanf:"address"`
	Port            string        `koanf:"port"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert     string   `koanf:"tls_cert"`
	TLSKey      string   `koanf:"tls_key"`
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig configures the content store.
type DatabaseConfig struct {
	// DSN selects the backend by scheme: postgres:// or mongodb://.
	DSN string `koanf:"dsn"`
	// Name is the MongoDB database name. Postgres takes it from the DSN.
	Name    string        `koanf:"name"`
	Timeout time.Duration `koanf:"timeout"`
}

// MailConfig configures the SMTP relay used by the contact form.
type MailConfig struct {
	Host      string        `koanf:"host"`
	Port      int           `koanf:"port"`
	Username  string        `koanf:"username"`
	Password  string        `koanf:"password"`
	FromName  string        `koanf:"from_name"`
	Recipient string        `koanf:"recipient"`
	Timeout   time.Duration `koanf:"timeout"`
	StartTLS  bool          `koanf:"starttls"`
}

// RateLimitConfig bounds contact submissions per client IP.
type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

// BreakerConfig configures the circuit breaker in front of the mail relay.
type BreakerConfig struct {
	MaxFailures uint32        `koanf:"max_failures"`
	OpenTimeout time.Duration `koanf:"open_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"`
}

// WebConfig configures the server-rendered views, which read the API
// through the HTTP client like any other consumer.
type WebConfig struct {
	// APIBaseURL points the views at a remote API. When empty they call this
	// server's API in-process.
	APIBaseURL    string        `koanf:"api_base_url"`
	ClientTimeout time.Duration `koanf:"client_timeout"`
}

// Backend identifies the store implementation selected by the DSN.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongodb"
)

// Backend reports which store the DSN points at.
func (d DatabaseConfig) Backend() (Backend, error) {
	scheme, _, ok := strings.Cut(d.DSN, "://")
	if !ok {
		return "", errors.Errorf("database dsn has no scheme")
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	default:
		return "", errors.Errorf("unsupported database scheme %q", scheme)
	}
}

func defaultOptions() *Options {
	return &Options{
		Server: ServerConfig{
			Port:            "5001",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Name:    "portfolio",
			Timeout: 5 * time.Second,
		},
		Mail: MailConfig{
			Host:     "smtp.gmail.com",
			Port:     587,
			FromName: "Portfolio Contact",
			Timeout:  10 * time.Second,
			StartTLS: true,
		},
		RateLimit: RateLimitConfig{
			Requests: 5,
			Window:   time.Minute,
		},
		Breaker: BreakerConfig{
			MaxFailures: 3,
			OpenTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Web: WebConfig{
			ClientTimeout: 10 * time.Second,
		},
	}
}

// envMappings maps environment variable names to config paths.
var envMappings = map[string]string{
	"SERVER_ADDRESS":   "server.address",
	"PORT":             "server.port",
	"REQUEST_TIMEOUT":  "server.request_timeout",
	"SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	"TLS_CERT":         "server.tls_cert",
	"TLS_KEY":          "server.tls_key",
	"CORS_ORIGINS":     "server.cors_origins",

	"DATABASE_DSN":     "database.dsn",
	"MONGODB_URI":      "database.dsn",
	"DATABASE_NAME":    "database.name",
	"DATABASE_TIMEOUT": "database.timeout",

	"SMTP_HOST":       "mail.host",
	"SMTP_PORT":       "mail.port",
	"SMTP_TLS":        "mail.starttls",
	"SMTP_TIMEOUT":    "mail.timeout",
	"EMAIL_USER":      "mail.username",
	"EMAIL_PASS":      "mail.password",
	"EMAIL_FROM_NAME": "mail.from_name",
	"RECIPIENT_EMAIL": "mail.recipient",

	"CONTACT_RATE_LIMIT":  "rate_limit.requests",
	"CONTACT_RATE_WINDOW": "rate_limit.window",

	"BREAKER_MAX_FAILURES": "breaker.max_failures",
	"BREAKER_OPEN_TIMEOUT": "breaker.open_timeout",

	"LOG_LEVEL": "log.level",

	"API_BASE_URL":       "web.api_base_url",
	"WEB_CLIENT_TIMEOUT": "web.client_timeout",
}

// envTransformFunc maps an environment variable name to its config path.
// Unknown variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[key]
}

// Parse builds Options from args (without the program name) and the
// process environment. Missing required settings yield an apperr
// configuration error.
func Parse(args []string) (*Options, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	var (
		addr       = fs.String("a", "", "run on ip:port server")
		dsn        = fs.String("d", "", "database dsn (postgres:// or mongodb://)")
		configPath string
		envFile    string
	)
	fs.StringVar(&configPath, "config", "", "path to YAML config file")
	fs.StringVar(&configPath, "c", "", "path to YAML config file (shorthand)")
	fs.StringVar(&envFile, "env", ".env", "path to .env file")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultOptions(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	configPath = cmp.Or(configPath, os.Getenv("CONFIG"))
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config file %s", configPath)
		}
	}

	if err := loadDotEnv(k, envFile); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	opts := &Options{}
	if err := k.Unmarshal("", opts); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	opts.Config = configPath

	// MONGODB_URI and DATABASE_DSN share a key; the explicit DSN wins.
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		opts.Database.DSN = v
	}
	if *addr != "" {
		opts.Server.Address = *addr
	}
	if *dsn != "" {
		opts.Database.DSN = *dsn
	}
	if opts.Server.Address == "" {
		opts.Server.Address = ":" + opts.Server.Port
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// loadDotEnv applies the variables of a .env file below the real
// environment. A missing file is not an error.
func loadDotEnv(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil
		}
		return errors.Wrapf(err, "read env file %s", path)
	}
	for name, value := range vars {
		if p := envTransformFunc(name); p != "" {
			if err := k.Set(p, value); err != nil {
				return errors.Wrapf(err, "apply %s", name)
			}
		}
	}
	return nil
}
