// Package config loads CourseVault settings.
//
// Values are layered, later sources winning:
//
//	built-in defaults < config/app.json < .env < process environment
//
// Realm signing secrets have no default. A missing secret is reported at
// request time as a configuration error rather than papered over here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	defaultAppEnv        = "local"
	defaultAppPort       = "3000"
	defaultMongoDatabase = "coursevault"
	DefaultTokenTTL      = time.Hour
	defaultCORSOrigin    = "http://localhost:5173"
	defaultRateLimit     = 100
	defaultMaxBodyBytes  = 1 << 20
)

// Config is the resolved runtime configuration.
type Config struct {
	AppEnv string
	Port   string

	DBDriver      string
	MongoURL      string
	MongoDatabase string

	UserJWTSecret  string
	AdminJWTSecret string
	TokenTTL       time.Duration

	CORSOrigin string

	RedisAddr     string
	RedisPassword string

	RateLimit    int
	MaxBodyBytes int64

	LogLevel string
	LogMongo bool
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("config: MONGODB_URL is not set")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q (supported: mongo, memory)", c.DBDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// MissingSecrets lists realm secrets that are empty. The server still starts;
// requests into an unconfigured realm fail with a configuration error.
func (c *Config) MissingSecrets() []string {
	var missing []string
	if c.UserJWTSecret == "" {
		missing = append(missing, "USER_JWT_SECRET")
	}
	if c.AdminJWTSecret == "" {
		missing = append(missing, "ADMIN_JWT_SECRET")
	}
	return missing
}

// Load reads config/app.json and .env from the working directory, then the
// process environment.
func Load() (*Config, error) {
	return LoadFrom("config/app.json", ".env")
}

// LoadFrom is Load with explicit file paths. Missing files are skipped.
func LoadFrom(configPath, envPath string) (*Config, error) {
	values := defaultValues()

	if err := mergeJSONConfig(configPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := mergeDotEnv(envPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	mergeEnviron(values)

	return build(values)
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":          defaultAppEnv,
		"APP_PORT":         defaultAppPort,
		"DB_DRIVER":        DriverMongo,
		"MONGODB_URL":      "",
		"MONGODB_DATABASE": defaultMongoDatabase,
		"USER_JWT_SECRET":  "",
		"ADMIN_JWT_SECRET": "",
		"TOKEN_TTL":        DefaultTokenTTL.String(),
		"CORS_ORIGIN":      defaultCORSOrigin,
		"REDIS_ADDR":       "",
		"REDIS_PASSWORD":   "",
		"RATE_LIMIT":       strconv.Itoa(defaultRateLimit),
		"MAX_BODY_BYTES":   strconv.Itoa(defaultMaxBodyBytes),
		"LOG_LEVEL":        "",
		"LOG_MONGO":        "false",
	}
}

func build(v map[string]string) (*Config, error) {
	ttl, err := time.ParseDuration(v["TOKEN_TTL"])
	if err != nil {
		return nil, fmt.Errorf("config: TOKEN_TTL: %w", err)
	}
	rate, err := strconv.Atoi(v["RATE_LIMIT"])
	if err != nil {
		return nil, fmt.Errorf("config: RATE_LIMIT: %w", err)
	}
	maxBody, err := strconv.ParseInt(v["MAX_BODY_BYTES"], 10, 64)
	if err != nil || maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	logMongo, _ := strconv.ParseBool(v["LOG_MONGO"])

	port := v["APP_PORT"]
	if p := v["PORT"]; p != "" {
		port = p
	}

	return &Config{
		AppEnv:         strings.ToLower(v["APP_ENV"]),
		Port:           port,
		DBDriver:       strings.ToLower(v["DB_DRIVER"]),
		MongoURL:       v["MONGODB_URL"],
		MongoDatabase:  v["MONGODB_DATABASE"],
		UserJWTSecret:  v["USER_JWT_SECRET"],
		AdminJWTSecret: v["ADMIN_JWT_SECRET"],
		TokenTTL:       ttl,
		CORSOrigin:     v["CORS_ORIGIN"],
		RedisAddr:      v["REDIS_ADDR"],
		RedisPassword:  v["REDIS_PASSWORD"],
		RateLimit:      rate,
		MaxBodyBytes:   maxBody,
		LogLevel:       strings.ToLower(v["LOG_LEVEL"]),
		LogMongo:       logMongo,
	}, nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch tv := val.(type) {
		case string:
			s = tv
		case float64:
			s = strconv.FormatFloat(tv, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(tv)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

// mergeEnviron overlays every known key, plus PORT, from the environment.
func mergeEnviron(out map[string]string) {
	keys := make([]string, 0, len(out)+1)
	for k := range out {
		keys = append(keys, k)
	}
	keys = append(keys, "PORT")

	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
			out[k] = strings.TrimSpace(v)
		}
	}
}
