package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Cache    CacheConfig    `yaml:"cache"`
	Sources  SourcesConfig  `yaml:"sources"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string        `yaml:"host"                  env:"SERVER_HOST"                  env-default:"127.0.0.1"`
	Port               int           `yaml:"port"                  env:"SERVER_PORT"                  env-default:"8080"`
	ReadTimeout        time.Duration `yaml:"read_timeout"          env:"SERVER_READ_TIMEOUT"          env-default:"10s"`
	WriteTimeout       time.Duration `yaml:"write_timeout"         env:"SERVER_WRITE_TIMEOUT"         env-default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"          env:"SERVER_IDLE_TIMEOUT"          env-default:"60s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"      env:"SERVER_SHUTDOWN_TIMEOUT"      env-default:"10s"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LookupConfig holds lookup service settings.
type LookupConfig struct {
	MaxQueryLength int `yaml:"max_query_length" env:"LOOKUP_MAX_QUERY_LENGTH" env-default:"1000"`
	RecentCapacity int `yaml:"recent_capacity"  env:"LOOKUP_RECENT_CAPACITY"  env-default:"5"`
}

// Cache backends.
const (
	CacheBackendFile     = "file"
	CacheBackendPostgres = "postgres"
	CacheBackendNone     = "none"
)

// CacheConfig selects and tunes the two cache tiers.
type CacheConfig struct {
	Backend        string `yaml:"backend"         env:"CACHE_BACKEND"         env-default:"file"`
	Dir            string `yaml:"dir"             env:"CACHE_DIR"`
	MemoryCapacity int    `yaml:"memory_capacity" env:"CACHE_MEMORY_CAPACITY" env-default:"10000"`
}

// Lemmatizer modes.
const (
	LemmatizerTable = "table"
	LemmatizerStem  = "stem"
	LemmatizerNone  = "none"
)

// SourcesConfig configures the definition sources.
type SourcesConfig struct {
	FreeDictBaseURL   string        `yaml:"freedict_base_url"   env:"SOURCES_FREEDICT_BASE_URL"   env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	WiktionaryBaseURL string        `yaml:"wiktionary_base_url" env:"SOURCES_WIKTIONARY_BASE_URL" env-default:"https://en.wiktionary.org/api/rest_v1/page/definition"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"        env:"SOURCES_HTTP_TIMEOUT"        env-default:"5s"`
	BundledPath       string        `yaml:"bundled_path"        env:"SOURCES_BUNDLED_PATH"`
	SystemDictCommand string        `yaml:"system_dict_command" env:"SOURCES_SYSTEM_DICT_COMMAND"`
	Lemmatizer        string        `yaml:"lemmatizer"          env:"SOURCES_LEMMATIZER"          env-default:"stem"`
	DisableRemote     bool          `yaml:"disable_remote"      env:"SOURCES_DISABLE_REMOTE"      env-default:"false"`
	CMUDictPath       string        `yaml:"cmudict_path"        env:"SOURCES_CMUDICT_PATH"`
	WordNetPath       string        `yaml:"wordnet_path"        env:"SOURCES_WORDNET_PATH"`
}

// DatabaseConfig holds PostgreSQL connection settings. It is only used by the
// postgres cache backend.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
