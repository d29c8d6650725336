// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-stack-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, the INI configuration document, and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as badge identifiers and
	// per-release announce list addresses.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the bind address and timeout settings for the HTTP
	// server, mapped from the [server:main] section.
	Server Server `envPrefix:"SERVER_"`

	// Session holds server-side session settings (session.* keys).
	Session Session `envPrefix:"SESSION_"`

	// AuthTkt holds auth-ticket settings (authtkt.* keys): the signing
	// secret, cookie security flag, and ticket lifetime.
	AuthTkt AuthTkt `envPrefix:"AUTHTKT_"`

	// Cache holds cache backend settings and per-region expirations
	// (cache.* keys).
	Cache Cache `envPrefix:"CACHE_"`

	// CORS holds the allowed cross-origin source lists.
	CORS CORS `envPrefix:"CORS_"`

	// Notify holds the event publisher settings (notifications.* keys).
	Notify Notify `envPrefix:"NOTIFY_"`

	// Container holds container-registry copy settings (container.* and
	// skopeo.* keys).
	Container Container `envPrefix:"CONTAINER_"`

	// Logging holds the parsed loggers/handlers/formatters sections.
	// It is populated from the INI document only.
	Logging Logging

	// INIFilePath is the optional path to the INI configuration document.
	// When non-empty, the document is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	INIFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// BadgeIDs is the list of badge identifiers awarded by the
	// application, parsed from the pipe-delimited badge_ids key.
	// Env: APP_BADGE_IDS (pipe-separated)
	BadgeIDs []string `env:"BADGE_IDS" envSeparator:"|"`

	// AnnounceLists maps a release branch (e.g. "fedora", "fedora_epel")
	// to its announce mailing-list address, collected from the
	// <branch>_announce_list keys of [app:main].
	AnnounceLists map[string]string
}

// AnnounceList returns the announce mailing-list address configured for
// the given release branch, or the empty string when none is configured.
func (a App) AnnounceList(branch string) string {
	return a.AnnounceLists[branch]
}

// Storage holds connection settings for the relational database backend.
type Storage struct {
	// DatabaseURL is the database connection string, mapped from the
	// sqlalchemy.url key. Supported schemes are postgres:// (pgx driver)
	// and sqlite:// (file-backed development database; the path may use
	// %(here)s interpolation).
	// Env: STORAGE_DATABASE_URL
	DatabaseURL string `env:"DATABASE_URL"`
}

// Server holds network and timeout settings for the inbound HTTP server,
// mapped from the [server:main] section.
type Server struct {
	// Host is the interface the HTTP server binds to.
	// Env: SERVER_HOST
	Host string `env:"HOST"`

	// Port is the TCP port the HTTP server listens on.
	// Env: SERVER_PORT
	Port int `env:"PORT"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Session holds server-side session settings mapped from the session.*
// keys of [app:main].
type Session struct {
	// Type selects the session backend. Only "file" is supported; an
	// empty value disables sessions entirely.
	Type string `env:"TYPE"`

	// DataDir is the directory where session files are stored.
	DataDir string `env:"DATA_DIR"`

	// LockDir is the directory used for session file locks.
	LockDir string `env:"LOCK_DIR"`

	// Key is the name of the session cookie.
	Key string `env:"KEY"`

	// Secret signs session cookies. Required when Type is non-empty.
	Secret string `env:"SECRET"`

	// Timeout is the session lifetime. The INI key carries whole seconds.
	Timeout time.Duration `env:"TIMEOUT"`
}

// AuthTkt holds auth-ticket settings mapped from the authtkt.* keys.
type AuthTkt struct {
	// Secret signs issued auth tickets. Must be kept confidential.
	Secret string `env:"SECRET"`

	// Secure marks the ticket cookie as HTTPS-only.
	Secure bool `env:"SECURE"`

	// Timeout is the ticket lifetime. The INI key carries whole seconds.
	Timeout time.Duration `env:"TIMEOUT"`
}

// Cache holds cache backend settings mapped from the cache.* keys.
type Cache struct {
	// Type selects the cache backend. Only "memory" is supported; an
	// empty value disables caching.
	Type string `env:"TYPE"`

	// DataDir and LockDir are accepted for compatibility with file-backed
	// cache configurations; the memory backend ignores them.
	DataDir string `env:"DATA_DIR"`
	LockDir string `env:"LOCK_DIR"`

	// Regions is the ordered list of named cache regions, parsed from the
	// comma-delimited cache.regions key.
	Regions []string `env:"REGIONS" envSeparator:","`

	// DefaultExpire is the expiration applied to regions without an
	// explicit cache.expire.<region> setting.
	DefaultExpire time.Duration `env:"DEFAULT_EXPIRE"`

	// Expire maps a region name to its expiration, collected from the
	// cache.expire.<region> keys. INI values carry whole seconds.
	Expire map[string]time.Duration
}

// RegionExpire returns the expiration configured for the named region,
// falling back to DefaultExpire.
func (c Cache) RegionExpire(region string) time.Duration {
	if expire, ok := c.Expire[region]; ok {
		return expire
	}
	return c.DefaultExpire
}

// CORS holds the allowed cross-origin source lists. Each list is
// whitespace-delimited in the document; "*" allows any origin.
type CORS struct {
	// OriginsRO lists origins allowed on read-only endpoints.
	OriginsRO []string `env:"ORIGINS_RO" envSeparator:" "`

	// OriginsRW lists origins allowed on mutating endpoints.
	OriginsRW []string `env:"ORIGINS_RW" envSeparator:" "`

	// ConnectSrc lists sources advertised in the connect-src directive of
	// the Content-Security-Policy header.
	ConnectSrc []string `env:"CONNECT_SRC" envSeparator:" "`
}

// Notify holds settings for the event publisher.
type Notify struct {
	// BrokerURL is the MQTT broker address (e.g. "tcp://localhost:1883").
	// An empty value disables event publishing.
	BrokerURL string `env:"BROKER_URL"`

	// TopicPrefix is prepended to every published topic.
	TopicPrefix string `env:"TOPIC_PREFIX"`

	// ClientID identifies this process to the broker.
	ClientID string `env:"CLIENT_ID"`
}

// Container holds container-registry copy settings.
type Container struct {
	// DestinationRegistry is the host:port of the registry images are
	// copied to (container.destination_registry).
	DestinationRegistry string `env:"DESTINATION_REGISTRY"`

	// SkopeoExtraCopyFlags are extra flags passed to the skopeo copy
	// invocation, parsed from the whitespace-delimited
	// skopeo.extra_copy_flags key.
	SkopeoExtraCopyFlags []string `env:"SKOPEO_EXTRA_COPY_FLAGS" envSeparator:" "`
}

// Logging mirrors the standard loggers/handlers/formatters configuration
// sections of the document. The section layout follows the Python logging
// config format the document inherits: a [loggers] index section plus one
// [logger_<name>] section per logger, and likewise for handlers and
// formatters.
type Logging struct {
	// Loggers maps a logger name (from [loggers] keys) to its settings.
	// The "root" logger controls the global level.
	Loggers map[string]LoggerSettings

	// Handlers maps a handler name to its settings.
	Handlers map[string]HandlerSettings

	// Formatters maps a formatter name to its settings.
	Formatters map[string]FormatterSettings
}

// LoggerSettings holds one [logger_<name>] section.
type LoggerSettings struct {
	// Level is the symbolic level name (DEBUG, INFO, WARNING, ERROR,
	// CRITICAL, NOTSET).
	Level string

	// Handlers lists the handler names wired to this logger.
	Handlers []string

	// Qualname is the dotted channel name the logger applies to.
	Qualname string
}

// HandlerSettings holds one [handler_<name>] section.
type HandlerSettings struct {
	// Class selects the handler implementation. StreamHandler writes to
	// the process output; FileHandler and RotatingFileHandler write to
	// the file named by Args.
	Class string

	// Level is the minimum level this handler emits.
	Level string

	// Args carries the handler constructor arguments verbatim, e.g.
	// "(sys.stderr,)" or "('/var/log/stack-keeper.log',)".
	Args string

	// Formatter names the formatter applied to this handler.
	Formatter string
}

// FormatterSettings holds one [formatter_<name>] section.
type FormatterSettings struct {
	// Format is the record format string. Recorded for compatibility;
	// structured output does not re-apply it.
	Format string

	// DateFormat is the strftime-style timestamp format.
	DateFormat string
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. INI document (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withINI().
		withDefaults().
		build()
}
