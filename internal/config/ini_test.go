package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFixture(t *testing.T) *StructuredConfig {
	t.Helper()
	cfg, err := parseINI(filepath.Join("testdata", "development.ini"))
	require.NoError(t, err)
	return cfg
}

// TestParseINI_AppMain verifies the typed mapping of the [app:main] keys.
func TestParseINI_AppMain(t *testing.T) {
	cfg := parseFixture(t)

	assert.Contains(t, cfg.Storage.DatabaseURL, "sqlite:///")
	assert.Contains(t, cfg.Storage.DatabaseURL, "stack-keeper.db")

	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, []string{"default_term", "second", "short_term", "long_term"}, cfg.Cache.Regions)
	assert.Equal(t, time.Hour, cfg.Cache.DefaultExpire)
	assert.Equal(t, time.Second, cfg.Cache.Expire["second"])
	assert.Equal(t, time.Minute, cfg.Cache.Expire["short_term"])
	assert.Equal(t, 24*time.Hour, cfg.Cache.Expire["long_term"])

	assert.Equal(t, "file", cfg.Session.Type)
	assert.Equal(t, "stack-keeper", cfg.Session.Key)
	assert.Equal(t, "changeme-session", cfg.Session.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Session.Timeout)

	assert.Equal(t, "changeme-authtkt", cfg.AuthTkt.Secret)
	assert.False(t, cfg.AuthTkt.Secure)
	assert.Equal(t, 24*time.Hour, cfg.AuthTkt.Timeout)

	assert.Equal(t, []string{"*"}, cfg.CORS.OriginsRO)
	assert.Equal(t, []string{"http://localhost:6543"}, cfg.CORS.OriginsRW)
	assert.Len(t, cfg.CORS.ConnectSrc, 3)

	assert.Len(t, cfg.App.BadgeIDs, 6)
	assert.Equal(t, "binary-star", cfg.App.BadgeIDs[0])

	assert.Equal(t, "registry.fedoraproject.org:5000", cfg.Container.DestinationRegistry)
	assert.Equal(t, []string{"--dest-tls-verify=false"}, cfg.Container.SkopeoExtraCopyFlags)

	assert.Equal(t, "stack-keeper", cfg.Notify.TopicPrefix)
	assert.Empty(t, cfg.Notify.BrokerURL)
}

// TestParseINI_AnnounceLists verifies that per-branch announce list keys
// are collected and resolvable by branch name.
func TestParseINI_AnnounceLists(t *testing.T) {
	cfg := parseFixture(t)

	assert.Equal(t, "package-announce@lists.fedoraproject.org", cfg.App.AnnounceList("fedora"))
	assert.Equal(t, "test@lists.fedoraproject.org", cfg.App.AnnounceList("fedora_test"))
	assert.Equal(t, "epel-package-announce@lists.fedoraproject.org", cfg.App.AnnounceList("fedora_epel"))
	assert.Equal(t, "epel-devel@lists.fedoraproject.org", cfg.App.AnnounceList("fedora_epel_test"))
	assert.Empty(t, cfg.App.AnnounceList("unknown_branch"))
}

// TestParseINI_ServerMain verifies the bind address mapping.
func TestParseINI_ServerMain(t *testing.T) {
	cfg := parseFixture(t)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 6543, cfg.Server.Port)
}

// TestParseINI_Logging verifies the loggers/handlers/formatters mapping.
func TestParseINI_Logging(t *testing.T) {
	cfg := parseFixture(t)

	require.Len(t, cfg.Logging.Loggers, 3)
	root := cfg.Logging.Loggers["root"]
	assert.Equal(t, "INFO", root.Level)
	assert.Equal(t, []string{"console"}, root.Handlers)

	app := cfg.Logging.Loggers["stackkeeper"]
	assert.Equal(t, "DEBUG", app.Level)
	assert.Empty(t, app.Handlers)
	assert.Equal(t, "stackkeeper", app.Qualname)

	require.Len(t, cfg.Logging.Handlers, 1)
	console := cfg.Logging.Handlers["console"]
	assert.Equal(t, "StreamHandler", console.Class)
	assert.Equal(t, "generic", console.Formatter)

	require.Len(t, cfg.Logging.Formatters, 1)
	generic := cfg.Logging.Formatters["generic"]
	assert.Contains(t, generic.Format, "%(asctime)s")
	assert.Equal(t, "%H:%M:%S", generic.DateFormat)
}

// TestParseINI_BadSeconds verifies that a non-numeric seconds value fails
// the parse with a descriptive error.
func TestParseINI_BadSeconds(t *testing.T) {
	path := writeTempINI(t, `[app:main]
session.timeout = soon
`)
	cfg, err := parseINI(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.timeout")
}

// TestParseINI_BadPort verifies that a non-numeric port fails the parse.
func TestParseINI_BadPort(t *testing.T) {
	path := writeTempINI(t, `[server:main]
host = 0.0.0.0
port = all-of-them
`)
	cfg, err := parseINI(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
}

// TestParseINI_MissingSectionsYieldZeroValues verifies that a document
// without [app:main] or [server:main] maps to a zero config instead of
// failing; required values are enforced later by validation.
func TestParseINI_MissingSectionsYieldZeroValues(t *testing.T) {
	path := writeTempINI(t, "[loggers]\nkeys = root\n")
	cfg, err := parseINI(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Storage.DatabaseURL)
	assert.Zero(t, cfg.Server.Port)
}

// ── list splitting ────────────────────────────────────────────────────────────

// TestSplitters verifies the three delimiter conventions of list-valued
// keys.
func TestSplitters(t *testing.T) {
	assert.Equal(t,
		[]string{"default_term", "second", "short_term", "long_term"},
		SplitCommas("default_term, second, short_term, long_term"))

	assert.Equal(t,
		[]string{"a", "b"},
		SplitPipes("a|b|"))

	assert.Equal(t,
		[]string{"http://x", "https://y"},
		SplitSpaces(" http://x\n  https://y "))

	assert.Empty(t, SplitCommas(""))
	assert.Empty(t, SplitPipes(" "))
	assert.Empty(t, SplitSpaces(""))
}
