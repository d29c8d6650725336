package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstLayerWins verifies the merge priority: a field set by an
// earlier layer is not overwritten by a later one.
func TestBuild_FirstLayerWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DatabaseURL: "postgres://first"}},
		&StructuredConfig{Storage: Storage{DatabaseURL: "postgres://second"}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "postgres://first", cfg.Storage.DatabaseURL)
}

// TestBuild_LaterLayerFillsGaps verifies that zero-valued fields are filled
// by later layers.
func TestBuild_LaterLayerFillsGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DatabaseURL: "postgres://db"}, AuthTkt: AuthTkt{Secret: "s3"}},
		&StructuredConfig{Server: Server{Host: "10.0.0.1", Port: 8080}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "postgres://db", cfg.Storage.DatabaseURL)
	assert.Equal(t, "10.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	// merged-in defaults
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, time.Hour, cfg.Cache.DefaultExpire)
}

// TestBuild_ValidationFailure verifies that a merged config without a
// database URL fails validation.
func TestBuild_ValidationFailure(t *testing.T) {
	b := newConfigBuilder()
	b.withDefaults()

	cfg, err := b.build()
	assert.NotNil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("STORAGE_DATABASE_URL", "postgres://env@localhost/db")
	t.Setenv("AUTHTKT_SECRET", "env-secret")
	t.Setenv("AUTHTKT_SECURE", "true")
	t.Setenv("SERVER_PORT", "7000")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "postgres://env@localhost/db", b.configs[0].Storage.DatabaseURL)
	assert.Equal(t, "env-secret", b.configs[0].AuthTkt.Secret)
	assert.True(t, b.configs[0].AuthTkt.Secure)
	assert.Equal(t, 7000, b.configs[0].Server.Port)
}

// TestWithEnv_ListValues verifies separator handling for list-valued env
// overrides.
func TestWithEnv_ListValues(t *testing.T) {
	t.Setenv("APP_BADGE_IDS", "one|two|three")
	t.Setenv("CACHE_REGIONS", "short_term,long_term")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, []string{"one", "two", "three"}, b.configs[0].App.BadgeIDs)
	assert.Equal(t, []string{"short_term", "long_term"}, b.configs[0].Cache.Regions)
}

// ── withINI ───────────────────────────────────────────────────────────────────

// TestWithINI_NoPathIsNoop verifies that the INI layer is skipped when no
// path was supplied.
func TestWithINI_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.withINI()
	assert.Empty(t, b.configs)
	assert.NoError(t, b.err)
}

// TestWithINI_PathFromEarlierLayer verifies that the INI path set by an
// earlier layer is honored and the document is merged in.
func TestWithINI_PathFromEarlierLayer(t *testing.T) {
	path := writeTempINI(t, `[app:main]
sqlalchemy.url = postgres://ini@localhost/db
authtkt.secret = ini-secret

[server:main]
host = 127.0.0.1
port = 6543
`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{INIFilePath: path})
	b.withINI().withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "postgres://ini@localhost/db", cfg.Storage.DatabaseURL)
	assert.Equal(t, "ini-secret", cfg.AuthTkt.Secret)
	assert.Equal(t, 6543, cfg.Server.Port)
}

// TestWithINI_BadPathSetsError verifies that an unreadable INI path becomes
// a builder error surfaced by build.
func TestWithINI_BadPathSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{INIFilePath: "/does/not/exist.ini"})
	b.withINI()

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
}

// ── validation ────────────────────────────────────────────────────────────────

// TestValidate verifies the startup invariants.
func TestValidate(t *testing.T) {
	base := func() *StructuredConfig {
		return &StructuredConfig{
			Storage: Storage{DatabaseURL: "sqlite:///tmp/db"},
			Server:  Server{Host: "127.0.0.1", Port: 6543},
			AuthTkt: AuthTkt{Secret: "s"},
		}
	}

	assert.NoError(t, base().validate())

	noDB := base()
	noDB.Storage.DatabaseURL = ""
	assert.ErrorIs(t, noDB.validate(), ErrInvalidStorageConfigs)

	badScheme := base()
	badScheme.Storage.DatabaseURL = "just-a-path"
	assert.ErrorIs(t, badScheme.validate(), ErrInvalidStorageConfigs)

	badPort := base()
	badPort.Server.Port = 0
	assert.ErrorIs(t, badPort.validate(), ErrInvalidServerConfigs)

	noTktSecret := base()
	noTktSecret.AuthTkt.Secret = ""
	assert.ErrorIs(t, noTktSecret.validate(), ErrInvalidAuthTktConfigs)

	sessionNoSecret := base()
	sessionNoSecret.Session = Session{Type: "file", DataDir: "d"}
	assert.ErrorIs(t, sessionNoSecret.validate(), ErrInvalidSessionConfigs)

	sessionOK := base()
	sessionOK.Session = Session{Type: "file", DataDir: "d", Secret: "s"}
	assert.NoError(t, sessionOK.validate())
}
