package logger

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
)

// TestNewLogger_NotNil verifies that NewLogger returns a non-nil *Logger.
func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	require.NotNil(t, l)
}

// TestNewLogger_RoleField verifies that every log entry produced by a logger
// created with NewLogger contains the expected "role" field.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role")
	// redirect output to buffer for inspection
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role") // sets zerolog.CallerFieldName as a side-effect
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

// TestNop_DiscardsOutput verifies that the Nop logger is disabled.
func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

// TestFromRequest_RoundTrip verifies that a logger attached to a request
// context is retrievable via FromRequest.
func TestFromRequest_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = zerolog.New(&buf).With().Str("role", "req").Logger()

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(l.WithContext(r.Context()))

	got := FromRequest(r)
	got.Info().Msg("from request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req", entry["role"])
}

// ── Setup ─────────────────────────────────────────────────────────────────────

// TestParseLevel verifies the symbolic level mapping.
func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("ERROR"))
	assert.Equal(t, zerolog.FatalLevel, ParseLevel("CRITICAL"))
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("NOTSET"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("sideways"))
}

// TestSetup_AppliesRootLevel verifies that the root logger level becomes
// the global level.
func TestSetup_AppliesRootLevel(t *testing.T) {
	base := NewLogger("setup-test")

	cfg := config.Logging{
		Loggers: map[string]config.LoggerSettings{
			"root": {Level: "WARNING", Handlers: []string{"console"}},
		},
		Handlers: map[string]config.HandlerSettings{
			"console": {Class: "StreamHandler", Args: "(sys.stderr,)"},
		},
	}

	got := Setup(base, cfg)
	require.NotNil(t, got)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

// TestSetup_ZeroConfigIsNoop verifies that an empty Logging config returns
// the base logger unchanged.
func TestSetup_ZeroConfigIsNoop(t *testing.T) {
	base := NewLogger("noop-test")
	assert.Same(t, base, Setup(base, config.Logging{}))
}

// TestNamed_ClampsLevel verifies that Named produces a child carrying the
// qualname field and the configured level.
func TestNamed_ClampsLevel(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{zerolog.New(&buf)}

	cfg := config.Logging{
		Loggers: map[string]config.LoggerSettings{
			"sqlalchemy": {Level: "WARNING", Qualname: "sqlalchemy.engine"},
		},
	}

	child := base.Named("sqlalchemy", cfg)
	child.Info().Msg("quiet")
	assert.Empty(t, buf.String())

	child.Warn().Msg("loud")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sqlalchemy.engine", entry["logger"])
}

// TestFilenameFromArgs verifies extraction of the log path from handler
// args tuples.
func TestFilenameFromArgs(t *testing.T) {
	assert.Equal(t, "/var/log/stack-keeper.log", filenameFromArgs("('/var/log/stack-keeper.log', 'a')"))
	assert.Equal(t, "server.log", filenameFromArgs("('server.log',)"))
	assert.Empty(t, filenameFromArgs("(sys.stderr,)"))
}
