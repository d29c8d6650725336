package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [ClientConfig.validate] when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty or unsupported database URL).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid server bind settings
	// (for example, a port outside the valid range).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidSessionConfigs indicates that sessions are enabled but
	// lack a signing secret or storage directory.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidAuthTktConfigs indicates missing auth ticket settings
	// (for example, an empty signing secret).
	ErrInvalidAuthTktConfigs = errors.New("invalid authtkt configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)

// ErrIncompleteDocument is returned by [CheckCompleteness] when a required
// key is neither defaulted nor present in the document.
var ErrIncompleteDocument = errors.New("incomplete configuration document")

// Duplicate-definition errors returned by the document loader. Section
// names must be unique within a document and keys unique within their
// section; a second definition is rejected instead of silently merged.
var (
	ErrDuplicateSection = errors.New("duplicate section in configuration document")
	ErrDuplicateKey     = errors.New("duplicate key in configuration document")
)
