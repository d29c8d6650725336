// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// The primary configuration source is a Paste-Deploy-style INI document
// (see [Document]): named sections holding ordered key = value pairs, with
// %(name)s interpolation resolved against the section, the [DEFAULT]
// section, and the built-in "here" variable (the directory containing the
// file). The document is read once at process start and never mutated.
//
// On top of the raw document, configuration is assembled into a typed
// [StructuredConfig] from multiple sources in the following priority order
// (earlier sources override later ones):
//  1. Environment variables
//  2. Command-line flags
//  3. INI config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for server/runtime
// configuration and [GetClientConfig] for client-specific configuration.
package config
