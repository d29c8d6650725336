// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// keySpec describes one recognized document key: its built-in default (raw
// string form, empty when the key has none) and whether the key must be
// present in the document when no default exists.
type keySpec struct {
	Default  string
	Required bool
}

// recognizedKeys is the registry of every key the application reads from
// the document, per section. Open-ended key families (cache.expire.<region>,
// <branch>_announce_list) are matched by pattern in isRecognizedAppKey and
// are never required.
var recognizedKeys = map[string]map[string]keySpec{
	AppMainSection: {
		"use":                            {Default: "egg:main"},
		"sqlalchemy.url":                 {Required: true},
		"cache.type":                     {Default: "memory"},
		"cache.data_dir":                 {Default: "data/cache/data"},
		"cache.lock_dir":                 {Default: "data/cache/lock"},
		"cache.regions":                  {Default: "default_term, second, short_term, long_term"},
		"cache.expire.default":           {Default: "3600"},
		"session.type":                   {Default: ""},
		"session.data_dir":               {Default: "data/sessions/data"},
		"session.lock_dir":               {Default: "data/sessions/lock"},
		"session.key":                    {Default: "stack-keeper"},
		"session.secret":                 {Default: ""},
		"session.timeout":                {Default: "86400"},
		"authtkt.secret":                 {Required: true},
		"authtkt.secure":                 {Default: "false"},
		"authtkt.timeout":                {Default: "86400"},
		"cors_origins_ro":                {Default: "*"},
		"cors_origins_rw":                {Default: ""},
		"cors_connect_src":               {Default: ""},
		"badge_ids":                      {Default: ""},
		"container.destination_registry": {Default: ""},
		"skopeo.extra_copy_flags":        {Default: ""},
		"notifications.broker_url":       {Default: ""},
		"notifications.topic_prefix":     {Default: "stack-keeper"},
		"notifications.client_id":        {Default: ""},
	},
	ServerSection: {
		"host": {Default: "0.0.0.0"},
		"port": {Default: "6543"},
	},
}

// defaultConfig returns the typed form of the registry defaults. It is the
// lowest-priority layer of the merge chain.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Server: Server{
			Host:           "0.0.0.0",
			Port:           6543,
			RequestTimeout: 30 * time.Second,
		},
		Session: Session{
			DataDir: "data/sessions/data",
			LockDir: "data/sessions/lock",
			Key:     "stack-keeper",
			Timeout: 86400 * time.Second,
		},
		AuthTkt: AuthTkt{
			Timeout: 86400 * time.Second,
		},
		Cache: Cache{
			Type:          "memory",
			DataDir:       "data/cache/data",
			LockDir:       "data/cache/lock",
			Regions:       []string{"default_term", "second", "short_term", "long_term"},
			DefaultExpire: 3600 * time.Second,
		},
		CORS: CORS{
			OriginsRO: []string{"*"},
		},
		Notify: Notify{
			TopicPrefix: "stack-keeper",
		},
	}
}

// DefaultFor returns the built-in default for section/key and whether the
// key is recognized at all.
func DefaultFor(section, key string) (string, bool) {
	keys, ok := recognizedKeys[section]
	if !ok {
		return "", false
	}
	spec, ok := keys[key]
	if !ok {
		return "", isRecognizedAppKey(section, key)
	}
	return spec.Default, true
}

// CheckCompleteness verifies that every recognized key either carries a
// built-in default or is explicitly set in the document. It returns an
// error naming all missing keys.
func CheckCompleteness(doc *Document) error {
	var missing []string

	for section, keys := range recognizedKeys {
		for key, spec := range keys {
			if spec.Default != "" || !spec.Required {
				continue
			}
			if _, ok := doc.Get(section, key); !ok {
				missing = append(missing, fmt.Sprintf("[%s] %s", section, key))
			}
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrIncompleteDocument, strings.Join(missing, ", "))
	}

	return nil
}

// UnrecognizedKeys returns the keys present in the document that no
// consumer reads, grouped by section. Logging sections are recognized
// structurally and never reported. The caller decides how loudly to
// complain; unknown keys are not an error (generic INI consumers ignore
// them).
func UnrecognizedKeys(doc *Document) map[string][]string {
	unknown := make(map[string][]string)

	for _, section := range doc.SectionNames() {
		if isLoggingSection(section) {
			continue
		}

		registry, knownSection := recognizedKeys[section]
		for _, key := range doc.Keys(section) {
			if knownSection {
				if _, ok := registry[key]; ok {
					continue
				}
			}
			if isRecognizedAppKey(section, key) {
				continue
			}
			unknown[section] = append(unknown[section], key)
		}
	}

	return unknown
}

// isRecognizedAppKey matches the open-ended key families of [app:main].
func isRecognizedAppKey(section, key string) bool {
	if section != AppMainSection {
		return false
	}
	return strings.HasPrefix(key, cacheExpirePrefix) ||
		strings.HasSuffix(key, announceListSuffix)
}

func isLoggingSection(section string) bool {
	switch section {
	case LoggersSection, HandlersSection, FormattersSection:
		return true
	}
	return strings.HasPrefix(section, loggerSectionPrefix) ||
		strings.HasPrefix(section, handlerSectionPrefix) ||
		strings.HasPrefix(section, formatterSectionPrefix)
}
