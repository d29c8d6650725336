// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Section names recognized by the typed configuration mapping.
const (
	AppMainSection    = "app:main"
	ServerSection     = "server:main"
	LoggersSection    = "loggers"
	HandlersSection   = "handlers"
	FormattersSection = "formatters"

	loggerSectionPrefix    = "logger_"
	handlerSectionPrefix   = "handler_"
	formatterSectionPrefix = "formatter_"
)

const (
	announceListSuffix = "_announce_list"
	cacheExpirePrefix  = "cache.expire."
)

// parseINI loads the document at iniFilePath and maps its recognized keys
// into a StructuredConfig. Unrecognized keys are left in the document and
// can be inspected with [UnrecognizedKeys]; they never fail the parse.
func parseINI(iniFilePath string) (*StructuredConfig, error) {
	doc, err := LoadDocument(iniFilePath)
	if err != nil {
		return nil, err
	}

	return mapDocument(doc)
}

// mapDocument converts a parsed document into a StructuredConfig.
func mapDocument(doc *Document) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	if err := mapAppMain(doc, cfg); err != nil {
		return nil, err
	}
	if err := mapServerMain(doc, cfg); err != nil {
		return nil, err
	}
	mapLogging(doc, &cfg.Logging)

	return cfg, nil
}

func mapAppMain(doc *Document, cfg *StructuredConfig) error {
	section := AppMainSection
	if !doc.HasSection(section) {
		return nil
	}

	cfg.Storage.DatabaseURL = doc.GetDefault(section, "sqlalchemy.url", "")

	cfg.Cache.Type = doc.GetDefault(section, "cache.type", "")
	cfg.Cache.DataDir = doc.GetDefault(section, "cache.data_dir", "")
	cfg.Cache.LockDir = doc.GetDefault(section, "cache.lock_dir", "")
	if v, ok := doc.Get(section, "cache.regions"); ok {
		cfg.Cache.Regions = SplitCommas(v)
	}

	cfg.Session.Type = doc.GetDefault(section, "session.type", "")
	cfg.Session.DataDir = doc.GetDefault(section, "session.data_dir", "")
	cfg.Session.LockDir = doc.GetDefault(section, "session.lock_dir", "")
	cfg.Session.Key = doc.GetDefault(section, "session.key", "")
	cfg.Session.Secret = doc.GetDefault(section, "session.secret", "")

	cfg.AuthTkt.Secret = doc.GetDefault(section, "authtkt.secret", "")

	if v, ok := doc.Get(section, "cors_origins_ro"); ok {
		cfg.CORS.OriginsRO = SplitSpaces(v)
	}
	if v, ok := doc.Get(section, "cors_origins_rw"); ok {
		cfg.CORS.OriginsRW = SplitSpaces(v)
	}
	if v, ok := doc.Get(section, "cors_connect_src"); ok {
		cfg.CORS.ConnectSrc = SplitSpaces(v)
	}

	if v, ok := doc.Get(section, "badge_ids"); ok {
		cfg.App.BadgeIDs = SplitPipes(v)
	}

	cfg.Notify.BrokerURL = doc.GetDefault(section, "notifications.broker_url", "")
	cfg.Notify.TopicPrefix = doc.GetDefault(section, "notifications.topic_prefix", "")
	cfg.Notify.ClientID = doc.GetDefault(section, "notifications.client_id", "")

	cfg.Container.DestinationRegistry = doc.GetDefault(section, "container.destination_registry", "")
	if v, ok := doc.Get(section, "skopeo.extra_copy_flags"); ok {
		cfg.Container.SkopeoExtraCopyFlags = SplitSpaces(v)
	}

	// Duration-valued keys carry whole seconds in the document.
	for _, d := range []struct {
		key  string
		dest *time.Duration
	}{
		{"session.timeout", &cfg.Session.Timeout},
		{"authtkt.timeout", &cfg.AuthTkt.Timeout},
		{"cache.expire.default", &cfg.Cache.DefaultExpire},
	} {
		if v, ok := doc.Get(section, d.key); ok {
			seconds, err := parseSeconds(section, d.key, v)
			if err != nil {
				return err
			}
			*d.dest = seconds
		}
	}

	if v, ok := doc.Get(section, "authtkt.secure"); ok {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("error parsing [%s] authtkt.secure %q: %w", section, v, err)
		}
		cfg.AuthTkt.Secure = secure
	}

	// Per-region cache expirations and per-branch announce lists are
	// open-ended key families discovered by scanning the section.
	for _, key := range doc.Keys(section) {
		switch {
		case strings.HasPrefix(key, cacheExpirePrefix) && key != "cache.expire.default":
			region := strings.TrimPrefix(key, cacheExpirePrefix)
			v, _ := doc.Get(section, key)
			seconds, err := parseSeconds(section, key, v)
			if err != nil {
				return err
			}
			if cfg.Cache.Expire == nil {
				cfg.Cache.Expire = make(map[string]time.Duration)
			}
			cfg.Cache.Expire[region] = seconds

		case strings.HasSuffix(key, announceListSuffix):
			branch := strings.TrimSuffix(key, announceListSuffix)
			if cfg.App.AnnounceLists == nil {
				cfg.App.AnnounceLists = make(map[string]string)
			}
			cfg.App.AnnounceLists[branch], _ = doc.Get(section, key)
		}
	}

	return nil
}

func mapServerMain(doc *Document, cfg *StructuredConfig) error {
	section := ServerSection
	if !doc.HasSection(section) {
		return nil
	}

	cfg.Server.Host = doc.GetDefault(section, "host", "")

	if v, ok := doc.Get(section, "port"); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("error parsing [%s] port %q: %w", section, v, err)
		}
		cfg.Server.Port = port
	}

	return nil
}

// mapLogging reads the loggers/handlers/formatters index sections and their
// per-name sections. Names listed in an index without a matching section
// are skipped; sections without an index entry are ignored, mirroring how
// logging-config consumers treat the format.
func mapLogging(doc *Document, logging *Logging) {
	for _, name := range indexedNames(doc, LoggersSection) {
		section := loggerSectionPrefix + name
		if !doc.HasSection(section) {
			continue
		}
		if logging.Loggers == nil {
			logging.Loggers = make(map[string]LoggerSettings)
		}
		logging.Loggers[name] = LoggerSettings{
			Level:    doc.GetDefault(section, "level", ""),
			Handlers: SplitCommas(doc.GetDefault(section, "handlers", "")),
			Qualname: doc.GetDefault(section, "qualname", ""),
		}
	}

	for _, name := range indexedNames(doc, HandlersSection) {
		section := handlerSectionPrefix + name
		if !doc.HasSection(section) {
			continue
		}
		if logging.Handlers == nil {
			logging.Handlers = make(map[string]HandlerSettings)
		}
		logging.Handlers[name] = HandlerSettings{
			Class:     doc.GetDefault(section, "class", ""),
			Level:     doc.GetDefault(section, "level", ""),
			Args:      doc.GetDefault(section, "args", ""),
			Formatter: doc.GetDefault(section, "formatter", ""),
		}
	}

	for _, name := range indexedNames(doc, FormattersSection) {
		section := formatterSectionPrefix + name
		if !doc.HasSection(section) {
			continue
		}
		if logging.Formatters == nil {
			logging.Formatters = make(map[string]FormatterSettings)
		}
		logging.Formatters[name] = FormatterSettings{
			Format:     doc.GetDefault(section, "format", ""),
			DateFormat: doc.GetDefault(section, "datefmt", ""),
		}
	}
}

func indexedNames(doc *Document, indexSection string) []string {
	v, ok := doc.Get(indexSection, "keys")
	if !ok {
		return nil
	}
	return SplitCommas(v)
}

func parseSeconds(section, key, value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("error parsing [%s] %s %q as seconds: %w", section, key, value, err)
	}
	return time.Duration(seconds) * time.Second, nil
}
