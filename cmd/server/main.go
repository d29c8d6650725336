// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-stack-keeper/internal/cache"
	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/handler"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/notify"
	"github.com/MKhiriev/go-stack-keeper/internal/server"
	"github.com/MKhiriev/go-stack-keeper/internal/service"
	"github.com/MKhiriev/go-stack-keeper/internal/session"
	"github.com/MKhiriev/go-stack-keeper/internal/store"
	"github.com/MKhiriev/go-stack-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("stack-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.Setup(log, cfg.Logging)

	log.Debug().Any("config", cfg).Msg("received configs")
	warnUnrecognizedKeys(cfg.INIFilePath, log)

	ctx := context.Background()

	db, err := store.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	storages := store.NewStorages(db, log)

	regions, err := cache.NewRegions(cfg.Cache, log)
	if err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		log.Fatal().Err(err).Msg("error creating cache regions")
	}

	sessions, err := session.NewStore(cfg.Session, log)
	if err != nil && !errors.Is(err, session.ErrSessionsDisabled) {
		log.Fatal().Err(err).Msg("error creating session store")
	}

	publisher, err := notify.NewPublisher(cfg.Notify, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to message broker")
	}
	defer publisher.Close()

	services := service.NewServices(storages, cfg, regions, publisher, log)
	handlers := handler.NewHandlers(services, sessions, cfg.CORS, log)

	background := make([]workers.Worker, 0, 1)
	if janitor := workers.NewSessionJanitor(cfg.Session, log); janitor != nil {
		background = append(background, janitor)
	}
	workers.NewWorkers(background...).Run()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// warnUnrecognizedKeys re-reads the INI document and reports keys that no
// consumer recognizes. Unknown keys are not fatal, matching how generic INI
// consumers treat the format.
func warnUnrecognizedKeys(iniFilePath string, log *logger.Logger) {
	if iniFilePath == "" {
		return
	}

	doc, err := config.LoadDocument(iniFilePath)
	if err != nil {
		return
	}

	for section, keys := range config.UnrecognizedKeys(doc) {
		log.Warn().Str("section", section).Strs("keys", keys).Msg("unrecognized configuration keys")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
