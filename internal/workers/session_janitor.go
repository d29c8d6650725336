// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
)

// sessionFilePrefix matches the files written by the filesystem session
// store.
const sessionFilePrefix = "session_"

// SessionJanitor removes expired session files from the session data
// directory. The filesystem session store expires the browser cookie on its
// own but never deletes the backing files, so stale sessions accumulate on
// disk until something sweeps them.
type SessionJanitor struct {
	dataDir  string
	lifetime time.Duration
	interval time.Duration

	logger *logger.Logger
}

// NewSessionJanitor builds a janitor for the configured session backend.
// Returns nil when sessions are disabled or have no expiration, in which
// case there is nothing to clean.
func NewSessionJanitor(cfg config.Session, log *logger.Logger) *SessionJanitor {
	if cfg.Type != "file" || cfg.Timeout <= 0 {
		return nil
	}

	return &SessionJanitor{
		dataDir:  cfg.DataDir,
		lifetime: cfg.Timeout,
		interval: cfg.Timeout / 2,
		logger:   log,
	}
}

// Run implements [Worker]. It sweeps the data directory once immediately
// and then on every interval tick, in a background goroutine.
func (j *SessionJanitor) Run() {
	go func() {
		j.sweep()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for range ticker.C {
			j.sweep()
		}
	}()
}

func (j *SessionJanitor) sweep() {
	log := j.logger.With().Str("func", "SessionJanitor.sweep").Logger()

	entries, err := os.ReadDir(j.dataDir)
	if err != nil {
		log.Err(err).Str("data_dir", j.dataDir).Msg("error reading session data directory")
		return
	}

	deadline := time.Now().Add(-j.lifetime)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), sessionFilePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(deadline) {
			continue
		}

		if err := os.Remove(filepath.Join(j.dataDir, entry.Name())); err != nil {
			log.Err(err).Str("file", entry.Name()).Msg("error removing expired session file")
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("pruned expired session files")
	}
}
