// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package container copies container images between registries by shelling
// out to skopeo, configured from the container.* and skopeo.* settings of
// the application configuration.
package container

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
)

// ErrNoDestinationRegistry is returned when a copy is requested but no
// destination registry is configured.
var ErrNoDestinationRegistry = errors.New("no destination registry configured")

// runner executes the external copy command. Injectable for tests.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Copier copies container images into the configured destination registry.
type Copier struct {
	destinationRegistry string
	extraCopyFlags      []string
	run                 runner
	logger              *logger.Logger
}

// NewCopier builds a [Copier] from cfg. Construction always succeeds;
// a missing destination registry is reported per-copy so the application
// can start without container support configured.
func NewCopier(cfg config.Container, log *logger.Logger) *Copier {
	return &Copier{
		destinationRegistry: cfg.DestinationRegistry,
		extraCopyFlags:      cfg.SkopeoExtraCopyFlags,
		run:                 execRunner,
		logger:              log,
	}
}

// Copy replicates the source image reference (e.g.
// "registry.example.com/app:v1") into the destination registry under the
// same repository path and tag, passing the configured extra flags to
// skopeo.
func (c *Copier) Copy(ctx context.Context, sourceImage string) error {
	if c.destinationRegistry == "" {
		return ErrNoDestinationRegistry
	}

	destination := c.destinationRegistry + "/" + imagePath(sourceImage)

	args := make([]string, 0, len(c.extraCopyFlags)+3)
	args = append(args, "copy")
	args = append(args, c.extraCopyFlags...)
	args = append(args, "docker://"+sourceImage, "docker://"+destination)

	c.logger.Info().
		Str("func", "*Copier.Copy").
		Str("source", sourceImage).
		Str("destination", destination).
		Msg("copying container image")

	output, err := c.run(ctx, "skopeo", args...)
	if err != nil {
		c.logger.Err(err).
			Str("func", "*Copier.Copy").
			Str("source", sourceImage).
			Str("output", string(output)).
			Msg("error copying container image")
		return fmt.Errorf("error copying image %s: %w", sourceImage, err)
	}

	return nil
}

// imagePath strips the registry host from an image reference, keeping the
// repository path and tag. References without a registry host are returned
// unchanged.
func imagePath(image string) string {
	slash := strings.Index(image, "/")
	if slash < 0 {
		return image
	}

	// The first segment is a registry host only if it looks like one.
	host := image[:slash]
	if strings.ContainsAny(host, ".:") || host == "localhost" {
		return image[slash+1:]
	}

	return image
}
