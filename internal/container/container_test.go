// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package container

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopier_Copy_BuildsSkopeoInvocation(t *testing.T) {
	cfg := config.Container{
		DestinationRegistry:  "registry.fedoraproject.org:5000",
		SkopeoExtraCopyFlags: []string{"--dest-tls-verify=false"},
	}

	copier := NewCopier(cfg, logger.Nop())

	var gotName string
	var gotArgs []string
	copier.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return nil, nil
	}

	err := copier.Copy(context.Background(), "quay.io/stacks/gnome:latest")
	require.NoError(t, err)

	assert.Equal(t, "skopeo", gotName)
	assert.Equal(t, []string{
		"copy",
		"--dest-tls-verify=false",
		"docker://quay.io/stacks/gnome:latest",
		"docker://registry.fedoraproject.org:5000/stacks/gnome:latest",
	}, gotArgs)
}

func TestCopier_Copy_NoDestinationRegistry(t *testing.T) {
	copier := NewCopier(config.Container{}, logger.Nop())

	err := copier.Copy(context.Background(), "quay.io/stacks/gnome:latest")
	assert.ErrorIs(t, err, ErrNoDestinationRegistry)
}

func TestCopier_Copy_CommandFailure(t *testing.T) {
	cfg := config.Container{DestinationRegistry: "registry.example.com"}
	copier := NewCopier(cfg, logger.Nop())

	copier.run = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte("manifest unknown"), errors.New("exit status 1")
	}

	err := copier.Copy(context.Background(), "quay.io/stacks/gnome:latest")
	assert.Error(t, err)
}

func TestImagePath(t *testing.T) {
	tests := []struct {
		image string
		want  string
	}{
		{image: "quay.io/stacks/gnome:latest", want: "stacks/gnome:latest"},
		{image: "localhost/gnome:latest", want: "gnome:latest"},
		{image: "registry.example.com:5000/a/b:v1", want: "a/b:v1"},
		{image: "gnome:latest", want: "gnome:latest"},
		{image: "stacks/gnome:latest", want: "stacks/gnome:latest"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, imagePath(tt.image), "image %q", tt.image)
	}
}
