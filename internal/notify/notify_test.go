// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"testing"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher_NoBrokerIsNoop(t *testing.T) {
	pub, err := NewPublisher(config.Notify{}, logger.Nop())
	require.NoError(t, err)

	_, ok := pub.(noopPublisher)
	assert.True(t, ok, "expected a noop publisher when no broker is configured")
}

func TestNoopPublisher_PublishNeverFails(t *testing.T) {
	pub, err := NewPublisher(config.Notify{TopicPrefix: "stack-keeper"}, logger.Nop())
	require.NoError(t, err)
	defer pub.Close()

	assert.NoError(t, pub.Publish(TopicStackSave, map[string]string{"stack": "gnome"}))
	assert.NoError(t, pub.Publish(TopicStackDelete, nil))
}
