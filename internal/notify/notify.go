// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify publishes application events to an MQTT broker so external
// consumers (badge awarding, mail gateways, dashboards) can react to stack
// changes without polling the API.
package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second

	// TopicStackSave is published after a stack is created or updated.
	TopicStackSave = "stack.save"

	// TopicStackDelete is published after a stack is deleted.
	TopicStackDelete = "stack.delete"
)

// ErrPublishFailed wraps broker-level publish failures.
var ErrPublishFailed = errors.New("failed to publish event")

// Publisher emits application events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	// Publish sends the payload, serialized as JSON, under the given
	// topic suffix. The configured topic prefix is prepended.
	Publish(topic string, payload any) error

	// Close releases the broker connection, flushing in-flight messages.
	Close()
}

// mqttPublisher is the broker-backed [Publisher] implementation.
type mqttPublisher struct {
	client      mqtt.Client
	topicPrefix string
	logger      *logger.Logger
}

// NewPublisher connects to the broker named by cfg.BrokerURL and returns an
// MQTT-backed publisher. When no broker is configured, a no-op publisher is
// returned so callers never need to branch on the notification setup.
func NewPublisher(cfg config.Notify, log *logger.Logger) (Publisher, error) {
	if cfg.BrokerURL == "" {
		log.Debug().Msg("no broker configured, event publishing is disabled")
		return noopPublisher{}, nil
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connecting to broker %s: timeout after %v", cfg.BrokerURL, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to broker %s: %w", cfg.BrokerURL, err)
	}

	log.Info().Str("broker", cfg.BrokerURL).Str("topic_prefix", cfg.TopicPrefix).Msg("connected to event broker")

	return &mqttPublisher{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
		logger:      log,
	}, nil
}

// Publish implements [Publisher]. Events are sent at QoS 1 and not
// retained.
func (p *mqttPublisher) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshaling payload: %w", ErrPublishFailed, err)
	}

	fullTopic := p.topicPrefix + "." + topic

	token := p.client.Publish(fullTopic, 1, false, body)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	p.logger.Debug().Str("topic", fullTopic).Msg("published event")
	return nil
}

// Close implements [Publisher], allowing up to 250ms for in-flight
// messages to complete.
func (p *mqttPublisher) Close() {
	p.client.Disconnect(250)
}

// noopPublisher is the [Publisher] used when event publishing is disabled.
type noopPublisher struct{}

func (noopPublisher) Publish(string, any) error { return nil }
func (noopPublisher) Close()                    {}
