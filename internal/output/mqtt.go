// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package output

import (
	"bytes"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 500 * time.Millisecond

// publisher is the part of mqtt.Client used here.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTDest publishes each sentence, without CRLF, to one topic.
type MQTTDest struct {
	client publisher
	topic  string
}

// NewMQTTDest publishes on an already connected client.
func NewMQTTDest(client mqtt.Client, topic string) *MQTTDest {
	return &MQTTDest{client: client, topic: topic}
}

func (m *MQTTDest) Send(line []byte) error {
	payload := bytes.TrimRight(line, "\r\n")
	token := m.client.Publish(m.topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt publish to %s: timeout", m.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", m.topic, err)
	}
	return nil
}

// Close leaves the client connected; its owner disconnects it.
func (m *MQTTDest) Close() error { return nil }
