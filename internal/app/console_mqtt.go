// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/n2kconvert/internal/config"
)

// RunConsole prints every sentence published on TOPIC_NMEA0183 until ctx
// is done.
func RunConsole(ctx context.Context, cfg *config.Config) error {
	if cfg.TopicNMEA0183 == "" {
		return errors.New("console: TOPIC_NMEA0183 is not set")
	}

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientID+"-console")
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	defer client.Disconnect(250)

	token := client.Subscribe(cfg.TopicNMEA0183, 0, func(_ mqtt.Client, msg mqtt.Message) {
		fmt.Println(formatConsoleLine(string(msg.Payload())))
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicNMEA0183)

	<-ctx.Done()
	log.Println("console: shutting down")
	return nil
}

// formatConsoleLine tags a sentence with its type, or with "bad" and the
// parse error.
func formatConsoleLine(line string) string {
	line = strings.TrimSpace(line)
	s, err := nmea.Parse(line)
	if err != nil {
		return fmt.Sprintf("[bad] %s  (%v)", line, err)
	}
	return fmt.Sprintf("[%-3s] %s", s.DataType(), line)
}
