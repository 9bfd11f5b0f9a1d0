// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"periph.io/x/conn/v3/physic"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

// DefaultPath is where the daemon looks for its config file.
const DefaultPath = "/etc/n2kconvert.conf"

// Primary sources.
const (
	SourceMQTT  = "mqtt"
	SourceStdin = "stdin"
	SourceSim   = "sim"
)

// Config holds all application configuration values. Every field can be
// overridden by an N2K_-prefixed environment variable.
type Config struct {
	// Primary (NMEA 2000) input: "mqtt", "stdin", "sim" or a path to a
	// JSON-lines file or FIFO.
	PrimarySource string `env:"N2K_PRIMARY_SOURCE"`

	// MQTT
	MQTTBroker    string `env:"N2K_MQTT_BROKER"`
	MQTTClientID  string `env:"N2K_MQTT_CLIENT_ID"`
	TopicN2K      string `env:"N2K_TOPIC_N2K"`
	TopicNMEA0183 string `env:"N2K_TOPIC_NMEA0183"` // empty disables publishing

	// Auxiliary NMEA 0183 heading sensor
	AuxSerialPort string `env:"N2K_AUX_SERIAL_PORT"` // empty disables the aux reader
	AuxBaudRate   int    `env:"N2K_AUX_BAUD_RATE"`

	// Outputs
	Output  string `env:"N2K_OUTPUT"`   // file, FIFO or /dev/stdout
	UDPDest string `env:"N2K_UDP_DEST"` // host:port, empty disables

	// Installed transducer depth offset in feet.
	DepthOffsetFeet float64 `env:"N2K_DEPTH_OFFSET_FT"`

	// Timing
	TickInterval int `env:"N2K_TICK_INTERVAL"` // milliseconds

	// Web Server (0 disables)
	WebServerPort int `env:"N2K_WEB_SERVER_PORT"`

	Debug bool `env:"N2K_DEBUG"`
}

// Default returns the configuration used when no file or environment
// value overrides it.
func Default() *Config {
	return &Config{
		PrimarySource: SourceMQTT,
		MQTTBroker:    "tcp://localhost:1883",
		MQTTClientID:  "n2kconvert",
		TopicN2K:      "n2k/decoded",
		AuxBaudRate:   4800,
		Output:        "/dev/stdout",
		TickInterval:  int(nav.DefaultTickPeriod / time.Millisecond),
	}
}

var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load builds a Config from defaults, the file at configPath and the
// environment, in that order. An empty configPath skips the file.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath != "" {
		if err := cfg.readFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(configPath string) error {
	file, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}
		if err := c.setValue(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	case "PRIMARY_SOURCE":
		c.PrimarySource = value

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID":
		c.MQTTClientID = value
	case "TOPIC_N2K":
		c.TopicN2K = value
	case "TOPIC_NMEA0183":
		c.TopicNMEA0183 = value

	// Aux sensor
	case "AUX_SERIAL_PORT":
		c.AuxSerialPort = value
	case "AUX_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid AUX_BAUD_RATE %q: %w", value, err)
		}
		c.AuxBaudRate = rate

	// Outputs
	case "OUTPUT":
		c.Output = value
	case "UDP_DEST":
		c.UDPDest = value

	case "DEPTH_OFFSET_FT":
		ft, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid DEPTH_OFFSET_FT %q: %w", value, err)
		}
		c.DepthOffsetFeet = ft

	case "TICK_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TICK_INTERVAL %q: %w", value, err)
		}
		c.TickInterval = interval

	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	case "DEBUG":
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DEBUG %q: %w", value, err)
		}
		c.Debug = debug

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.PrimarySource == "" {
		return errors.New("PRIMARY_SOURCE is required")
	}
	if c.PrimarySource == SourceMQTT && c.MQTTBroker == "" {
		return errors.New("MQTT_BROKER is required for the mqtt source")
	}
	if c.PrimarySource == SourceMQTT && c.TopicN2K == "" {
		return errors.New("TOPIC_N2K is required for the mqtt source")
	}
	if c.TopicNMEA0183 != "" && c.MQTTBroker == "" {
		return errors.New("MQTT_BROKER is required to publish TOPIC_NMEA0183")
	}
	if c.AuxSerialPort != "" && c.AuxBaudRate <= 0 {
		return fmt.Errorf("AUX_BAUD_RATE must be positive, got %d", c.AuxBaudRate)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %d", c.TickInterval)
	}
	if c.WebServerPort < 0 || c.WebServerPort > 65535 {
		return fmt.Errorf("WEB_SERVER_PORT must be 0-65535, got %d", c.WebServerPort)
	}
	return nil
}

// UsesMQTT reports whether any part of the pipeline needs a broker.
func (c *Config) UsesMQTT() bool {
	return c.PrimarySource == SourceMQTT || c.TopicNMEA0183 != ""
}

// Tick returns TickInterval as a duration.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickInterval) * time.Millisecond
}

// DepthOffset returns the configured transducer offset in metres, or NA
// when none is set.
func (c *Config) DepthOffset() nav.Value {
	if c.DepthOffsetFeet == 0 {
		return nav.NA()
	}
	return nav.Of(FeetToMetres(c.DepthOffsetFeet))
}

// FeetToMetres converts a length in feet to metres.
func FeetToMetres(ft float64) float64 {
	return ft * float64(physic.Foot) / float64(physic.Metre)
}

// InitGlobal initializes the global configuration.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
