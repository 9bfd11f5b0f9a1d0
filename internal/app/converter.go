// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/n2kconvert/internal/config"
	"github.com/relabs-tech/n2kconvert/internal/nav"
	"github.com/relabs-tech/n2kconvert/internal/nmea0183"
	"github.com/relabs-tech/n2kconvert/internal/output"
	"github.com/relabs-tech/n2kconvert/internal/sim"
)

const simPeriod = 500 * time.Millisecond

// RunConverter wires inputs, engine and outputs from cfg and runs until
// ctx is done or a file/stdin primary source ends.
func RunConverter(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fanout := output.NewFanout(nmea0183.Encoder{Talker: nmea0183.DefaultTalker})
	defer func() {
		if err := fanout.Close(); err != nil {
			log.Printf("app: close outputs: %v", err)
		}
	}()

	out, err := output.OpenPath(cfg.Output)
	if err != nil {
		return err
	}
	fanout.Add("output", out)
	log.Printf("app: writing sentences to %s", cfg.Output)

	if cfg.Debug && !isStdout(cfg.Output) {
		fanout.Add("debug", output.NewWriterDest(os.Stdout))
	}

	if cfg.UDPDest != "" {
		udp, err := output.NewUDPDest(cfg.UDPDest)
		if err != nil {
			return err
		}
		fanout.Add("udp", udp)
		log.Printf("app: udp dest=%s", cfg.UDPDest)
	}

	var client mqtt.Client
	if cfg.UsesMQTT() {
		client, err = connectMQTT(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
	}
	if cfg.TopicNMEA0183 != "" {
		fanout.Add("mqtt", output.NewMQTTDest(client, cfg.TopicNMEA0183))
		log.Printf("app: publishing sentences to %s", cfg.TopicNMEA0183)
	}

	status := NewStatus()
	if cfg.WebServerPort > 0 {
		hub := output.NewHub()
		fanout.Add("websocket", hub)
		addr := ":" + strconv.Itoa(cfg.WebServerPort)
		go func() {
			if err := Serve(ctx, addr, Handler(status, hub)); err != nil {
				log.Printf("web: server stopped: %v", err)
			}
		}()
	}

	primary := make(chan []byte, frameBuffer)
	switch cfg.PrimarySource {
	case config.SourceMQTT:
		if err := subscribePrimary(ctx, client, cfg.TopicN2K, primary); err != nil {
			return err
		}
	case config.SourceSim:
		boat := sim.NewBoat(time.Now(), sim.DefaultLatitude, sim.DefaultLongitude)
		log.Printf("app: simulating a boat at %.4f,%.4f", sim.DefaultLatitude, sim.DefaultLongitude)
		go func() { logReadError("primary", sim.Run(ctx, boat, simPeriod, primary)) }()
	case config.SourceStdin:
		go func() { logReadError("primary", readFrames(ctx, os.Stdin, primary)) }()
	default:
		f, err := os.Open(cfg.PrimarySource)
		if err != nil {
			return fmt.Errorf("open primary source: %w", err)
		}
		defer f.Close()
		go func() { logReadError("primary", readFrames(ctx, f, primary)) }()
	}

	var aux chan string
	if cfg.AuxSerialPort != "" {
		port, err := openAuxPort(cfg.AuxSerialPort, cfg.AuxBaudRate)
		if err != nil {
			return err
		}
		aux = make(chan string, frameBuffer)
		go func() {
			<-ctx.Done()
			port.Close()
		}()
		go func() { logReadError("aux", readAux(ctx, port, aux)) }()
	}

	engine := nav.New(fanout, nav.WithDepthOffset(cfg.DepthOffset()))
	ticker := time.NewTicker(cfg.Tick())
	defer ticker.Stop()

	l := &loop{engine: engine, status: status, outputStats: fanout.Stats}
	log.Printf("app: engine running, tick=%s", cfg.Tick())
	return l.run(ctx, primary, aux, ticker.C)
}

func logReadError(name string, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("app: %s reader stopped: %v", name, err)
	}
}

func isStdout(path string) bool {
	return path == "" || path == "-" || path == "/dev/stdout"
}
