// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/n2kconvert/internal/app"
	"github.com/relabs-tech/n2kconvert/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to KEY=VALUE config file (defaults and N2K_* env when empty)")
	flag.Parse()

	log.Println("starting n2kconsole (NMEA 0183 MQTT subscriber)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunConsole(ctx, config.Get()); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
