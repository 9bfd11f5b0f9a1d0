// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/n2kconvert/internal/app"
	"github.com/relabs-tech/n2kconvert/internal/config"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to KEY=VALUE config file")
	debug := flag.Bool("debug", false, "Echo every sentence to stdout")
	depth := flag.Float64("depth", 0, "Depth transducer offset in feet")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	log.Println("starting n2kconvert (NMEA 2000 to NMEA 0183)")

	path := *configPath
	if !set["config"] {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Printf("no config file at %s, using defaults", path)
			path = ""
		}
	}
	if err := config.InitGlobal(path); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg := *config.Get()
	if set["debug"] {
		cfg.Debug = *debug
	}
	if set["depth"] {
		cfg.DepthOffsetFeet = *depth
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunConverter(ctx, &cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
	log.Println("n2kconvert stopped")
}
