// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/relabs-tech/n2kconvert/internal/n2k"
)

// Handler serves the status API. stream, when non-nil, is mounted on /ws
// and carries the live sentence feed.
func Handler(status *Status, stream http.Handler) http.Handler {
	mux := http.NewServeMux()

	// JSON API endpoint: latest snapshot and counters
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		report, ok := status.Report()
		if !ok {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	mux.HandleFunc("/api/pgns", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(n2k.SupportedPGNs); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	mux.HandleFunc("/api/panel.png", func(w http.ResponseWriter, r *http.Request) {
		report, ok := status.Report()
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := png.Encode(w, RenderPanel(report.Snapshot, ok)); err != nil {
			log.Printf("web: png encode error: %v", err)
		}
	})

	if stream != nil {
		mux.Handle("/ws", stream)
	}
	return mux
}

// Serve runs the status server until ctx is done.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("web: server listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
