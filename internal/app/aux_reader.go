// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	serial "github.com/jacobsa/go-serial/serial"
)

// openAuxPort opens the auxiliary NMEA 0183 serial port, 8N1.
func openAuxPort(name string, baud int) (io.ReadWriteCloser, error) {
	opts := serial.OpenOptions{
		PortName:              name,
		BaudRate:              uint(baud),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}
	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open aux port %s: %w", name, err)
	}
	log.Printf("aux: serial port opened on %s at %d baud", name, baud)
	return port, nil
}

// readAux sends every sentence read from r to out and closes out when r
// fails or ends.
func readAux(ctx context.Context, r io.Reader, out chan<- string) error {
	defer close(out)

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); strings.HasPrefix(line, "$") {
			select {
			case out <- line:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("aux read: %w", err)
		}
	}
}
