// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadFrames_SkipsBlankLinesAndCloses(t *testing.T) {
	in := "{\"pgn\":127250}\n\n   \n{\"pgn\":128267}\r\n"
	out := make(chan []byte, 4)

	if err := readFrames(context.Background(), strings.NewReader(in), out); err != nil {
		t.Fatalf("readFrames() error: %v", err)
	}

	var got []string
	for f := range out {
		got = append(got, string(f))
	}
	if len(got) != 2 || got[0] != `{"pgn":127250}` || got[1] != `{"pgn":128267}` {
		t.Fatalf("frames=%q", got)
	}
}

func TestReadFrames_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan []byte) // nobody reads

	err := readFrames(ctx, strings.NewReader("{}\n"), out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}

func TestReadAux_KeepsSentencesOnly(t *testing.T) {
	in := "garbage\r\n$HCHDG,98.3,,,,*70\r\n\r\n!AIVDM,1,1,,A,x,0*00\r\n$HCHDM,45.0,M*18"
	out := make(chan string, 4)

	if err := readAux(context.Background(), strings.NewReader(in), out); err != nil {
		t.Fatalf("readAux() error: %v", err)
	}

	var got []string
	for l := range out {
		got = append(got, l)
	}
	want := []string{"$HCHDG,98.3,,,,*70", "$HCHDM,45.0,M*18"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("lines=%q want %q", got, want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestReadAux_ReportsReadError(t *testing.T) {
	out := make(chan string, 1)
	err := readAux(context.Background(), failingReader{}, out)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err=%v want unexpected EOF", err)
	}
	if _, ok := <-out; ok {
		t.Fatalf("out should be closed")
	}
}
