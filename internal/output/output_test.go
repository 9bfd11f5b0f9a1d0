// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package output

import (
	"bytes"
	"errors"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/n2kconvert/internal/nav"
	"github.com/relabs-tech/n2kconvert/internal/nmea0183"
)

type memDest struct {
	lines  []string
	err    error
	closed bool
}

func (m *memDest) Send(line []byte) error {
	if m.err != nil {
		return m.err
	}
	m.lines = append(m.lines, string(line))
	return nil
}

func (m *memDest) Close() error {
	m.closed = true
	return nil
}

type unknownRecord struct{}

func (unknownRecord) Sentence() string { return "XXX" }

func TestFanout_EncodesOnceForAllDests(t *testing.T) {
	f := NewFanout(nmea0183.Encoder{})
	a, b := &memDest{}, &memDest{}
	f.Add("a", a)
	f.Add("b", b)

	f.Emit(nav.DBT{Depth: nav.Of(3.2)})

	want := "$IIDBT,10.5,f,3.2,M,1.7,F*"
	for name, d := range map[string]*memDest{"a": a, "b": b} {
		if len(d.lines) != 1 {
			t.Fatalf("%s: got %d lines want 1", name, len(d.lines))
		}
		if !strings.HasPrefix(d.lines[0], want) || !strings.HasSuffix(d.lines[0], "\r\n") {
			t.Fatalf("%s: line=%q", name, d.lines[0])
		}
	}
}

func TestFanout_FailingDestDoesNotBlockOthers(t *testing.T) {
	f := NewFanout(nmea0183.Encoder{})
	bad := &memDest{err: errors.New("broken pipe")}
	good := &memDest{}
	f.Add("bad", bad)
	f.Add("good", good)

	f.Emit(nav.HDT{Heading: nav.Of(1)})
	f.Emit(nav.HDT{Heading: nav.Of(2)})

	if len(good.lines) != 2 {
		t.Fatalf("good dest got %d lines want 2", len(good.lines))
	}
	sent, fails := f.Stats()
	if sent != 2 || fails != 2 {
		t.Fatalf("Stats()=(%d,%d) want (2,2)", sent, fails)
	}
}

func TestFanout_UnknownRecordIsDropped(t *testing.T) {
	f := NewFanout(nmea0183.Encoder{})
	d := &memDest{}
	f.Add("d", d)

	f.Emit(unknownRecord{})

	if len(d.lines) != 0 {
		t.Fatalf("got %d lines want 0", len(d.lines))
	}
	if sent, _ := f.Stats(); sent != 0 {
		t.Fatalf("sent=%d want 0", sent)
	}
}

func TestFanout_CloseClosesDests(t *testing.T) {
	f := NewFanout(nmea0183.Encoder{})
	d := &memDest{}
	f.Add("d", d)
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !d.closed {
		t.Fatalf("dest not closed")
	}
}

func TestOpenPath_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.nmea")
	d, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error: %v", err)
	}
	if err := d.Send([]byte("$IIHDT,1.0,T*00\r\n")); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(got) != "$IIHDT,1.0,T*00\r\n" {
		t.Fatalf("file=%q", got)
	}
}

func TestWriterDest_StdoutIsNotClosed(t *testing.T) {
	d, err := OpenPath("/dev/stdout")
	if err != nil {
		t.Fatalf("OpenPath() error: %v", err)
	}
	if d.closer != nil {
		t.Fatalf("stdout should not be closed")
	}
}

type fakeUDPConn struct {
	writes [][]byte
	closed bool
}

func (c *fakeUDPConn) Write(p []byte) (int, error) {
	c.writes = append(c.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (c *fakeUDPConn) Close() error {
	c.closed = true
	return nil
}

func TestUDPDest_SendsDatagram(t *testing.T) {
	conn := &fakeUDPConn{}
	var dialed string
	u, err := newUDPDest("192.168.1.255:10110",
		func(network, address string) (*net.UDPAddr, error) {
			return net.ResolveUDPAddr(network, address)
		},
		func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
			dialed = raddr.String()
			return conn, nil
		})
	if err != nil {
		t.Fatalf("newUDPDest() error: %v", err)
	}
	if dialed != "192.168.1.255:10110" {
		t.Fatalf("dialed=%q", dialed)
	}
	if err := u.Send(nil); err != nil {
		t.Fatalf("Send(nil) error: %v", err)
	}
	if err := u.Send([]byte("$IIMTW,14.3,C*00\r\n")); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if len(conn.writes) != 1 {
		t.Fatalf("writes=%d want 1", len(conn.writes))
	}
	if err := u.Close(); err != nil || !conn.closed {
		t.Fatalf("Close() error: %v closed=%v", err, conn.closed)
	}
}

func TestUDPDest_ResolveError(t *testing.T) {
	_, err := newUDPDest("nowhere",
		func(network, address string) (*net.UDPAddr, error) {
			return nil, errors.New("no such host")
		},
		func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
			t.Fatalf("dial should not be called")
			return nil, nil
		})
	if err == nil || !strings.Contains(err.Error(), "resolve dest") {
		t.Fatalf("err=%v", err)
	}
}

type fakeToken struct {
	err  error
	done chan struct{}
}

func newFakeToken(err error) *fakeToken {
	d := make(chan struct{})
	close(d)
	return &fakeToken{err: err, done: d}
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type fakePublisher struct {
	topic   string
	payload []byte
	err     error
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.topic = topic
	p.payload = payload.([]byte)
	return newFakeToken(p.err)
}

func TestMQTTDest_PublishesTrimmedSentence(t *testing.T) {
	p := &fakePublisher{}
	m := &MQTTDest{client: p, topic: "nmea0183/out"}
	if err := m.Send([]byte("$IIHDT,1.0,T*00\r\n")); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if p.topic != "nmea0183/out" {
		t.Fatalf("topic=%q", p.topic)
	}
	if !bytes.Equal(p.payload, []byte("$IIHDT,1.0,T*00")) {
		t.Fatalf("payload=%q", p.payload)
	}
}

func TestMQTTDest_PublishError(t *testing.T) {
	p := &fakePublisher{err: errors.New("not connected")}
	m := &MQTTDest{client: p, topic: "t"}
	if err := m.Send([]byte("$X\r\n")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHub_StreamsToClient(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer h.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never joined")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := h.Send([]byte("$IIHDT,1.0,T*00\r\n")); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}
	if string(msg) != "$IIHDT,1.0,T*00\r\n" {
		t.Fatalf("msg=%q", msg)
	}
}
