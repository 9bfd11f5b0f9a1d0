// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package output

import (
	"fmt"
	"net"
)

type udpConn interface {
	Write(p []byte) (int, error)
	Close() error
}

type resolveFunc func(network, address string) (*net.UDPAddr, error)

type dialFunc func(network string, laddr, raddr *net.UDPAddr) (udpConn, error)

// UDPDest sends each sentence as one datagram, e.g. to OpenCPN on port 10110.
type UDPDest struct {
	dest string
	conn udpConn
}

// NewUDPDest resolves and dials dest ("host:port").
func NewUDPDest(dest string) (*UDPDest, error) {
	return newUDPDest(dest, net.ResolveUDPAddr, func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return net.DialUDP(network, laddr, raddr)
	})
}

func newUDPDest(dest string, resolve resolveFunc, dial dialFunc) (*UDPDest, error) {
	addr, err := resolve("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve dest: %w", err)
	}
	conn, err := dial("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp: %w", err)
	}
	return &UDPDest{dest: dest, conn: conn}, nil
}

func (u *UDPDest) Send(line []byte) error {
	if len(line) == 0 {
		return nil
	}
	_, err := u.conn.Write(line)
	return err
}

func (u *UDPDest) Close() error {
	if u.conn == nil {
		return nil
	}
	return u.conn.Close()
}
