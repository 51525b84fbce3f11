// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// Package transport implements node.Transport over IPv4 UDP multicast, the
// wire carriage E1.31 runs over: one shared socket bound to port 5568,
// joined per-universe to the multicast group 239.255.(u>>8).(u&0xFF).
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/net/ipv4"
)

// Port is the fixed UDP port E1.31 multicast traffic uses.
const Port = 5568

// maxDatagramSize comfortably covers the largest frame this node emits: 16
// (preamble) + 22 (root) + 77 (framing) + 523 (DMP with a full 512-slot
// property block) = 638 bytes.
const maxDatagramSize = 638

var (
	ErrOpenSocket  = errors.New("transport: failed to open socket")
	ErrJoinGroup   = errors.New("transport: failed to join multicast group")
	ErrSendDMX     = errors.New("transport: failed to send datagram")
	ErrNotStarted  = errors.New("transport: not started")
)

// Multicast derives the multicast group address for universe u.
func Multicast(u uint16) net.IP {
	return net.IPv4(239, 255, byte(u>>8), byte(u&0xFF))
}

// Transport is a UDP multicast implementation of node.Transport.
type Transport struct {
	bindAddr  string
	ttl       int
	ifaceName string
	logger    *slog.Logger

	conn    *ipv4.PacketConn
	iface   *net.Interface
	recvCh  chan []byte
	started bool
}

// New constructs a Transport bound to bindAddr (host:port form, port is
// normally Port) with the given multicast TTL. ifaceName selects the
// outbound interface for multicast joins; an empty string lets the kernel
// choose.
func New(bindAddr string, ttl int, ifaceName string, logger *slog.Logger) *Transport {
	return &Transport{bindAddr: bindAddr, ttl: ttl, ifaceName: ifaceName, logger: logger}
}

// Start binds the UDP socket and begins the receive goroutine.
func (t *Transport) Start(ctx context.Context) error {
	conn, err := net.ListenPacket("udp4", t.bindAddr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpenSocket, err)
	}

	if t.ifaceName != "" {
		iface, err := net.InterfaceByName(t.ifaceName)
		if err != nil {
			conn.Close()
			return fmt.Errorf("%w: %v", ErrOpenSocket, err)
		}
		t.iface = iface
	}

	p := ipv4.NewPacketConn(conn)
	if t.ttl > 0 {
		if err := p.SetMulticastTTL(t.ttl); err != nil {
			conn.Close()
			return fmt.Errorf("%w: %v", ErrOpenSocket, err)
		}
	}

	t.conn = p
	t.recvCh = make(chan []byte, 64)
	t.started = true
	go t.receiveLoop(ctx)
	return nil
}

// Close stops the receive goroutine and releases the socket.
func (t *Transport) Close() error {
	if !t.started {
		return nil
	}
	t.started = false
	return t.conn.Close()
}

// Join subscribes the socket to universe u's multicast group.
func (t *Transport) Join(u uint16) error {
	if !t.started {
		return ErrNotStarted
	}
	group := &net.UDPAddr{IP: Multicast(u)}
	if err := t.conn.JoinGroup(t.iface, group); err != nil {
		return fmt.Errorf("%w: universe %d: %v", ErrJoinGroup, u, err)
	}
	return nil
}

// Leave unsubscribes the socket from universe u's multicast group.
func (t *Transport) Leave(u uint16) error {
	if !t.started {
		return ErrNotStarted
	}
	group := &net.UDPAddr{IP: Multicast(u)}
	return t.conn.LeaveGroup(t.iface, group)
}

// Send transmits datagram to universe u's multicast group on Port.
func (t *Transport) Send(u uint16, datagram []byte) error {
	if !t.started {
		return ErrNotStarted
	}
	dst := &net.UDPAddr{IP: Multicast(u), Port: Port}
	if _, err := t.conn.WriteTo(datagram, nil, dst); err != nil {
		return fmt.Errorf("%w: universe %d: %v", ErrSendDMX, u, err)
	}
	return nil
}

// Recv returns the channel of inbound datagrams.
func (t *Transport) Recv() <-chan []byte {
	return t.recvCh
}

func (t *Transport) receiveLoop(ctx context.Context) {
	buf := make([]byte, maxDatagramSize)
	defer close(t.recvCh)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, _, _, err := t.conn.ReadFrom(buf)
		if err != nil {
			if !t.started {
				return
			}
			t.logger.Warn("read failed", slog.Any("error", err))
			continue
		}

		datagram := make([]byte, n)
		copy(datagram, buf[:n])

		select {
		case t.recvCh <- datagram:
		case <-ctx.Done():
			return
		}
	}
}
