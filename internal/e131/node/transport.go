// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package node

import "context"

// Transport is the network dependency a Node drives. internal/e131/transport
// implements it over UDP multicast; tests use an in-memory fake. A Node
// never touches a socket directly - it only ever talks to this interface,
// which keeps all the stateful per-universe policy (arbitration, sequence
// windows, loopback suppression) on the Node side of the boundary and all
// the I/O on the transport side.
type Transport interface {
	// Start begins receiving. Datagrams arriving before Start is called
	// are not buffered.
	Start(ctx context.Context) error
	// Close stops receiving and releases any bound resources.
	Close() error
	// Join subscribes to a universe's multicast group.
	Join(universe uint16) error
	// Leave unsubscribes from a universe's multicast group.
	Leave(universe uint16) error
	// Send transmits datagram to a universe's multicast group.
	Send(universe uint16, datagram []byte) error
	// Recv returns the channel of inbound datagrams. It is closed when
	// the transport stops.
	Recv() <-chan []byte
}
