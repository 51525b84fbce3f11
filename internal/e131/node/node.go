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

// Package node implements the E1.31 node: the single stateful owner of
// per-universe transmit and receive state. Every mutating operation runs
// on one loop goroutine, reached only through a command channel, so the
// node never needs internal locking. Inbound datagrams are parsed by
// internal/e131/inflate, which is deliberately stateless; this package
// supplies everything that needs memory - sequence windows, source
// arbitration, loopback suppression.
package node

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/openlumen/lumenhub/internal/clock"
	"github.com/openlumen/lumenhub/internal/e131/cid"
	"github.com/openlumen/lumenhub/internal/e131/dmx"
	"github.com/openlumen/lumenhub/internal/e131/inflate"
	"github.com/openlumen/lumenhub/internal/e131/wire"
	"github.com/openlumen/lumenhub/internal/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies the spans this package starts to the configured
// OTLP exporter.
const tracerName = "github.com/openlumen/lumenhub/internal/e131/node"

var tracer = otel.Tracer(tracerName)

const (
	maxSourceNameLen = 64
	// DefaultPriority is the priority a transmit universe starts at
	// before SetSourcePriority is ever called.
	DefaultPriority = 100
	// MinPriority and MaxPriority bound SetSourcePriority's clamp.
	MinPriority = 0
	MaxPriority = 200
)

var (
	ErrSourceNameEmpty    = errors.New("node: source name must not be empty")
	ErrSourceNameTooLong  = errors.New("node: source name exceeds 64 bytes")
	ErrNotStarted         = errors.New("node: not started")
	ErrUniverseOutOfRange = errors.New("node: universe out of range")
)

// Handler is called on the node's loop goroutine whenever a universe's
// active receive buffer changes. Implementations must not block and must
// not call back into the Node that invoked them.
type Handler func(universe uint16, buf dmx.Buffer)

// txUniverse is the per-universe state a Node owns for universes it
// sources DMX data to.
type txUniverse struct {
	sourceName string
	priority   uint8
	sequence   uint8
	joined     bool
}

// rxUniverse is the per-universe state a Node owns for universes it
// listens on.
type rxUniverse struct {
	hasSource bool
	source    cid.CID
	priority  uint8
	hasSeq    bool
	lastSeq   uint8
	lastSeen  time.Time
	buf       dmx.Buffer
	handler   Handler
	joined    bool
}

// command is a request object posted to the loop goroutine; run executes
// on the loop, and done is closed once it returns. This is the mechanism
// every public mutating method uses instead of a mutex.
type command struct {
	run  func(*Node)
	done chan struct{}
}

// Node is an E1.31 node: it sources DMX data on universes it transmits,
// and arbitrates, reassembles and dispatches DMX data on universes it
// receives. All exported methods are safe to call from any goroutine;
// internally they marshal onto a single loop goroutine.
type Node struct {
	ourCID            cid.CID
	defaultSourceName string
	transport         Transport
	clock             clock.Clock
	logger            *slog.Logger
	metrics           *metrics.Metrics

	cmdCh   chan command
	stopCh  chan struct{}
	loopWG  sync.WaitGroup
	started bool
	stopped sync.Once

	tx map[uint16]*txUniverse
	rx map[uint16]*rxUniverse
}

// New constructs a Node. defaultSourceName is used for any universe whose
// source name hasn't been set explicitly via SetSourceName. m may be nil,
// in which case the node simply doesn't report metrics.
func New(ourCID cid.CID, defaultSourceName string, transport Transport, clk clock.Clock, logger *slog.Logger, m *metrics.Metrics) *Node {
	return &Node{
		ourCID:            ourCID,
		defaultSourceName: defaultSourceName,
		transport:         transport,
		clock:             clk,
		logger:            logger,
		metrics:           m,
		tx:                make(map[uint16]*txUniverse),
		rx:                make(map[uint16]*rxUniverse),
	}
}

// Start begins the node's transport and loop goroutine.
func (n *Node) Start(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "node.Start", trace.WithAttributes(attribute.String("cid", n.ourCID.String())))
	defer span.End()

	if err := n.transport.Start(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	n.cmdCh = make(chan command)
	n.stopCh = make(chan struct{})
	n.loopWG.Add(1)
	n.started = true
	go n.loop()
	return nil
}

// Stop shuts the node down. It is safe to call more than once.
func (n *Node) Stop() {
	n.stopped.Do(func() {
		_, span := tracer.Start(context.Background(), "node.Stop", trace.WithAttributes(attribute.String("cid", n.ourCID.String())))
		defer span.End()

		if !n.started {
			return
		}
		close(n.stopCh)
		n.loopWG.Wait()
		if err := n.transport.Close(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			n.logger.Warn("transport close failed", slog.Any("error", err))
		}
	})
}

// do runs fn on the loop goroutine and waits for it to finish. It returns
// immediately, without running fn, if the node has already stopped.
func (n *Node) do(fn func(*Node)) {
	if !n.started {
		return
	}
	reply := make(chan struct{})
	select {
	case n.cmdCh <- command{run: fn, done: reply}:
		<-reply
	case <-n.stopCh:
	}
}

// SetSourceName sets the source name advertised on universe u's
// transmitted frames.
func (n *Node) SetSourceName(u uint16, name string) error {
	if name == "" {
		return ErrSourceNameEmpty
	}
	if len(name) > maxSourceNameLen {
		return ErrSourceNameTooLong
	}
	n.do(func(n *Node) {
		n.txFor(u).sourceName = name
	})
	return nil
}

// SetSourcePriority sets universe u's transmit priority, clamped to
// [MinPriority, MaxPriority].
func (n *Node) SetSourcePriority(u uint16, priority uint8) {
	if priority > MaxPriority {
		priority = MaxPriority
	}
	n.do(func(n *Node) {
		n.txFor(u).priority = priority
	})
}

// SendDMX transmits buf on universe u, joining its multicast group on
// first use. The per-universe sequence number increments, wrapping at 256,
// on every frame handed to the transport. A universe outside
// [inflate.MinUniverse, inflate.MaxUniverse] is rejected with
// ErrUniverseOutOfRange.
func (n *Node) SendDMX(ctx context.Context, u uint16, buf dmx.Buffer) error {
	_, span := tracer.Start(ctx, "node.SendDMX", trace.WithAttributes(
		attribute.Int("universe", int(u)),
	))
	defer span.End()

	if u < inflate.MinUniverse || u > inflate.MaxUniverse {
		span.RecordError(ErrUniverseOutOfRange)
		span.SetStatus(codes.Error, ErrUniverseOutOfRange.Error())
		return ErrUniverseOutOfRange
	}

	var sendErr error
	n.do(func(n *Node) {
		tx := n.txFor(u)
		if !tx.joined {
			if err := n.transport.Join(u); err != nil {
				sendErr = err
				return
			}
			tx.joined = true
		}
		name := tx.sourceName
		if name == "" {
			name = n.defaultSourceName
		}
		header := wire.E131Header{
			SourceName: name,
			Priority:   tx.priority,
			Sequence:   tx.sequence,
			Universe:   u,
		}
		datagram := wire.EncodeDatagram(n.ourCID, header, 0x00, buf)
		sendErr = n.transport.Send(u, datagram)
		tx.sequence++
	})
	if sendErr != nil {
		span.RecordError(sendErr)
		span.SetStatus(codes.Error, sendErr.Error())
	}
	return sendErr
}

// SetHandler registers handler to be called whenever universe u's active
// receive buffer changes, and joins u's multicast group.
func (n *Node) SetHandler(u uint16, handler Handler) error {
	var joinErr error
	n.do(func(n *Node) {
		rx := n.rxFor(u)
		rx.handler = handler
		if !rx.joined {
			if err := n.transport.Join(u); err != nil {
				joinErr = err
				return
			}
			rx.joined = true
		}
	})
	return joinErr
}

// RemoveHandler stops listening on universe u and leaves its multicast
// group.
func (n *Node) RemoveHandler(u uint16) error {
	var leaveErr error
	n.do(func(n *Node) {
		rx, ok := n.rx[u]
		if !ok {
			return
		}
		if rx.joined {
			leaveErr = n.transport.Leave(u)
		}
		delete(n.rx, u)
		n.metrics.SetActiveSources(float64(n.activeSourceCount()))
	})
	return leaveErr
}

func (n *Node) txFor(u uint16) *txUniverse {
	tx, ok := n.tx[u]
	if !ok {
		tx = &txUniverse{priority: DefaultPriority}
		n.tx[u] = tx
	}
	return tx
}

func (n *Node) rxFor(u uint16) *rxUniverse {
	rx, ok := n.rx[u]
	if !ok {
		rx = &rxUniverse{}
		n.rx[u] = rx
	}
	return rx
}

// activeSourceCount returns how many registered rx universes currently
// have a live source. Called only from the loop goroutine.
func (n *Node) activeSourceCount() int {
	count := 0
	for _, rx := range n.rx {
		if rx.hasSource {
			count++
		}
	}
	return count
}

// loop is the sole mutator of Node's per-universe state. It alternates
// between serving command requests and inbound datagrams; nothing else
// in this package touches n.tx or n.rx.
func (n *Node) loop() {
	defer n.loopWG.Done()
	for {
		select {
		case cmd := <-n.cmdCh:
			cmd.run(n)
			close(cmd.done)
		case datagram, ok := <-n.transport.Recv():
			if !ok {
				return
			}
			n.handleDatagram(datagram)
		case <-n.stopCh:
			return
		}
	}
}

func (n *Node) handleDatagram(datagram []byte) {
	frame, err := inflate.Decode(datagram)
	if err != nil {
		n.logger.Debug("dropping malformed frame", slog.Any("error", err))
		n.metrics.RecordWireError("inflate", err.Error())
		return
	}
	if frame.Sender == n.ourCID {
		n.metrics.RecordFrameDropped(strconv.Itoa(int(frame.Header.Universe)), "loopback")
		return
	}
	universe := strconv.Itoa(int(frame.Header.Universe))
	rx, ok := n.rx[frame.Header.Universe]
	if !ok {
		n.metrics.RecordFrameDropped(universe, "unregistered_universe")
		return
	}
	now := n.clock.CurrentTime()
	switch arbitrate(rx.hasSource, rx.source, frame.Sender, rx.priority, frame.Header.Priority, rx.lastSeen, now) {
	case reject:
		n.metrics.RecordFrameDropped(universe, "arbitration_rejected")
		return
	case acceptNewSource:
		rx.hasSource = true
		rx.source = frame.Sender
		rx.priority = frame.Header.Priority
		rx.hasSeq = false
		n.metrics.RecordArbitrationSwitch(universe)
		n.metrics.SetActiveSources(float64(n.activeSourceCount()))
	case accept:
		rx.priority = frame.Header.Priority
	}
	if rx.hasSeq && !SequenceAccepted(frame.Header.Sequence, rx.lastSeq) {
		n.metrics.RecordFrameDropped(universe, "stale_sequence")
		return
	}
	rx.lastSeq = frame.Header.Sequence
	rx.hasSeq = true
	rx.lastSeen = now
	if frame.StartCode != 0x00 {
		// Only the DMX512 START Code (0x00) updates the buffer; other
		// start codes are reserved for alternate payloads this node
		// doesn't interpret.
		n.metrics.RecordFrameDropped(universe, "non_dmx_start_code")
		return
	}
	rx.buf = frame.Data
	if rx.handler != nil {
		rx.handler(frame.Header.Universe, frame.Data)
	}
}
