// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package node_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/openlumen/lumenhub/internal/clock"
	"github.com/openlumen/lumenhub/internal/e131/cid"
	"github.com/openlumen/lumenhub/internal/e131/dmx"
	"github.com/openlumen/lumenhub/internal/e131/node"
	"github.com/openlumen/lumenhub/internal/e131/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport is an in-memory node.Transport for tests: Send appends to
// a log instead of touching a socket, and test code delivers inbound
// datagrams by pushing onto recvCh.
type fakeTransport struct {
	mu      sync.Mutex
	sent    [][]byte
	joined  map[uint16]bool
	recvCh  chan []byte
	started bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{joined: make(map[uint16]bool), recvCh: make(chan []byte, 16)}
}

func (f *fakeTransport) Start(ctx context.Context) error { f.started = true; return nil }
func (f *fakeTransport) Close() error                    { close(f.recvCh); return nil }
func (f *fakeTransport) Join(u uint16) error              { f.mu.Lock(); defer f.mu.Unlock(); f.joined[u] = true; return nil }
func (f *fakeTransport) Leave(u uint16) error             { f.mu.Lock(); defer f.mu.Unlock(); delete(f.joined, u); return nil }
func (f *fakeTransport) Send(u uint16, datagram []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, datagram)
	return nil
}
func (f *fakeTransport) Recv() <-chan []byte { return f.recvCh }

func (f *fakeTransport) lastSent() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestNode(t *testing.T, ourCID cid.CID, clk clock.Clock) (*node.Node, *fakeTransport) {
	t.Helper()
	transport := newFakeTransport()
	n := node.New(ourCID, "lumenhub", transport, clk, silentLogger(), nil)
	require.NoError(t, n.Start(context.Background()))
	t.Cleanup(n.Stop)
	return n, transport
}

func TestSendDMXIncrementsSequenceAndWraps(t *testing.T) {
	n, transport := newTestNode(t, cid.Generate(), clock.System{})
	buf := dmx.New(1, 2, 3)

	var lastSeq uint8
	for i := 0; i < 257; i++ {
		require.NoError(t, n.SendDMX(context.Background(), 1, buf))
		_, header, _, _, err := wire.DecodeDatagram(transport.lastSent())
		require.NoError(t, err)
		lastSeq = header.Sequence
	}
	// 257 sends means sequence numbers 0..255 then wraps to 0 on the
	// 257th; the last frame sent carries sequence 0 again.
	assert.Equal(t, uint8(0), lastSeq)
}

func buildFrame(t *testing.T, sender cid.CID, universe uint16, priority uint8, seq uint8, slots ...byte) []byte {
	t.Helper()
	header := wire.E131Header{SourceName: "console", Priority: priority, Sequence: seq, Universe: universe}
	return wire.EncodeDatagram(sender, header, 0x00, dmx.New(slots...))
}

func TestHandlerReceivesAcceptedFrame(t *testing.T) {
	n, transport := newTestNode(t, cid.Generate(), clock.System{})
	received := make(chan dmx.Buffer, 1)
	require.NoError(t, n.SetHandler(1, func(universe uint16, buf dmx.Buffer) {
		received <- buf
	}))

	sender := cid.Generate()
	transport.recvCh <- buildFrame(t, sender, 1, 100, 0, 0x01, 0x02)

	select {
	case buf := <-received:
		assert.Equal(t, byte(0x01), buf.Get(0))
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
}

// TestLoopbackSuppressed reproduces the scenario where a node receives its
// own transmitted frame back (e.g. over a looped-back multicast
// interface) and must not treat itself as a competing source.
func TestLoopbackSuppressed(t *testing.T) {
	ourCID := cid.Generate()
	n, transport := newTestNode(t, ourCID, clock.System{})

	var calls int
	require.NoError(t, n.SetHandler(1, func(universe uint16, buf dmx.Buffer) {
		calls++
	}))

	frame := buildFrame(t, ourCID, 1, 100, 0, 0x01)
	transport.recvCh <- frame

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, calls)
}

func TestArbitrationHigherPriorityPreempts(t *testing.T) {
	mock := clock.NewMock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	n, transport := newTestNode(t, cid.Generate(), mock)

	var lastBuf dmx.Buffer
	require.NoError(t, n.SetHandler(1, func(universe uint16, buf dmx.Buffer) { lastBuf = buf }))

	low := cid.Generate()
	high := cid.Generate()

	transport.recvCh <- buildFrame(t, low, 1, 50, 0, 0xAA)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0xAA), lastBuf.Get(0))

	// Lower-or-equal priority from a different source is rejected while
	// the current source hasn't gone silent.
	other := cid.Generate()
	transport.recvCh <- buildFrame(t, other, 1, 50, 0, 0xBB)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0xAA), lastBuf.Get(0))

	// A strictly higher priority preempts immediately.
	transport.recvCh <- buildFrame(t, high, 1, 200, 0, 0xCC)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0xCC), lastBuf.Get(0))
}

func TestArbitrationSilenceAllowsTakeover(t *testing.T) {
	mock := clock.NewMock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	n, transport := newTestNode(t, cid.Generate(), mock)

	var lastBuf dmx.Buffer
	require.NoError(t, n.SetHandler(1, func(universe uint16, buf dmx.Buffer) { lastBuf = buf }))

	first := cid.Generate()
	transport.recvCh <- buildFrame(t, first, 1, 100, 0, 0x01)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x01), lastBuf.Get(0))

	mock.AdvanceTime(3, 0)

	second := cid.Generate()
	transport.recvCh <- buildFrame(t, second, 1, 100, 0, 0x02)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x02), lastBuf.Get(0))
}

func TestStaleSequenceDropped(t *testing.T) {
	mock := clock.NewMock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	n, transport := newTestNode(t, cid.Generate(), mock)

	var lastBuf dmx.Buffer
	require.NoError(t, n.SetHandler(1, func(universe uint16, buf dmx.Buffer) { lastBuf = buf }))

	sender := cid.Generate()
	transport.recvCh <- buildFrame(t, sender, 1, 100, 50, 0x10)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x10), lastBuf.Get(0))

	// seq 40 is 10 behind 50: within the rear window of 20, so stale.
	transport.recvCh <- buildFrame(t, sender, 1, 100, 40, 0x20)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x10), lastBuf.Get(0))

	// seq 51 is newer and accepted.
	transport.recvCh <- buildFrame(t, sender, 1, 100, 51, 0x30)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x30), lastBuf.Get(0))
}

func TestDuplicateSequenceDropped(t *testing.T) {
	mock := clock.NewMock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	n, transport := newTestNode(t, cid.Generate(), mock)

	var lastBuf dmx.Buffer
	require.NoError(t, n.SetHandler(1, func(universe uint16, buf dmx.Buffer) { lastBuf = buf }))

	sender := cid.Generate()
	transport.recvCh <- buildFrame(t, sender, 1, 100, 50, 0x10)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x10), lastBuf.Get(0))

	// an exact repeat of seq 50 (diff == 0) is a duplicate, not a newer
	// frame, and must be dropped as stale.
	transport.recvCh <- buildFrame(t, sender, 1, 100, 50, 0x99)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x10), lastBuf.Get(0))
}

func TestSequenceWrapAccepted(t *testing.T) {
	mock := clock.NewMock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	n, transport := newTestNode(t, cid.Generate(), mock)

	var lastBuf dmx.Buffer
	require.NoError(t, n.SetHandler(1, func(universe uint16, buf dmx.Buffer) { lastBuf = buf }))

	sender := cid.Generate()
	transport.recvCh <- buildFrame(t, sender, 1, 100, 255, 0x01)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x01), lastBuf.Get(0))

	transport.recvCh <- buildFrame(t, sender, 1, 100, 0, 0x02)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, byte(0x02), lastBuf.Get(0))
}

func TestRemoveHandlerStopsDelivery(t *testing.T) {
	n, transport := newTestNode(t, cid.Generate(), clock.System{})
	var calls int
	require.NoError(t, n.SetHandler(1, func(universe uint16, buf dmx.Buffer) { calls++ }))
	require.NoError(t, n.RemoveHandler(1))

	sender := cid.Generate()
	transport.recvCh <- buildFrame(t, sender, 1, 100, 0, 0x01)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, calls)
}

func TestSetSourceNameValidation(t *testing.T) {
	n, _ := newTestNode(t, cid.Generate(), clock.System{})
	assert.ErrorIs(t, n.SetSourceName(1, ""), node.ErrSourceNameEmpty)
	assert.ErrorIs(t, n.SetSourceName(1, string(make([]byte, 65))), node.ErrSourceNameTooLong)
	assert.NoError(t, n.SetSourceName(1, "console"))
}

func TestStopIsIdempotent(t *testing.T) {
	transport := newFakeTransport()
	n := node.New(cid.Generate(), "lumenhub", transport, clock.System{}, silentLogger(), nil)
	require.NoError(t, n.Start(context.Background()))
	n.Stop()
	n.Stop()
}
