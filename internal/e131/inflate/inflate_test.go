// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package inflate_test

import (
	"testing"

	"github.com/openlumen/lumenhub/internal/e131/cid"
	"github.com/openlumen/lumenhub/internal/e131/dmx"
	"github.com/openlumen/lumenhub/internal/e131/inflate"
	"github.com/openlumen/lumenhub/internal/e131/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHeader() wire.E131Header {
	return wire.E131Header{SourceName: "e131", Priority: 100, Universe: 1}
}

func TestDecodeAcceptsValidFrame(t *testing.T) {
	sender := cid.Generate()
	datagram := wire.EncodeDatagram(sender, validHeader(), 0x00, dmx.New(1, 2, 3))
	frame, err := inflate.Decode(datagram)
	require.NoError(t, err)
	assert.Equal(t, sender, frame.Sender)
	assert.Equal(t, uint16(1), frame.Header.Universe)
}

func TestDecodeRejectsEmptySourceName(t *testing.T) {
	h := validHeader()
	h.SourceName = ""
	datagram := wire.EncodeDatagram(cid.Generate(), h, 0x00, dmx.New())
	_, err := inflate.Decode(datagram)
	assert.ErrorIs(t, err, inflate.ErrEmptySourceName)
}

func TestDecodeRejectsPriorityOutOfRange(t *testing.T) {
	h := validHeader()
	h.Priority = 201
	datagram := wire.EncodeDatagram(cid.Generate(), h, 0x00, dmx.New())
	_, err := inflate.Decode(datagram)
	assert.ErrorIs(t, err, inflate.ErrPriorityOutOfRange)
}

func TestDecodeRejectsUniverseZero(t *testing.T) {
	h := validHeader()
	h.Universe = 0
	datagram := wire.EncodeDatagram(cid.Generate(), h, 0x00, dmx.New())
	_, err := inflate.Decode(datagram)
	assert.ErrorIs(t, err, inflate.ErrUniverseOutOfRange)
}

func TestDecodeRejectsUniverseAboveMax(t *testing.T) {
	h := validHeader()
	h.Universe = 64000
	datagram := wire.EncodeDatagram(cid.Generate(), h, 0x00, dmx.New())
	_, err := inflate.Decode(datagram)
	assert.ErrorIs(t, err, inflate.ErrUniverseOutOfRange)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := inflate.Decode([]byte{0x01, 0x02, 0x03})
	assert.Error(t, err)
}
