// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package wire

import (
	"github.com/openlumen/lumenhub/internal/e131/cid"
	"github.com/openlumen/lumenhub/internal/e131/dmx"
)

// EncodeDatagram assembles a complete E1.31 datagram: preamble, root,
// framing and DMP layers, in that order.
func EncodeDatagram(sender cid.CID, header E131Header, startCode byte, buf dmx.Buffer) []byte {
	dmp := EncodeDMP(startCode, buf)
	framing := EncodeFraming(header, dmp)
	root := EncodeRoot(sender, framing)
	return append(WritePreamble(), root...)
}

// DecodeDatagram validates and decodes a complete E1.31 datagram through
// every layer. It exists for round-trip testing and for callers that
// don't need the node's per-universe stateful checks (sequence window,
// loopback suppression, arbitration) interleaved between layers.
func DecodeDatagram(datagram []byte) (sender cid.CID, header E131Header, startCode byte, buf dmx.Buffer, err error) {
	rest, err := CheckPreamble(datagram)
	if err != nil {
		return cid.CID{}, E131Header{}, 0, dmx.Buffer{}, err
	}
	sender, framingBytes, err := DecodeRoot(rest)
	if err != nil {
		return cid.CID{}, E131Header{}, 0, dmx.Buffer{}, err
	}
	header, dmpBytes, err := DecodeFraming(framingBytes)
	if err != nil {
		return cid.CID{}, E131Header{}, 0, dmx.Buffer{}, err
	}
	startCode, buf, err = DecodeDMP(dmpBytes)
	if err != nil {
		return cid.CID{}, E131Header{}, 0, dmx.Buffer{}, err
	}
	return sender, header, startCode, buf, nil
}
