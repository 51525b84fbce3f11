// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package wire

import (
	"bytes"
	"encoding/binary"
)

// sourceNameSize is the fixed width, in bytes, of the framing layer's
// null-padded source name field.
const sourceNameSize = 64

// framingFieldsSize is the width of the framing layer's fixed fields that
// follow its vector: source name (64), priority (1), synchronization
// address (2, unused by this node), sequence number (1), options (1) and
// universe (2).
const framingFieldsSize = sourceNameSize + 1 + 2 + 1 + 1 + 2

// E131Header carries the framing layer's fixed fields.
type E131Header struct {
	SourceName string
	Priority   uint8
	Sequence   uint8
	Options    uint8
	Universe   uint16
}

// EncodeFraming wraps payload (a DMP PDU) in a framing-layer PDU.
func EncodeFraming(h E131Header, payload []byte) []byte {
	fields := make([]byte, framingFieldsSize)
	copy(fields[0:sourceNameSize], []byte(h.SourceName))
	fields[sourceNameSize] = h.Priority
	// fields[65:67] is the synchronization address, left zero: this node
	// does not implement universe synchronization.
	fields[67] = h.Sequence
	fields[68] = h.Options
	binary.BigEndian.PutUint16(fields[69:71], h.Universe)
	body := append(fields, payload...)
	return EncodePDU(4, VectorFramingE131Data, body)
}

// DecodeFraming validates the framing-layer header and vector and
// extracts its fixed fields, returning the DMP-layer bytes that follow
// them.
func DecodeFraming(data []byte) (E131Header, []byte, error) {
	body, _, err := DecodePDU(data, 4, VectorFramingE131Data)
	if err != nil {
		return E131Header{}, nil, err
	}
	if len(body) < framingFieldsSize {
		return E131Header{}, nil, ErrTruncated
	}
	h := E131Header{
		SourceName: decodeSourceName(body[0:sourceNameSize]),
		Priority:   body[sourceNameSize],
		Sequence:   body[67],
		Options:    body[68],
		Universe:   binary.BigEndian.Uint16(body[69:71]),
	}
	return h, body[framingFieldsSize:], nil
}

// decodeSourceName trims a null-padded source name field at its first NUL.
func decodeSourceName(b []byte) string {
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		b = b[:idx]
	}
	return string(b)
}
