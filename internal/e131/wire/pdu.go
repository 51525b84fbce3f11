// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package wire

import "encoding/binary"

// headerSize is the width of the flags+length field shared by every PDU.
const headerSize = 2

// flagsNibble is the fixed value of the top 4 bits of the flags+length
// field. ACN reserves the top bit and defines the remaining 3 as PDU
// flags; every PDU this node emits or accepts sets them to 0x7.
const flagsNibble = 0x7

// maxPDULength is the largest value the 12-bit length field can hold.
const maxPDULength = 0x0FFF

// writeHeader encodes length (including the 2-byte header itself) into
// buf[0:2].
func writeHeader(buf []byte, length int) {
	binary.BigEndian.PutUint16(buf, uint16(flagsNibble<<12)|uint16(length&maxPDULength))
}

// readHeader validates and decodes the flags+length field at the front of
// data, returning the declared PDU length (including the header).
func readHeader(data []byte) (int, error) {
	if len(data) < headerSize {
		return 0, ErrTruncated
	}
	raw := binary.BigEndian.Uint16(data)
	if raw>>12 != flagsNibble {
		return 0, ErrBadFlags
	}
	declared := int(raw & maxPDULength)
	if declared < headerSize {
		return 0, ErrTruncated
	}
	if declared > len(data) {
		return 0, ErrLengthOverflow
	}
	return declared, nil
}

// EncodePDU assembles a complete PDU: a flags+length header, a vector of
// vectorSize bytes (1 or 4), and body (the layer's fixed header fields
// followed by its variable payload, already concatenated by the caller).
func EncodePDU(vectorSize int, vector uint32, body []byte) []byte {
	total := headerSize + vectorSize + len(body)
	buf := make([]byte, total)
	writeHeader(buf, total)
	switch vectorSize {
	case 1:
		buf[headerSize] = byte(vector)
	case 4:
		binary.BigEndian.PutUint32(buf[headerSize:headerSize+4], vector)
	}
	copy(buf[headerSize+vectorSize:], body)
	return buf
}

// DecodePDU validates data's header and vector against expectedVector and
// returns the body bytes (everything after the vector, up to the PDU's
// declared length).
func DecodePDU(data []byte, vectorSize int, expectedVector uint32) (body []byte, declaredLen int, err error) {
	declaredLen, err = readHeader(data)
	if err != nil {
		return nil, 0, err
	}
	if headerSize+vectorSize > declaredLen {
		return nil, 0, ErrTruncated
	}
	var vector uint32
	switch vectorSize {
	case 1:
		vector = uint32(data[headerSize])
	case 4:
		vector = binary.BigEndian.Uint32(data[headerSize : headerSize+4])
	}
	if vector != expectedVector {
		return nil, 0, ErrUnknownVector
	}
	return data[headerSize+vectorSize : declaredLen], declaredLen, nil
}
