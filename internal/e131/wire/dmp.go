// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package wire

import (
	"encoding/binary"

	"github.com/openlumen/lumenhub/internal/e131/dmx"
)

// dmpFieldsSize is the width of the DMP layer's fixed fields that follow
// its vector: addressing & data type (1), first property address (2),
// address increment (2) and property value count (2).
const dmpFieldsSize = 1 + 2 + 2 + 2

// maxPropertyCount is the largest legal property value count: the START
// Code plus all 512 DMX512 slots.
const maxPropertyCount = 1 + dmx.MaxSlots

// EncodeDMP wraps startCode and buf's slots in a DMP "set property" PDU.
func EncodeDMP(startCode byte, buf dmx.Buffer) []byte {
	slots := buf.Slice()
	count := uint16(1 + len(slots))
	fields := make([]byte, dmpFieldsSize)
	fields[0] = dmpAddressTypeAndDataType
	binary.BigEndian.PutUint16(fields[1:3], dmpFirstPropertyAddress)
	binary.BigEndian.PutUint16(fields[3:5], dmpAddressIncrement)
	binary.BigEndian.PutUint16(fields[5:7], count)
	body := make([]byte, 0, dmpFieldsSize+1+len(slots))
	body = append(body, fields...)
	body = append(body, startCode)
	body = append(body, slots...)
	return EncodePDU(1, VectorDMPSetProperty, body)
}

// DecodeDMP validates the DMP-layer header, vector and fixed fields, and
// extracts the START Code and DMX slots.
func DecodeDMP(data []byte) (startCode byte, buf dmx.Buffer, err error) {
	body, _, err := DecodePDU(data, 1, VectorDMPSetProperty)
	if err != nil {
		return 0, dmx.Buffer{}, err
	}
	if len(body) < dmpFieldsSize+1 {
		return 0, dmx.Buffer{}, ErrTruncated
	}
	addrType := body[0]
	firstProp := binary.BigEndian.Uint16(body[1:3])
	increment := binary.BigEndian.Uint16(body[3:5])
	count := binary.BigEndian.Uint16(body[5:7])
	if addrType != dmpAddressTypeAndDataType || firstProp != dmpFirstPropertyAddress || increment != dmpAddressIncrement {
		return 0, dmx.Buffer{}, ErrHeaderOutOfRange
	}
	if count == 0 || count > maxPropertyCount {
		return 0, dmx.Buffer{}, ErrHeaderOutOfRange
	}
	rest := body[dmpFieldsSize:]
	if len(rest) < int(count) {
		return 0, dmx.Buffer{}, ErrTruncated
	}
	startCode = rest[0]
	buf.SetSlots(rest[1:count])
	return startCode, buf, nil
}
