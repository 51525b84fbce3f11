// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package wire

import "errors"

// Sentinel errors for the WireFormat error kind: a PDU that fails any of
// these checks is dropped silently by callers (see internal/e131/inflate
// and internal/e131/node), never surfaced to an application caller.
var (
	// ErrTruncated indicates data too short for the preamble or a PDU
	// header, a declared length smaller than the header itself, or a PDU
	// body shorter than its layer's fixed fields or declared property
	// count require.
	ErrTruncated = errors.New("wire: pdu truncated")
	// ErrBadFlags indicates the top nibble of a PDU's flags+length field
	// was not 0x7.
	ErrBadFlags = errors.New("wire: bad pdu flags")
	// ErrLengthOverflow indicates a PDU's declared length exceeds the
	// bytes actually available.
	ErrLengthOverflow = errors.New("wire: declared length exceeds available bytes")
	// ErrPreambleMismatch indicates the leading 16-octet ACN preamble
	// did not match exactly.
	ErrPreambleMismatch = errors.New("wire: preamble mismatch")
	// ErrUnknownVector indicates a PDU's vector did not match the one
	// expected at that layer.
	ErrUnknownVector = errors.New("wire: unrecognized vector")
	// ErrHeaderOutOfRange indicates a fixed header field (addressing
	// type, first property address, address increment, property count)
	// held a value outside what E1.31 DMX framing permits.
	ErrHeaderOutOfRange = errors.New("wire: header field out of range")
)
