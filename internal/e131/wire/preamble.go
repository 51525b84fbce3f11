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

// Package wire implements the E1.31 PDU codec: the ACN preamble, the
// generic flags+length PDU header shared by every layer, and the
// fixed-field layouts of the root, framing and DMP layers.
package wire

import "bytes"

// PreambleSize is the fixed length, in bytes, of the leading ACN preamble.
const PreambleSize = 16

// preamble is the 16-octet ACN packet preamble: a 2-byte preamble size
// (always 0x0010), a 2-byte postamble size (always 0x0000, unused by
// E1.31), and the 12-byte ACN packet identifier "ASC-E1.17" null-padded.
var preamble = [PreambleSize]byte{
	0x00, 0x10,
	0x00, 0x00,
	'A', 'S', 'C', '-', 'E', '1', '.', '1', '7', 0x00, 0x00, 0x00,
}

// WritePreamble returns a fresh copy of the ACN preamble.
func WritePreamble() []byte {
	out := make([]byte, PreambleSize)
	copy(out, preamble[:])
	return out
}

// CheckPreamble validates that data begins with the ACN preamble and
// returns the remaining bytes (the root PDU). It returns ErrTruncated if
// data is shorter than PreambleSize and ErrPreambleMismatch if the bytes
// don't match exactly.
func CheckPreamble(data []byte) ([]byte, error) {
	if len(data) < PreambleSize {
		return nil, ErrTruncated
	}
	if !bytes.Equal(data[:PreambleSize], preamble[:]) {
		return nil, ErrPreambleMismatch
	}
	return data[PreambleSize:], nil
}
