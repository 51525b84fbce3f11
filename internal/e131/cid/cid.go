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

// Package cid implements the E1.31 Component Identifier: an opaque 16-octet
// value that uniquely names a sender on the wire.
package cid

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Size is the length of a CID in bytes, fixed by the E1.31 root layer.
const Size = 16

// CID is a 16-octet component identifier. The zero value is the all-zeros
// CID, used by tests and by loopback checks; it is never generated by
// Generate.
type CID [Size]byte

// Generate returns a new, randomly generated CID.
func Generate() CID {
	var c CID
	copy(c[:], uuid.New()[:])
	return c
}

// FromBytes builds a CID from a 16-byte slice. It returns an error if b is
// not exactly Size bytes long.
func FromBytes(b []byte) (CID, error) {
	var c CID
	if len(b) != Size {
		return c, fmt.Errorf("cid: expected %d bytes, got %d", Size, len(b))
	}
	copy(c[:], b)
	return c, nil
}

// Bytes returns the raw 16-octet wire representation.
func (c CID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, c[:])
	return b
}

// IsZero reports whether c is the all-zeros CID.
func (c CID) IsZero() bool {
	return c == CID{}
}

// String renders the CID in canonical UUID form for logging. It is never
// used on the wire.
func (c CID) String() string {
	u, err := uuid.FromBytes(c[:])
	if err != nil {
		return hex.EncodeToString(c[:])
	}
	return u.String()
}
