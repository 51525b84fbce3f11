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

// Package inflate turns a raw E1.31 datagram into a validated Frame. It is
// deliberately stateless: every check here depends only on the bytes of
// a single datagram, never on what the node has seen before. Checks that
// depend on history - sequence number ordering, source arbitration,
// loopback suppression - live in internal/e131/node, which is the only
// thing in this module allowed to hold per-universe state.
package inflate

import (
	"errors"

	"github.com/openlumen/lumenhub/internal/e131/cid"
	"github.com/openlumen/lumenhub/internal/e131/dmx"
	"github.com/openlumen/lumenhub/internal/e131/wire"
)

// Field bounds enforced on every accepted frame.
const (
	MinPriority = 0
	MaxPriority = 200
	MinUniverse = 1
	MaxUniverse = 63999
)

// Sentinel errors for semantic field validation, distinct from the
// lower-level wire-format errors returned by the wire package.
var (
	ErrEmptySourceName    = errors.New("inflate: empty source name")
	ErrPriorityOutOfRange = errors.New("inflate: priority out of range")
	ErrUniverseOutOfRange = errors.New("inflate: universe out of range")
)

// Frame is a fully parsed, field-validated E1.31 datagram, ready for a
// node to apply its stateful per-universe policy.
type Frame struct {
	Sender    cid.CID
	Header    wire.E131Header
	StartCode byte
	Data      dmx.Buffer
}

// Decode parses datagram through every wire layer and validates the
// framing layer's semantic fields. It returns the first wire or semantic
// error encountered; callers treat any error as "drop this datagram".
func Decode(datagram []byte) (Frame, error) {
	sender, header, startCode, buf, err := wire.DecodeDatagram(datagram)
	if err != nil {
		return Frame{}, err
	}
	if header.SourceName == "" {
		return Frame{}, ErrEmptySourceName
	}
	if header.Priority > MaxPriority {
		return Frame{}, ErrPriorityOutOfRange
	}
	if header.Universe < MinUniverse || header.Universe > MaxUniverse {
		return Frame{}, ErrUniverseOutOfRange
	}
	return Frame{Sender: sender, Header: header, StartCode: startCode, Data: buf}, nil
}
