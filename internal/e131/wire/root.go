// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package wire

import (
	"github.com/openlumen/lumenhub/internal/e131/cid"
)

// EncodeRoot wraps payload in a root-layer PDU identifying sender as the
// CID.
func EncodeRoot(sender cid.CID, payload []byte) []byte {
	body := make([]byte, 0, cid.Size+len(payload))
	body = append(body, sender.Bytes()...)
	body = append(body, payload...)
	return EncodePDU(4, VectorRootE131Data, body)
}

// DecodeRoot validates the root-layer header and vector and extracts the
// sender CID, returning the framing-layer bytes that follow it.
func DecodeRoot(data []byte) (sender cid.CID, payload []byte, err error) {
	body, _, err := DecodePDU(data, 4, VectorRootE131Data)
	if err != nil {
		return cid.CID{}, nil, err
	}
	if len(body) < cid.Size {
		return cid.CID{}, nil, ErrTruncated
	}
	sender, err = cid.FromBytes(body[:cid.Size])
	if err != nil {
		return cid.CID{}, nil, err
	}
	return sender, body[cid.Size:], nil
}
