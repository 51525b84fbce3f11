// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package wire

// Vectors identify the payload kind carried by a PDU at a given layer.
const (
	// VectorRootE131Data is the only root-layer vector this node accepts;
	// it marks the payload as an E1.31 framing PDU.
	VectorRootE131Data uint32 = 0x00000004
	// VectorFramingE131Data marks a framing PDU's payload as a DMP PDU
	// carrying DMX data (as opposed to, e.g., a discovery PDU).
	VectorFramingE131Data uint32 = 0x00000002
	// VectorDMPSetProperty is the only DMP vector this node accepts: a
	// request to set a contiguous run of addressed properties.
	VectorDMPSetProperty uint32 = 0x02

	// dmpAddressTypeAndDataType is the fixed addressing mode this node
	// requires: two-octet addresses, one-octet data.
	dmpAddressTypeAndDataType byte = 0xa1
	// dmpFirstPropertyAddress is the fixed starting address of a DMX
	// property block: DMX512 addressing always starts at slot 0 (the
	// START Code).
	dmpFirstPropertyAddress uint16 = 0x0000
	// dmpAddressIncrement is the fixed stride between addressed
	// properties: DMX512 slots are contiguous.
	dmpAddressIncrement uint16 = 0x0001
)
