// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package cid_test

import (
	"testing"

	"github.com/openlumen/lumenhub/internal/e131/cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsUniqueAndNonZero(t *testing.T) {
	a := cid.Generate()
	b := cid.Generate()
	assert.NotEqual(t, a, b)
	assert.False(t, a.IsZero())
}

func TestFromBytesRoundTrip(t *testing.T) {
	a := cid.Generate()
	b, err := cid.FromBytes(a.Bytes())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	_, err := cid.FromBytes(make([]byte, 10))
	assert.Error(t, err)
}

func TestZeroValueIsZero(t *testing.T) {
	var z cid.CID
	assert.True(t, z.IsZero())
}
