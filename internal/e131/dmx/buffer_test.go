// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package dmx_test

import (
	"testing"

	"github.com/openlumen/lumenhub/internal/e131/dmx"
	"github.com/stretchr/testify/assert"
)

func TestEmptyBufferDistinctFrom512Zeros(t *testing.T) {
	var empty dmx.Buffer
	full := dmx.New(make([]byte, 512)...)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 512, full.Len())
	assert.False(t, empty.Equal(&full))
}

func TestSetSlotsTruncates(t *testing.T) {
	b := dmx.New(make([]byte, 600)...)
	assert.Equal(t, 512, b.Len())
}

func TestGetOutOfRangeReturnsZero(t *testing.T) {
	b := dmx.New(1, 2, 3)
	assert.Equal(t, byte(0), b.Get(10))
}

func TestSetGrowsLength(t *testing.T) {
	var b dmx.Buffer
	b.Set(4, 0x42)
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, byte(0x42), b.Get(4))
	assert.Equal(t, byte(0), b.Get(0))
}

func TestEqualSlotWise(t *testing.T) {
	a := dmx.New(1, 2, 3)
	b := dmx.New(1, 2, 3)
	c := dmx.New(1, 2, 4)
	assert.True(t, a.Equal(&b))
	assert.False(t, a.Equal(&c))
}
