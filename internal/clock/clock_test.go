// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package clock_test

import (
	"testing"
	"time"

	"github.com/openlumen/lumenhub/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestMockAdvanceTime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := clock.NewMock(start)
	assert.Equal(t, start, m.CurrentTime())

	m.AdvanceTime(10, 0)
	assert.Equal(t, start.Add(10*time.Second), m.CurrentTime())

	m.AdvanceTime(0, 500)
	assert.Equal(t, start.Add(10*time.Second+500*time.Microsecond), m.CurrentTime())
}

func TestSystemClockAdvances(t *testing.T) {
	var sys clock.System
	first := sys.CurrentTime()
	time.Sleep(time.Millisecond)
	second := sys.CurrentTime()
	assert.True(t, second.After(first))
}
