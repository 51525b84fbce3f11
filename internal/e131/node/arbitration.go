// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain

package node

import (
	"time"

	"github.com/openlumen/lumenhub/internal/e131/cid"
)

// SilenceTimeout is how long a universe's current source may go without a
// frame before a lower- or equal-priority source is allowed to take over.
const SilenceTimeout = 2500 * time.Millisecond

// SequenceRearWindow is the width, in 8-bit wraparound sequence space, of
// the "stale duplicate" zone behind the last accepted sequence number.
const SequenceRearWindow = 20

// SequenceAccepted reports whether seq is newer than lastSeq under 8-bit
// wraparound sequence arithmetic. A seq landing fewer than
// SequenceRearWindow steps behind lastSeq - including an exact duplicate
// (diff == 0) - is a stale or duplicated packet and is rejected;
// everything else - including a fresh wrap from 255 back to 0 - is
// accepted.
func SequenceAccepted(seq, lastSeq uint8) bool {
	diff := int8(seq - lastSeq)
	if diff <= 0 && diff > -SequenceRearWindow {
		return false
	}
	return true
}

// arbitrationDecision is the result of applying the source arbitration
// rule to an incoming frame against a universe's current source.
type arbitrationDecision int

const (
	// reject drops the frame: a different, no-higher-priority source is
	// already active and hasn't gone silent.
	reject arbitrationDecision = iota
	// accept continues an already-current source.
	accept
	// acceptNewSource switches the universe's current source to the
	// incoming one.
	acceptNewSource
)

// arbitrate implements the per-universe source arbitration rule: the
// current source keeps control unless a strictly higher-priority source
// arrives, or the current source has been silent for at least
// SilenceTimeout.
func arbitrate(hasSource bool, currentSource, incomingSource cid.CID, currentPriority, incomingPriority uint8, lastSeen, now time.Time) arbitrationDecision {
	if !hasSource {
		return acceptNewSource
	}
	if currentSource == incomingSource {
		return accept
	}
	if incomingPriority > currentPriority {
		return acceptNewSource
	}
	if now.Sub(lastSeen) >= SilenceTimeout {
		return acceptNewSource
	}
	return reject
}
