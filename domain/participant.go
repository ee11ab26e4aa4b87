// Package domain contains core concepts of the chat room.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// Participant is a named entity currently present in the room.
// Name is unique across active participants. LastStatus is set on
// registration, refreshed by heartbeats, and compared against the
// inactivity threshold by the reaper.
type Participant struct {
	Name       string
	LastStatus time.Time
}

// StaleAt reports whether the participant has been silent since threshold.
// Boundary is inclusive: a heartbeat exactly at the threshold counts as stale.
func (p Participant) StaleAt(threshold time.Time) bool {
	return !p.LastStatus.After(threshold)
}
