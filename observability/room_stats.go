package observability

import (
	"sync/atomic"
)

// RoomStats aggregates room activity counters since process start.
// All methods are safe for concurrent use.
type RoomStats struct {
	registered uint64
	posted     uint64
	heartbeats uint64
	reaped     uint64
}

func NewRoomStats() *RoomStats {
	return &RoomStats{}
}

func (rs *RoomStats) IncrRegistered() {
	atomic.AddUint64(&rs.registered, 1)
}

func (rs *RoomStats) IncrPosted() {
	atomic.AddUint64(&rs.posted, 1)
}

func (rs *RoomStats) IncrHeartbeats() {
	atomic.AddUint64(&rs.heartbeats, 1)
}

func (rs *RoomStats) AddReaped(n int) {
	if n > 0 {
		atomic.AddUint64(&rs.reaped, uint64(n))
	}
}

// Snapshot renders the counters for the debug inspector header.
func (rs *RoomStats) Snapshot() map[string]any {
	return map[string]any{
		"registered": atomic.LoadUint64(&rs.registered),
		"posted":     atomic.LoadUint64(&rs.posted),
		"heartbeats": atomic.LoadUint64(&rs.heartbeats),
		"reaped":     atomic.LoadUint64(&rs.reaped),
	}
}
