package observability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomStats_ConcurrentIncrements(t *testing.T) {
	req := require.New(t)
	stats := NewRoomStats()

	const goroutines = 10
	const perRoutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perRoutine; j++ {
				stats.IncrRegistered()
				stats.IncrPosted()
				stats.IncrHeartbeats()
				stats.AddReaped(2)
			}
		}()
	}
	wg.Wait()

	snapshot := stats.Snapshot()
	req.Equal(uint64(goroutines*perRoutine), snapshot["registered"])
	req.Equal(uint64(goroutines*perRoutine), snapshot["posted"])
	req.Equal(uint64(goroutines*perRoutine), snapshot["heartbeats"])
	req.Equal(uint64(2*goroutines*perRoutine), snapshot["reaped"])
}

func TestRoomStats_IgnoresNonPositiveReaps(t *testing.T) {
	req := require.New(t)
	stats := NewRoomStats()

	stats.AddReaped(0)
	stats.AddReaped(-3)

	req.Equal(uint64(0), stats.Snapshot()["reaped"])
}
