package test

import (
	"context"
	"testing"
	"time"

	"sala-api/domain"
	"sala-api/errors"
	"sala-api/mocks"
	"sala-api/observability"
	"sala-api/repositories"
	"sala-api/services"
	"sala-api/validation"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Test_Scenario walks a room through a full day in miniature: two arrivals,
// a broadcast, a private word, one heartbeat, then a sweep that evicts the
// silent participant.
func Test_Scenario(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	// Reduced to 16 Mo for testing (avoid 20 Go of storage)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// A scripted clock drives the scenario instead of real sleeps
	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	participants := repositories.NewParticipantRepository(db)
	messages := repositories.NewMessageRepository(db)
	stats := observability.NewRoomStats()
	room := services.NewRoomService(participants, messages, nil, stats, clock, 10*time.Second)

	// When maria and joao enter the room
	req.NoError(room.Register(ctx, "maria"))
	now = now.Add(1 * time.Second)
	req.NoError(room.Register(ctx, "joao"))

	// Then a second maria is refused
	req.ErrorIs(room.Register(ctx, "maria"), errors.ErrNameTaken)

	// When maria greets the room and whispers to joao
	now = now.Add(1 * time.Second)
	req.NoError(room.PostMessage(ctx, "maria", newPayload(domain.Broadcast, "oi pessoal", "message")))
	now = now.Add(1 * time.Second)
	req.NoError(room.PostMessage(ctx, "joao", newPayload("maria", "oi maria", "private_message")))

	// Then a bystander only sees the arrivals and the broadcast
	visible, err := room.ListMessages("pedro", nil)
	req.NoError(err)
	texts := lo.Map(visible, func(item domain.Message, _ int) string { return item.Text })
	req.Equal([]string{
		"maria entra na sala...",
		"joao entra na sala...",
		"oi pessoal",
	}, texts)

	// And maria sees the whisper too, trimmed by the limit
	visible, err = room.ListMessages("maria", lo.ToPtr(2))
	req.NoError(err)
	req.Len(visible, 2)
	req.Equal("oi pessoal", visible[0].Text)
	req.Equal("oi maria", visible[1].Text)

	// When only joao keeps his heartbeat fresh
	now = now.Add(8 * time.Second)
	req.NoError(room.Heartbeat(ctx, "joao"))

	// And the room is swept past maria's inactivity limit
	now = now.Add(3 * time.Second)
	removed, err := room.ReapInactive(ctx)
	req.NoError(err)
	req.Equal(1, removed)

	// Then only joao remains
	roster, err := room.ListParticipants()
	req.NoError(err)
	req.Len(roster, 1)
	req.Equal("joao", roster[0].Name)

	// And maria's departure was broadcast after her last message
	visible, err = room.ListMessages("pedro", nil)
	req.NoError(err)
	req.Equal("maria sai da sala...", visible[len(visible)-1].Text)

	// And a later sweep finds nothing left to do
	removed, err = room.ReapInactive(ctx)
	req.NoError(err)
	req.Zero(removed)

	// And the activity counters add up
	req.Equal(map[string]any{
		"registered": uint64(2),
		"posted":     uint64(2),
		"heartbeats": uint64(1),
		"reaped":     uint64(1),
	}, stats.Snapshot())
}

func newPayload(to, text, messageType string) validation.MessagePayload {
	return validation.MessagePayload{To: to, Text: text, Type: messageType}
}
