package repositories

import (
	"testing"
	"time"

	"sala-api/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_StoreAndList(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t))

	at := time.Now()
	first := domain.Message{ID: uuid.New(), From: "maria", To: domain.Broadcast, Text: "oi", Type: domain.TypeMessage, At: at}
	second := domain.Message{ID: uuid.New(), From: "joao", To: "maria", Text: "oi maria", Type: domain.TypePrivateMessage, At: at.Add(time.Second)}
	third := domain.Message{ID: uuid.New(), From: "maria", To: domain.Broadcast, Text: "tchau", Type: domain.TypeMessage, At: at.Add(2 * time.Second)}

	// Inserted out of order on purpose; the padded keys restore chronology
	req.NoError(repository.Store(second))
	req.NoError(repository.Store(third))
	req.NoError(repository.Store(first))

	messages, err := repository.List()
	req.NoError(err)
	req.Len(messages, 3)
	req.Equal([]string{"oi", "oi maria", "tchau"}, lo.Map(messages, func(m domain.Message, _ int) string {
		return m.Text
	}))
	req.Equal(first.ID, messages[0].ID)
	req.Equal(domain.TypePrivateMessage, messages[1].Type)
	req.Equal(first.At.UnixNano(), messages[0].At.UnixNano())
}

func TestMessageRepository_StoreAll(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t))

	at := time.Now()
	notices := []domain.Message{
		domain.NewLeaveStatus("maria", at),
		domain.NewLeaveStatus("joao", at),
	}
	req.NoError(repository.StoreAll(notices))

	messages, err := repository.List()
	req.NoError(err)
	req.Len(messages, 2)
	for _, message := range messages {
		req.Equal(domain.TypeStatus, message.Type)
		req.Equal(domain.Broadcast, message.To)
		req.Contains(message.Text, "sai da sala...")
	}
}

func TestMessageRepository_ListEmpty(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(openTestDB(t))

	messages, err := repository.List()
	req.NoError(err)
	req.Empty(messages)
}
