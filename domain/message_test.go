package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMessage_VisibleTo(t *testing.T) {
	tests := []struct {
		name    string
		message Message
		reader  string
		visible bool
	}{
		{
			name:    "should show a broadcast to anyone",
			message: Message{From: "maria", To: Broadcast, Type: TypeMessage},
			reader:  "joao",
			visible: true,
		},
		{
			name:    "should show a private message to its recipient",
			message: Message{From: "maria", To: "joao", Type: TypePrivateMessage},
			reader:  "joao",
			visible: true,
		},
		{
			name:    "should show a private message to its sender",
			message: Message{From: "maria", To: "joao", Type: TypePrivateMessage},
			reader:  "maria",
			visible: true,
		},
		{
			name:    "should hide a private message from third parties",
			message: Message{From: "maria", To: "joao", Type: TypePrivateMessage},
			reader:  "pedro",
			visible: false,
		},
		{
			name:    "should hide direct messages from an anonymous reader",
			message: Message{From: "maria", To: "joao", Type: TypeMessage},
			reader:  "",
			visible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.visible, tt.message.VisibleTo(tt.reader))
		})
	}
}

func TestStatusMessages(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 3, 1, 20, 15, 0, 0, time.UTC)

	join := NewJoinStatus("maria", at)
	req.Equal("maria", join.From)
	req.Equal(Broadcast, join.To)
	req.Equal(TypeStatus, join.Type)
	req.Equal("maria entra na sala...", join.Text)
	req.Equal(at, join.At)
	req.NotEqual(uuid.Nil, join.ID)

	leave := NewLeaveStatus("maria", at)
	req.Equal("maria sai da sala...", leave.Text)
	req.Equal(Broadcast, leave.To)
	req.Equal(TypeStatus, leave.Type)
}
