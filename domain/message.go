// Package domain contains core concepts of the chat room.
// This file defines Message events and related rules.
// Messages are immutable once created.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Broadcast is the reserved recipient meaning "everyone in the room".
const Broadcast = "Todos"

type MessageType string

const (
	TypeMessage        MessageType = "message"
	TypePrivateMessage MessageType = "private_message"
	TypeStatus         MessageType = "status"
)

// Message represents an immutable chat event, either posted by a
// participant or synthesized by the system on join/leave.
// ID only disambiguates store keys; it never reaches the wire.
type Message struct {
	ID   uuid.UUID
	From string
	To   string
	Text string
	Type MessageType
	At   time.Time
}

// VisibleTo reports whether reader may see the message: recipients and
// senders see their own traffic, everyone sees broadcasts.
func (m Message) VisibleTo(reader string) bool {
	return m.To == reader || m.To == Broadcast || m.From == reader
}

// NewJoinStatus builds the broadcast announcement recorded when a
// participant enters the room.
func NewJoinStatus(name string, at time.Time) Message {
	return newStatus(name, name+" entra na sala...", at)
}

// NewLeaveStatus builds the broadcast announcement recorded when the
// reaper removes an inactive participant.
func NewLeaveStatus(name string, at time.Time) Message {
	return newStatus(name, name+" sai da sala...", at)
}

func newStatus(name, text string, at time.Time) Message {
	return Message{
		ID:   uuid.New(),
		From: name,
		To:   Broadcast,
		Text: text,
		Type: TypeStatus,
		At:   at,
	}
}
