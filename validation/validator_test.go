package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck_RegisterPayload(t *testing.T) {
	t.Run("should pass with a non-empty name", func(t *testing.T) {
		req := require.New(t)
		req.Empty(Check(RegisterPayload{Name: "maria"}))
	})

	t.Run("should fail with a missing name", func(t *testing.T) {
		req := require.New(t)
		violations := Check(RegisterPayload{})
		req.Equal([]string{"name must be a non-empty string"}, violations)
	})
}

func TestCheck_MessagePayload(t *testing.T) {
	t.Run("should pass a broadcast message", func(t *testing.T) {
		req := require.New(t)
		payload := MessagePayload{To: "Todos", Text: "oi pessoal", Type: "message"}
		req.Empty(Check(payload))
	})

	t.Run("should pass a private message", func(t *testing.T) {
		req := require.New(t)
		payload := MessagePayload{To: "joao", Text: "oi", Type: "private_message"}
		req.Empty(Check(payload))
	})

	t.Run("should report every violation at once", func(t *testing.T) {
		req := require.New(t)
		violations := Check(MessagePayload{})
		req.Len(violations, 3)
		req.Contains(violations, "to must be a non-empty string")
		req.Contains(violations, "text must be a non-empty string")
		req.Contains(violations, "type must be a non-empty string")
	})

	t.Run("should refuse posting a status type", func(t *testing.T) {
		req := require.New(t)
		violations := Check(MessagePayload{To: "Todos", Text: "oi", Type: "status"})
		req.Equal([]string{"type must be one of [message private_message]"}, violations)
	})

	t.Run("should refuse an unknown type", func(t *testing.T) {
		req := require.New(t)
		violations := Check(MessagePayload{To: "Todos", Text: "oi", Type: "shout"})
		req.Equal([]string{"type must be one of [message private_message]"}, violations)
	})
}
