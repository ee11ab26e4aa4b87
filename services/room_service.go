//go:generate go run go.uber.org/mock/mockgen -source=room_service.go -destination=../mocks/mock_room_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"sala-api/contract"
	"sala-api/domain"
	"sala-api/errors"
	"sala-api/moderation"
	"sala-api/observability"
	"sala-api/repositories"
	"sala-api/validation"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IRoomService interface {
	Register(ctx context.Context, name string) error
	ListParticipants() ([]domain.Participant, error)
	PostMessage(ctx context.Context, sender string, payload validation.MessagePayload) error
	ListMessages(reader string, limit *int) ([]domain.Message, error)
	Heartbeat(ctx context.Context, name string) error
	ReapInactive(ctx context.Context) (int, error)
}

type RoomService struct {
	participants    repositories.IParticipantRepository
	messages        repositories.IMessageRepository
	filter          *moderation.Filter // nil disables masking
	stats           *observability.RoomStats
	clock           contract.Clock
	inactivityLimit time.Duration
}

func NewRoomService(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	filter *moderation.Filter,
	stats *observability.RoomStats,
	clock contract.Clock,
	inactivityLimit time.Duration,
) IRoomService {
	return &RoomService{
		participants:    participants,
		messages:        messages,
		filter:          filter,
		stats:           stats,
		clock:           clock,
		inactivityLimit: inactivityLimit,
	}
}

// Register adds name to the room and announces the arrival to everyone.
func (s *RoomService) Register(_ context.Context, name string) error {
	// 1. Validate before touching the store; the full violation list goes
	// back to the client.
	if violations := validation.Check(validation.RegisterPayload{Name: name}); len(violations) > 0 {
		return errors.NewValidationError(violations...)
	}

	// 2. Insert the participant. Uniqueness is enforced by the store
	// transaction, not by a separate existence check.
	now := s.clock.Now()
	if err := s.participants.Create(domain.Participant{Name: name, LastStatus: now}); err != nil {
		return err
	}

	// 3. Announce the arrival. The participant is already in at this
	// point; a failed announcement surfaces as a store error.
	if err := s.messages.Store(domain.NewJoinStatus(name, now)); err != nil {
		return err
	}
	s.stats.IncrRegistered()
	return nil
}

func (s *RoomService) ListParticipants() ([]domain.Participant, error) {
	return s.participants.List()
}

// PostMessage persists a broadcast or private message from sender.
func (s *RoomService) PostMessage(_ context.Context, sender string, payload validation.MessagePayload) error {
	// 1. Validate the payload.
	if violations := validation.Check(payload); len(violations) > 0 {
		return errors.NewValidationError(violations...)
	}

	// 2. The sender must be in the room. Identity is asserted via header,
	// so this lookup is the only gate.
	if _, err := s.participants.FindByName(sender); err != nil {
		if stderrors.Is(err, errors.ErrParticipantNotFound) {
			return fmt.Errorf("%w: %q", errors.ErrUnknownSender, sender)
		}
		return err
	}

	// 3. Optionally mask banned words, then persist with the post time.
	text := payload.Text
	if s.filter != nil {
		text = s.filter.Apply(text)
	}

	if err := s.messages.Store(domain.Message{
		ID:   uuid.New(),
		From: sender,
		To:   payload.To,
		Text: text,
		Type: domain.MessageType(payload.Type),
		At:   s.clock.Now(),
	}); err != nil {
		return err
	}
	s.stats.IncrPosted()
	return nil
}

// ListMessages returns the messages reader may see, oldest first. A limit
// keeps only the most recent entries of the filtered result without
// disturbing their order.
func (s *RoomService) ListMessages(reader string, limit *int) ([]domain.Message, error) {
	all, err := s.messages.List()
	if err != nil {
		return nil, err
	}

	visible := lo.Filter(all, func(m domain.Message, _ int) bool {
		return m.VisibleTo(reader)
	})
	if limit != nil && len(visible) > *limit {
		visible = visible[len(visible)-*limit:]
	}
	return visible, nil
}

// Heartbeat refreshes the caller's lastStatus so the reaper leaves them alone.
func (s *RoomService) Heartbeat(_ context.Context, name string) error {
	if err := s.participants.UpdateLastStatus(name, s.clock.Now()); err != nil {
		return err
	}
	s.stats.IncrHeartbeats()
	return nil
}

// ReapInactive removes everyone silent for longer than the inactivity
// limit and returns how many were removed. Departure notices are recorded
// strictly before the deletes: a failed delete can leave a participant
// with a leave announcement already posted, and the next sweep picks them
// up again.
func (s *RoomService) ReapInactive(ctx context.Context) (int, error) {
	threshold := s.clock.Now().Add(-s.inactivityLimit)
	stale, err := s.participants.FindInactive(threshold)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	now := s.clock.Now()
	notices := lo.Map(stale, func(p domain.Participant, _ int) domain.Message {
		return domain.NewLeaveStatus(p.Name, now)
	})
	if err = s.messages.StoreAll(notices); err != nil {
		return 0, err
	}

	names := lo.Map(stale, func(p domain.Participant, _ int) string {
		return p.Name
	})
	if err = s.participants.DeleteAll(names); err != nil {
		return 0, err
	}
	s.stats.AddReaped(len(stale))
	return len(stale), nil
}
