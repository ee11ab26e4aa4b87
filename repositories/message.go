//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"sala-api/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

type IMessageRepository interface {
	Store(message domain.Message) error
	StoreAll(messages []domain.Message) error
	List() ([]domain.Message, error)
}

type MessageRepository struct {
	db *badger.DB
}

func NewMessageRepository(db *badger.DB) IMessageRepository {
	return &MessageRepository{db: db}
}

const messagePrefix = "msg:"

// messageRecord is the persisted form of a domain.Message. Timestamps are
// kept as unix nanos so records round-trip without timezone drift.
type messageRecord struct {
	ID   string `msgpack:"id"`
	From string `msgpack:"from"`
	To   string `msgpack:"to"`
	Text string `msgpack:"text"`
	Type string `msgpack:"type"`
	At   int64  `msgpack:"at"`
}

// Store persists a single message.
// The key is formatted as "msg:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using the UUID as a collision disconnector if two
//     messages arrive at the same nanosecond.
func (m *MessageRepository) Store(message domain.Message) error {
	data, err := msgpack.Marshal(fromMessage(message))
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(message), data)
	})
}

// StoreAll persists several messages in one transaction. The reaper relies
// on this so every departure notice of a sweep lands or none do.
func (m *MessageRepository) StoreAll(messages []domain.Message) error {
	encoded := make(map[string][]byte, len(messages))
	for _, message := range messages {
		data, err := msgpack.Marshal(fromMessage(message))
		if err != nil {
			return fmt.Errorf("marshal failed: %w", err)
		}
		encoded[string(messageKey(message))] = data
	}
	return m.db.Update(func(txn *badger.Txn) error {
		for key, data := range encoded {
			if err := txn.Set([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// List retrieves every message in chronological order. Thanks to the padded
// timestamp in the key, a forward prefix scan is already sorted by time.
func (m *MessageRepository) List() ([]domain.Message, error) {
	var rawValues [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				rawValues = append(rawValues, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(rawValues))
	for _, raw := range rawValues {
		var rec messageRecord
		if err = msgpack.Unmarshal(raw, &rec); err != nil {
			return nil, err
		}
		message, err := toMessage(rec)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// DecodeMessage decodes a stored message value. Inspection tooling reads
// raw badger values and needs the same codec as the repository.
func DecodeMessage(val []byte) (domain.Message, error) {
	var rec messageRecord
	if err := msgpack.Unmarshal(val, &rec); err != nil {
		return domain.Message{}, err
	}
	return toMessage(rec)
}

func messageKey(message domain.Message) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", messagePrefix, message.At.UnixNano(), message.ID))
}

func fromMessage(message domain.Message) messageRecord {
	return messageRecord{
		ID:   message.ID.String(),
		From: message.From,
		To:   message.To,
		Text: message.Text,
		Type: string(message.Type),
		At:   message.At.UnixNano(),
	}
}

func toMessage(rec messageRecord) (domain.Message, error) {
	parsedID, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:   parsedID,
		From: rec.From,
		To:   rec.To,
		Text: rec.Text,
		Type: domain.MessageType(rec.Type),
		At:   time.Unix(0, rec.At),
	}, nil
}
