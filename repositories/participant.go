//go:generate go run go.uber.org/mock/mockgen -source=participant.go -destination=../mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	stderrors "errors"
	"fmt"
	"time"

	"sala-api/domain"
	"sala-api/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"
)

type IParticipantRepository interface {
	Create(participant domain.Participant) error
	FindByName(name string) (domain.Participant, error)
	List() ([]domain.Participant, error)
	UpdateLastStatus(name string, at time.Time) error
	FindInactive(threshold time.Time) ([]domain.Participant, error)
	DeleteAll(names []string) error
}

type ParticipantRepository struct {
	db *badger.DB
}

func NewParticipantRepository(db *badger.DB) IParticipantRepository {
	return &ParticipantRepository{db: db}
}

const participantPrefix = "participant:"

// participantRecord is the persisted form of a domain.Participant.
// LastStatus is kept as unix millis, the granularity heartbeats carry.
type participantRecord struct {
	Name       string `msgpack:"name"`
	LastStatus int64  `msgpack:"last_status"`
}

// Create persists a participant under "participant:{name}", failing with
// ErrNameTaken when the key already exists. The existence check and the
// insert share one transaction, so two concurrent registrations of the
// same name cannot both succeed.
func (r *ParticipantRepository) Create(participant domain.Participant) error {
	data, err := msgpack.Marshal(fromParticipant(participant))
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := participantKey(participant.Name)
		_, err := txn.Get(key)
		if err == nil {
			return errors.ErrNameTaken
		}
		if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
}

func (r *ParticipantRepository) FindByName(name string) (domain.Participant, error) {
	var rec participantRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(participantKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &rec)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Participant{}, errors.ErrParticipantNotFound
	}
	if err != nil {
		return domain.Participant{}, err
	}
	return toParticipant(rec), nil
}

// List returns every active participant. A full prefix scan is fine at
// room scale; there is no pagination on this collection.
func (r *ParticipantRepository) List() ([]domain.Participant, error) {
	return r.scan(func(domain.Participant) bool { return true })
}

// FindInactive returns the participants whose last heartbeat is at or
// before threshold. The reaper calls this once per sweep.
func (r *ParticipantRepository) FindInactive(threshold time.Time) ([]domain.Participant, error) {
	return r.scan(func(p domain.Participant) bool { return p.StaleAt(threshold) })
}

func (r *ParticipantRepository) scan(keep func(domain.Participant) bool) ([]domain.Participant, error) {
	var participants []domain.Participant
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(participantPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec participantRecord
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			if p := toParticipant(rec); keep(p) {
				participants = append(participants, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// UpdateLastStatus refreshes the heartbeat timestamp in one
// read-modify-write transaction.
func (r *ParticipantRepository) UpdateLastStatus(name string, at time.Time) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		var rec participantRecord
		if err = item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &rec)
		}); err != nil {
			return err
		}

		rec.LastStatus = at.UnixMilli()
		data, err := msgpack.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrParticipantNotFound
	}
	return err
}

// DeleteAll removes the named participants in one transaction. Names
// without a key are silently skipped; the sweep that produced them may
// race with a re-registration and deletion stays best-effort.
func (r *ParticipantRepository) DeleteAll(names []string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		for _, name := range names {
			if err := txn.Delete(participantKey(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

// DecodeParticipant decodes a stored participant value for inspection
// tooling.
func DecodeParticipant(val []byte) (domain.Participant, error) {
	var rec participantRecord
	if err := msgpack.Unmarshal(val, &rec); err != nil {
		return domain.Participant{}, err
	}
	return toParticipant(rec), nil
}

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

func fromParticipant(p domain.Participant) participantRecord {
	return participantRecord{
		Name:       p.Name,
		LastStatus: p.LastStatus.UnixMilli(),
	}
}

func toParticipant(rec participantRecord) domain.Participant {
	return domain.Participant{
		Name:       rec.Name,
		LastStatus: time.UnixMilli(rec.LastStatus),
	}
}
