package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/dgraph-io/badger/v4"
)

const keyPrefixGame = "game/"

var ErrNotFound = errors.New("game record not found")

// GameRecord is the persisted form of a game: its accepted moves, replayed on load.
type GameRecord struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Moves     []model.Move  `json:"moves"`
	Outcome   model.Outcome `json:"outcome"`
	Winner    model.Color   `json:"winner,omitempty"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

type Options struct {
	// Dir is the database directory. Ignored when InMemory is set.
	Dir      string
	InMemory bool
}

func Open(o Options) (*Storage, error) {
	opts := badger.DefaultOptions(o.Dir)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open game store: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(keyPrefixGame + id)
}

// SaveGame writes rec, stamping UpdatedAt.
func (s *Storage) SaveGame(rec GameRecord) error {
	rec.UpdatedAt = time.Now()
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

func (s *Storage) LoadGame(id string) (GameRecord, error) {
	var rec GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	return rec, err
}

// ListGames returns every stored record in key order.
func (s *Storage) ListGames() ([]GameRecord, error) {
	records := []GameRecord{}
	prefix := []byte(keyPrefixGame)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			records = append(records, rec)
		}
		return nil
	})

	return records, err
}

func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(gameKey(id))
	})
}
