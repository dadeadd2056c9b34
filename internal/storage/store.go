// Package storage persists the whole repository store as a single JSON blob
// under one BadgerDB key. Consumers read and write the blob wholesale; there
// are no partial updates.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/forgesim/forgesim/internal/vcs"
)

const blobKey = "forgesim:repositories"

type Config struct {
	// SeedFile optionally overrides the embedded seed snapshot.
	SeedFile string
}

type Store struct {
	db       *badger.DB
	seedFile string

	logger *zap.Logger
}

func NewStore(db *badger.DB, cfg Config, logger *zap.Logger) *Store {
	return &Store{
		db:       db,
		seedFile: cfg.SeedFile,
		logger:   logger,
	}
}

// Save writes the serialized store under the blob key.
func (s *Store) Save(_ context.Context, repositories []vcs.Repository) error {
	data, err := vcs.EncodeRepositories(repositories)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(blobKey), data)
	})
	if err != nil {
		return fmt.Errorf("failed to persist store: %w", err)
	}
	return nil
}

// Load reads the persisted blob. found is false when no blob has been
// written yet.
func (s *Store) Load(_ context.Context) (repositories []vcs.Repository, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(blobKey))
		if errors.Is(getErr, badger.ErrKeyNotFound) {
			return nil
		}
		if getErr != nil {
			return fmt.Errorf("failed to read store blob: %w", getErr)
		}

		return item.Value(func(val []byte) error {
			decoded, decErr := vcs.DecodeRepositories(val)
			if decErr != nil {
				return decErr
			}
			repositories = decoded
			found = true
			return nil
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load store: %w", err)
	}
	return repositories, found, nil
}

// Hydrate implements vcs.Persister: it returns the persisted store, falling
// back to the seed snapshot when no blob exists. Seed data is written
// through immediately so subsequent loads hit the blob.
func (s *Store) Hydrate(ctx context.Context) ([]vcs.Repository, error) {
	repositories, found, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		s.logger.Info("loaded persisted store", zap.Int("repositories", len(repositories)))
		return repositories, nil
	}

	repositories, err = s.seed()
	if err != nil {
		return nil, err
	}
	s.logger.Info("seeded store", zap.Int("repositories", len(repositories)))

	if saveErr := s.Save(ctx, repositories); saveErr != nil {
		// Seed write-through is best effort, same as every later save.
		s.logger.Warn("failed to write through seed data", zap.Error(saveErr))
	}
	return repositories, nil
}

func (s *Store) seed() ([]vcs.Repository, error) {
	data := seedSnapshot
	if s.seedFile != "" {
		fileData, err := os.ReadFile(s.seedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = fileData
	}

	repositories, err := vcs.DecodeSeed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed snapshot: %w", err)
	}
	return repositories, nil
}

var _ vcs.Persister = (*Store)(nil)
