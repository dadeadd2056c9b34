// Package badgerfx wires a BadgerDB instance into the fx lifecycle, logging
// through zap.
package badgerfx

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type Config struct {
	// Dir is the BadgerDB data directory.
	Dir string

	// InMemory keeps the whole database off disk; used by tests.
	InMemory bool
}

func (c Config) build() badger.Options {
	if c.InMemory {
		return badger.DefaultOptions("").WithInMemory(true)
	}
	// The workload is a handful of small values rewritten wholesale, so one
	// version per key is enough.
	return badger.DefaultOptions(c.Dir).WithNumVersionsToKeep(1)
}

func New(config Config, logger *zapLogger) (*badger.DB, error) {
	opts := config.build().WithLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}
	return db, nil
}
