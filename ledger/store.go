// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
	"github.com/fxamacker/cbor/v2"
)

// StoreConfig is the configuration for a record Store
type StoreConfig struct {
	Logger   *slog.Logger
	Database *database.Database
}

// Store persists uniquely owned records. Each record has a CBOR-encoded
// body in the blob store and an index row carrying its owner and a version
// counter used for compare-and-swap updates.
type Store struct {
	logger  *slog.Logger
	db      *database.Database
	mutex   sync.Mutex
	nextIDs map[RecordKind]uint64
}

// NewStore creates a record store over the given database
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	s := &Store{
		logger:  cfg.Logger,
		db:      cfg.Database,
		nextIDs: make(map[RecordKind]uint64),
	}
	if s.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return s, nil
}

// nextID allocates the next record ID for a kind. The counter is seeded
// from the index on first use so IDs survive restarts.
func (s *Store) nextID(kind RecordKind) (uint64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	next, ok := s.nextIDs[kind]
	if !ok {
		maxID, err := s.db.MaxRecordID(uint8(kind), nil)
		if err != nil {
			return 0, fmt.Errorf("failed to seed record ID counter: %w", err)
		}
		next = maxID + 1
	}
	s.nextIDs[kind] = next + 1
	return next, nil
}

// CreateRecord persists a new record owned by the given identity and
// returns its ID. The first version of every record is 1.
func (s *Store) CreateRecord(
	kind RecordKind,
	owner Identity,
	body any,
) (uint64, error) {
	data, err := cbor.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode record body: %w", err)
	}
	id, err := s.nextID(kind)
	if err != nil {
		return 0, err
	}
	txn := s.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		return s.db.SetRecord(
			&models.Record{
				Kind:     uint8(kind),
				RecordID: types.Uint64(id),
				Owner:    string(owner),
				Version:  1,
			},
			data,
			txn,
		)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug(
		"created record",
		"component", "ledger",
		"kind", uint8(kind),
		"record_id", id,
		"owner", string(owner),
	)
	return id, nil
}

// GetRecord loads a record body into out (skipped when out is nil) and
// returns the record's owner and current version
func (s *Store) GetRecord(
	kind RecordKind,
	id uint64,
	out any,
) (Identity, uint64, error) {
	record, body, err := s.db.GetRecord(uint8(kind), id, nil)
	if err != nil {
		return "", 0, err
	}
	if out != nil {
		if err := cbor.Unmarshal(body, out); err != nil {
			return "", 0, fmt.Errorf("failed to decode record body: %w", err)
		}
	}
	return Identity(record.Owner), uint64(record.Version), nil
}

// UpdateRecord replaces a record body if the stored version still matches
// expectedVersion, bumping the version by one. A version mismatch fails
// with a RecordConflictError and writes nothing.
func (s *Store) UpdateRecord(
	kind RecordKind,
	id uint64,
	expectedVersion uint64,
	body any,
) error {
	data, err := cbor.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode record body: %w", err)
	}
	txn := s.db.Transaction(true)
	return txn.Do(func(txn *database.Txn) error {
		record, err := s.db.Metadata().GetRecord(uint8(kind), id, txn.Metadata())
		if err != nil {
			return err
		}
		if uint64(record.Version) != expectedVersion {
			return RecordConflictError{
				Kind:            kind,
				RecordID:        id,
				ExpectedVersion: expectedVersion,
				ActualVersion:   uint64(record.Version),
			}
		}
		record.Version = types.Uint64(expectedVersion + 1)
		return s.db.SetRecord(record, data, txn)
	})
}

// TransferOwnership moves a record from one owner to another. The transfer
// fails with ErrNotAuthorized unless from matches the current owner, and
// bumps the record version so concurrent version-checked updates lose.
func (s *Store) TransferOwnership(
	kind RecordKind,
	id uint64,
	from Identity,
	to Identity,
) error {
	txn := s.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		record, body, err := s.db.GetRecord(uint8(kind), id, txn)
		if err != nil {
			return err
		}
		if Identity(record.Owner) != from {
			return fmt.Errorf(
				"record owned by %s, not %s: %w",
				record.Owner,
				from,
				ErrNotAuthorized,
			)
		}
		record.Owner = string(to)
		record.Version++
		return s.db.SetRecord(record, body, txn)
	})
	if err != nil {
		return err
	}
	s.logger.Debug(
		"transferred record",
		"component", "ledger",
		"kind", uint8(kind),
		"record_id", id,
		"from", string(from),
		"to", string(to),
	)
	return nil
}
