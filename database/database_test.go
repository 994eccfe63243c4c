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

package database_test

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestNewInMemory(t *testing.T) {
	db := newTestDatabase(t)
	assert.NotNil(t, db.Blob())
	assert.NotNil(t, db.Metadata())
	assert.Equal(t, "", db.DataDir())
}

func TestNewFreshStore(t *testing.T) {
	// A fresh store has no commit timestamp in either plugin; New must
	// treat that as clean rather than a mismatch
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	defer db.Close()
	ts, err := db.Metadata().GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)
}

func TestReopenAfterCommit(t *testing.T) {
	dataDir := t.TempDir()
	db, err := database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	txn := db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		return db.SetRecord(
			&models.Record{
				Kind:     1,
				RecordID: 1,
				Owner:    "alice",
				Version:  1,
			},
			[]byte{0x01},
			txn,
		)
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Matching commit timestamps on both stores after restart
	db2, err := database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	defer db2.Close()
	record, _, err := db2.GetRecord(1, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", record.Owner)
}

func TestRecordRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	body := []byte{0x83, 0x01, 0x02, 0x03}
	txn := db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		return db.SetRecord(
			&models.Record{
				Kind:     1,
				RecordID: 7,
				Owner:    "alice",
				Version:  1,
			},
			body,
			txn,
		)
	})
	require.NoError(t, err)

	record, gotBody, err := db.GetRecord(1, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", record.Owner)
	assert.Equal(t, uint64(1), uint64(record.Version))
	assert.Equal(t, body, gotBody)
}

func TestRecordNotFound(t *testing.T) {
	db := newTestDatabase(t)
	_, _, err := db.GetRecord(1, 999, nil)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestRecordUpdateReplacesIndexRow(t *testing.T) {
	db := newTestDatabase(t)
	err := db.SetRecord(
		&models.Record{Kind: 2, RecordID: 1, Owner: "alice", Version: 1},
		[]byte{0x01},
		nil,
	)
	require.NoError(t, err)
	err = db.SetRecord(
		&models.Record{Kind: 2, RecordID: 1, Owner: "bob", Version: 2},
		[]byte{0x02},
		nil,
	)
	require.NoError(t, err)

	record, body, err := db.GetRecord(2, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "bob", record.Owner)
	assert.Equal(t, uint64(2), uint64(record.Version))
	assert.Equal(t, []byte{0x02}, body)
}

func TestMaxRecordID(t *testing.T) {
	db := newTestDatabase(t)
	maxID, err := db.MaxRecordID(3, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), maxID)
	for _, id := range []uint64{2, 9, 5} {
		err = db.SetRecord(
			&models.Record{Kind: 3, RecordID: types.Uint64(id), Owner: "alice", Version: 1},
			[]byte{0x01},
			nil,
		)
		require.NoError(t, err)
	}
	maxID, err = db.MaxRecordID(3, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), maxID)
}

func TestTxnRollbackDiscardsWrites(t *testing.T) {
	db := newTestDatabase(t)
	testErr := errors.New("boom")
	txn := db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if err := db.SetRecord(
			&models.Record{Kind: 4, RecordID: 1, Owner: "alice", Version: 1},
			[]byte{0x01},
			txn,
		); err != nil {
			return err
		}
		return testErr
	})
	assert.ErrorIs(t, err, testErr)

	_, _, err = db.GetRecord(4, 1, nil)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestCommitTimestampsMatchAfterCommit(t *testing.T) {
	db := newTestDatabase(t)
	err := db.SetRecord(
		&models.Record{Kind: 5, RecordID: 1, Owner: "alice", Version: 1},
		[]byte{0x01},
		nil,
	)
	require.NoError(t, err)

	metadataTimestamp, err := db.Metadata().GetCommitTimestamp()
	require.NoError(t, err)
	blobTimestamp, err := db.Blob().GetCommitTimestamp()
	require.NoError(t, err)
	assert.NotEqual(t, int64(0), metadataTimestamp)
	assert.Equal(t, metadataTimestamp, blobTimestamp)
}

func TestAccountCredit(t *testing.T) {
	db := newTestDatabase(t)
	_, err := db.GetAccount("alice", nil)
	assert.ErrorIs(t, err, models.ErrAccountNotFound)

	require.NoError(t, db.CreditAccount("alice", 100, nil))
	require.NoError(t, db.CreditAccount("alice", 250, nil))

	account, err := db.GetAccount("alice", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(350), uint64(account.Balance))
}

func TestListingLifecycle(t *testing.T) {
	db := newTestDatabase(t)
	newListing := &models.Listing{AssetID: 42, Seller: "alice", Price: 1000}
	require.NoError(t, db.CreateListing(newListing, nil))
	listingID := uint64(newListing.ID)
	require.NotEqual(t, uint64(0), listingID)

	listing, err := db.GetListing(listingID, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", listing.Seller)
	assert.Equal(t, uint64(42), uint64(listing.AssetID))
	assert.Equal(t, uint64(1000), uint64(listing.Price))
	assert.True(t, listing.Active)

	require.NoError(t, db.CloseListing(listingID, nil))
	listing, err = db.GetListing(listingID, nil)
	require.NoError(t, err)
	assert.False(t, listing.Active)

	err = db.CloseListing(listingID, nil)
	assert.ErrorIs(t, err, models.ErrListingNotFound)
}

func TestTaskReviews(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.AddTaskReview(
		&models.TaskReview{TaskID: 1, Validator: "val1", Pass: true},
		nil,
	))
	require.NoError(t, db.AddTaskReview(
		&models.TaskReview{TaskID: 1, Validator: "val2", Pass: false},
		nil,
	))

	reviews, err := db.GetTaskReviews(1, nil)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestGovernanceVotes(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.AddGovernanceVote(
		&models.GovernanceVote{ProposalID: 1, Voter: "alice", Support: true, Weight: 10},
		nil,
	))
	votes, err := db.GetGovernanceVotes(1, nil)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "alice", votes[0].Voter)
	assert.True(t, votes[0].Support)
	assert.Equal(t, uint64(10), uint64(votes[0].Weight))
}

func TestUpgradeAuthorizations(t *testing.T) {
	db := newTestDatabase(t)
	digest := make([]byte, 32)
	digest[0] = 0xde
	require.NoError(t, db.AddUpgradeAuthorization(
		&models.UpgradeAuthorization{ProposalID: 3, Digest: digest},
		nil,
	))
	auths, err := db.GetUpgradeAuthorizations(nil)
	require.NoError(t, err)
	require.Len(t, auths, 1)
	assert.Equal(t, digest, auths[0].Digest)
}
