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

package ledger_test

import (
	"testing"

	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustody(
	t *testing.T,
) (*ledger.Custody, *ledger.Store, *database.Database) {
	t.Helper()
	db := newTestDatabase(t)
	store := newTestStore(t, db)
	custody, err := ledger.NewCustody(ledger.CustodyConfig{
		Database: db,
		Store:    store,
	})
	require.NoError(t, err)
	return custody, store, db
}

func TestCustodyPlaceAndList(t *testing.T) {
	custody, store, _ := newTestCustody(t)
	recordID, err := store.CreateRecord(
		ledger.RecordKindAsset,
		"alice",
		testBody{Name: "asset"},
	)
	require.NoError(t, err)

	listingID, err := custody.PlaceAndList(
		"alice",
		ledger.RecordKindAsset,
		recordID,
		1000,
	)
	require.NoError(t, err)

	owner, _, err := store.GetRecord(ledger.RecordKindAsset, recordID, nil)
	require.NoError(t, err)
	assert.Equal(t, ledger.CustodyIdentity, owner)

	listing, err := custody.Listing(listingID)
	require.NoError(t, err)
	assert.Equal(t, recordID, listing.RecordID)
	assert.Equal(t, ledger.Identity("alice"), listing.Seller)
	assert.Equal(t, uint64(1000), listing.Price)
	assert.True(t, listing.Active)
}

func TestCustodyPlaceRequiresOwnership(t *testing.T) {
	custody, store, _ := newTestCustody(t)
	recordID, err := store.CreateRecord(
		ledger.RecordKindAsset,
		"alice",
		testBody{Name: "asset"},
	)
	require.NoError(t, err)

	_, err = custody.PlaceAndList(
		"mallory",
		ledger.RecordKindAsset,
		recordID,
		1000,
	)
	assert.ErrorIs(t, err, ledger.ErrNotAuthorized)

	// Record stays with its owner
	owner, _, err := store.GetRecord(ledger.RecordKindAsset, recordID, nil)
	require.NoError(t, err)
	assert.Equal(t, ledger.Identity("alice"), owner)
}

func TestCustodyTakeListed(t *testing.T) {
	custody, store, _ := newTestCustody(t)
	recordID, err := store.CreateRecord(
		ledger.RecordKindAsset,
		"alice",
		testBody{Name: "asset"},
	)
	require.NoError(t, err)
	listingID, err := custody.PlaceAndList(
		"alice",
		ledger.RecordKindAsset,
		recordID,
		1000,
	)
	require.NoError(t, err)

	listing, err := custody.TakeListed(listingID, "bob")
	require.NoError(t, err)
	assert.Equal(t, recordID, listing.RecordID)

	owner, _, err := store.GetRecord(ledger.RecordKindAsset, recordID, nil)
	require.NoError(t, err)
	assert.Equal(t, ledger.Identity("bob"), owner)

	// A second taker finds the listing gone
	_, err = custody.TakeListed(listingID, "carol")
	assert.ErrorIs(t, err, ledger.ErrListingNotFound)
}

func TestCustodyTakeMissingListing(t *testing.T) {
	custody, _, _ := newTestCustody(t)
	_, err := custody.TakeListed(999, "bob")
	assert.ErrorIs(t, err, ledger.ErrListingNotFound)
}
