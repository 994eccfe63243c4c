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

package asset_test

import (
	"testing"
	"time"

	"github.com/blinklabs-io/magpie/asset"
	"github.com/blinklabs-io/magpie/capability"
	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/royalty"
	"github.com/blinklabs-io/magpie/value"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	manager  *asset.Manager
	accounts *ledger.Accounts
	bus      *event.EventBus
	tokens   capability.InitialTokens
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	store, err := ledger.NewStore(ledger.StoreConfig{Database: db})
	require.NoError(t, err)
	accounts, err := ledger.NewAccounts(ledger.AccountsConfig{Database: db})
	require.NoError(t, err)
	bus := event.NewEventBus(event.EventBusConfig{})
	t.Cleanup(bus.Stop)
	manager, err := asset.NewManager(asset.ManagerConfig{
		EventBus: bus,
		Store:    store,
		Accounts: accounts,
	})
	require.NoError(t, err)
	_, tokens := capability.NewRegistry(capability.RegistryConfig{})
	return &testEnv{
		manager:  manager,
		accounts: accounts,
		bus:      bus,
		tokens:   tokens,
	}
}

func testContentHash(t *testing.T, content string) []byte {
	t.Helper()
	digest, err := multihash.Sum([]byte(content), multihash.SHA2_256, -1)
	require.NoError(t, err)
	return digest
}

func testStorageRef(t *testing.T, content string) string {
	t.Helper()
	digest, err := multihash.Sum([]byte(content), multihash.SHA2_256, -1)
	require.NoError(t, err)
	return "ipfs://" + cid.NewCidV1(cid.Raw, digest).String()
}

func mintTestAsset(t *testing.T, env *testEnv) *asset.Asset {
	t.Helper()
	minted, err := env.manager.Mint(
		env.tokens.Uploader,
		"alice",
		testContentHash(t, "dataset"),
		testStorageRef(t, "dataset"),
		[]byte("license"),
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	require.NoError(t, err)
	return minted
}

func waitForEvent(t *testing.T, ch <-chan event.Event) event.Event {
	t.Helper()
	select {
	case evt := <-ch:
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return event.Event{}
	}
}

func TestMint(t *testing.T) {
	env := newTestEnv(t)
	_, mintedCh := env.bus.Subscribe(asset.AssetMintedEventType)
	_, ticketCh := env.bus.Subscribe(asset.StorageTicketEventType)

	contentHash := testContentHash(t, "dataset")
	minted, err := env.manager.Mint(
		env.tokens.Uploader,
		"alice",
		contentHash,
		testStorageRef(t, "dataset"),
		[]byte("license"),
		[]ledger.Identity{"alice", "bob"},
		[]uint16{7000, 3000},
	)
	require.NoError(t, err)
	assert.Equal(t, ledger.Identity("alice"), minted.Creator)
	assert.True(t, minted.Active)
	assert.Equal(t, uint64(1), minted.Version)
	require.Len(t, minted.Royalties, 2)

	got, err := env.manager.Get(minted.ID)
	require.NoError(t, err)
	assert.Equal(t, minted.ID, got.ID)
	assert.Equal(t, contentHash, got.ContentHash)
	assert.Equal(t, minted.Royalties, got.Royalties)

	owner, err := env.manager.Owner(minted.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Identity("alice"), owner)

	mintedEvt := waitForEvent(t, mintedCh)
	data, ok := mintedEvt.Data.(asset.AssetMintedEvent)
	require.True(t, ok)
	assert.Equal(t, minted.ID, data.AssetID)
	assert.Equal(t, ledger.Identity("alice"), data.Creator)
	assert.Equal(t, contentHash, data.ContentHash)

	ticketEvt := waitForEvent(t, ticketCh)
	ticket, ok := ticketEvt.Data.(asset.StorageTicketEvent)
	require.True(t, ok)
	assert.Equal(t, minted.ID, ticket.AssetID)
	assert.Equal(t, uint64(1), ticket.Version)
}

func TestMintRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.manager.Mint(
		nil,
		"alice",
		testContentHash(t, "dataset"),
		testStorageRef(t, "dataset"),
		nil,
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	assert.ErrorIs(t, err, capability.ErrNotAuthorized)
}

func TestMintValidation(t *testing.T) {
	env := newTestEnv(t)

	// Royalty sum != 10000
	_, err := env.manager.Mint(
		env.tokens.Uploader,
		"alice",
		testContentHash(t, "dataset"),
		testStorageRef(t, "dataset"),
		nil,
		[]ledger.Identity{"alice"},
		[]uint16{9999},
	)
	assert.ErrorIs(t, err, royalty.ErrInvalidRoyalty)

	// Content hash must decode as a multihash
	_, err = env.manager.Mint(
		env.tokens.Uploader,
		"alice",
		[]byte{0xff, 0x00},
		testStorageRef(t, "dataset"),
		nil,
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	assert.ErrorIs(t, err, asset.ErrInvalidContentHash)

	// ipfs refs must carry a parseable CID
	_, err = env.manager.Mint(
		env.tokens.Uploader,
		"alice",
		testContentHash(t, "dataset"),
		"ipfs://not-a-cid",
		nil,
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	assert.ErrorIs(t, err, asset.ErrInvalidStorageRef)

	// Empty refs are rejected
	_, err = env.manager.Mint(
		env.tokens.Uploader,
		"alice",
		testContentHash(t, "dataset"),
		"",
		nil,
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	assert.ErrorIs(t, err, asset.ErrInvalidStorageRef)

	// Non-ipfs schemes pass through
	minted, err := env.manager.Mint(
		env.tokens.Uploader,
		"alice",
		testContentHash(t, "dataset"),
		"s3://bucket/dataset",
		nil,
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/dataset", minted.StorageRef)
}

func TestUpdate(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(t, env)

	newRef := testStorageRef(t, "dataset-v2")
	require.NoError(
		t,
		env.manager.Update("alice", minted.ID, &newRef, nil),
	)
	got, err := env.manager.Get(minted.ID)
	require.NoError(t, err)
	assert.Equal(t, newRef, got.StorageRef)
	assert.Equal(t, []byte("license"), got.LicenseHash)
	assert.Equal(t, uint64(2), got.Version)

	// License-only update leaves the storage ref alone
	require.NoError(
		t,
		env.manager.Update("alice", minted.ID, nil, []byte("license-v2")),
	)
	got, err = env.manager.Get(minted.ID)
	require.NoError(t, err)
	assert.Equal(t, newRef, got.StorageRef)
	assert.Equal(t, []byte("license-v2"), got.LicenseHash)
	assert.Equal(t, uint64(3), got.Version)
}

func TestUpdateRequiresCreator(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(t, env)

	err := env.manager.Update("mallory", minted.ID, nil, []byte("stolen"))
	assert.ErrorIs(t, err, capability.ErrNotAuthorized)

	got, err := env.manager.Get(minted.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Version)
}

func TestUpdateMissingAsset(t *testing.T) {
	env := newTestEnv(t)
	err := env.manager.Update("alice", 999, nil, []byte("license"))
	assert.ErrorIs(t, err, ledger.ErrRecordNotFound)
}

func TestSetActive(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(t, env)

	require.NoError(
		t,
		env.manager.SetActive(env.tokens.Governor, minted.ID, false),
	)
	got, err := env.manager.Get(minted.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	// Admin tokens also carry freeze authority
	require.NoError(
		t,
		env.manager.SetActive(env.tokens.Admin, minted.ID, true),
	)
	got, err = env.manager.Get(minted.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestSetActiveRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(t, env)
	err := env.manager.SetActive(nil, minted.ID, false)
	assert.ErrorIs(t, err, capability.ErrNotAuthorized)
}

func TestPurchaseRoyalty(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(t, env)

	payment := value.NewPool(10000)
	remainder, err := env.manager.PurchaseRoyalty(minted.ID, 10000, payment)
	require.NoError(t, err)
	// Flat 5% to the creator, remainder back to the caller
	assert.Equal(t, uint64(9500), remainder.Amount())

	balance, err := env.accounts.BalanceOf("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(500), balance)
}

func TestPurchaseRoyaltyInsufficientPayment(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(t, env)

	payment := value.NewPool(100)
	_, err := env.manager.PurchaseRoyalty(minted.ID, 10000, payment)
	assert.ErrorIs(t, err, ledger.ErrInsufficientPayment)
	// Payment untouched on failure
	assert.Equal(t, uint64(100), payment.Amount())
}

func TestPurchaseRoyaltyZeroPrice(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(t, env)

	payment := value.NewPool(50)
	remainder, err := env.manager.PurchaseRoyalty(minted.ID, 0, payment)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), remainder.Amount())

	balance, err := env.accounts.BalanceOf("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}
