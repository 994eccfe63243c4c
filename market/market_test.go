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

package market_test

import (
	"testing"
	"time"

	"github.com/blinklabs-io/magpie/asset"
	"github.com/blinklabs-io/magpie/capability"
	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/market"
	"github.com/blinklabs-io/magpie/royalty"
	"github.com/blinklabs-io/magpie/value"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	market   *market.Market
	assets   *asset.Manager
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
	custody, err := ledger.NewCustody(ledger.CustodyConfig{
		Database: db,
		Store:    store,
	})
	require.NoError(t, err)
	engine, err := royalty.NewEngine(royalty.EngineConfig{
		Accounts: accounts,
	})
	require.NoError(t, err)
	bus := event.NewEventBus(event.EventBusConfig{})
	t.Cleanup(bus.Stop)
	assets, err := asset.NewManager(asset.ManagerConfig{
		EventBus: bus,
		Store:    store,
		Accounts: accounts,
	})
	require.NoError(t, err)
	m, err := market.NewMarket(market.MarketConfig{
		EventBus: bus,
		Assets:   assets,
		Custody:  custody,
		Royalty:  engine,
	})
	require.NoError(t, err)
	_, tokens := capability.NewRegistry(capability.RegistryConfig{})
	return &testEnv{
		market:   m,
		assets:   assets,
		accounts: accounts,
		bus:      bus,
		tokens:   tokens,
	}
}

func mintTestAsset(
	t *testing.T,
	env *testEnv,
	creator ledger.Identity,
	recipients []ledger.Identity,
	basisPoints []uint16,
) *asset.Asset {
	t.Helper()
	digest, err := multihash.Sum([]byte("dataset"), multihash.SHA2_256, -1)
	require.NoError(t, err)
	minted, err := env.assets.Mint(
		env.tokens.Uploader,
		creator,
		digest,
		"s3://bucket/dataset",
		nil,
		recipients,
		basisPoints,
	)
	require.NoError(t, err)
	return minted
}

func TestListAndBuy(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(
		t,
		env,
		"alice",
		[]ledger.Identity{"alice", "bob"},
		[]uint16{7000, 3000},
	)
	_, listedCh := env.bus.Subscribe(market.AssetListedEventType)
	_, purchasedCh := env.bus.Subscribe(market.AssetPurchasedEventType)

	listingID, err := env.market.List("alice", minted.ID, 1000)
	require.NoError(t, err)

	owner, err := env.assets.Owner(minted.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.CustodyIdentity, owner)

	select {
	case evt := <-listedCh:
		data, ok := evt.Data.(market.AssetListedEvent)
		require.True(t, ok)
		assert.Equal(t, listingID, data.ListingID)
		assert.Equal(t, minted.ID, data.AssetID)
		assert.Equal(t, uint64(1000), data.Price)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for listed event")
	}

	bought, err := env.market.Buy("carol", listingID, value.NewPool(1000))
	require.NoError(t, err)
	assert.Equal(t, minted.ID, bought.ID)

	owner, err = env.assets.Owner(minted.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Identity("carol"), owner)

	// Payment split per the royalty table
	balance, err := env.accounts.BalanceOf("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(700), balance)
	balance, err = env.accounts.BalanceOf("bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(300), balance)

	select {
	case evt := <-purchasedCh:
		data, ok := evt.Data.(market.AssetPurchasedEvent)
		require.True(t, ok)
		assert.Equal(t, minted.ID, data.AssetID)
		assert.Equal(t, ledger.Identity("carol"), data.Buyer)
		assert.Equal(t, uint64(1000), data.Price)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for purchased event")
	}
}

func TestListValidation(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(
		t,
		env,
		"alice",
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)

	_, err := env.market.List("alice", minted.ID, 0)
	assert.ErrorIs(t, err, market.ErrInvalidPrice)

	_, err = env.market.List("mallory", minted.ID, 1000)
	assert.ErrorIs(t, err, ledger.ErrNotAuthorized)

	require.NoError(
		t,
		env.assets.SetActive(env.tokens.Governor, minted.ID, false),
	)
	_, err = env.market.List("alice", minted.ID, 1000)
	assert.ErrorIs(t, err, market.ErrAssetFrozen)
}

func TestBuyInsufficientPayment(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(
		t,
		env,
		"alice",
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	listingID, err := env.market.List("alice", minted.ID, 1000)
	require.NoError(t, err)

	payment := value.NewPool(999)
	_, err = env.market.Buy("carol", listingID, payment)
	assert.ErrorIs(t, err, ledger.ErrInsufficientPayment)
	// Payment untouched, listing still live
	assert.Equal(t, uint64(999), payment.Amount())

	_, err = env.market.Buy("carol", listingID, value.NewPool(1000))
	require.NoError(t, err)
}

func TestBuyFrozenAfterListing(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(
		t,
		env,
		"alice",
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	listingID, err := env.market.List("alice", minted.ID, 1000)
	require.NoError(t, err)

	require.NoError(
		t,
		env.assets.SetActive(env.tokens.Governor, minted.ID, false),
	)
	payment := value.NewPool(1000)
	_, err = env.market.Buy("carol", listingID, payment)
	assert.ErrorIs(t, err, market.ErrAssetFrozen)
	assert.Equal(t, uint64(1000), payment.Amount())
}

func TestBuyTwice(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(
		t,
		env,
		"alice",
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	listingID, err := env.market.List("alice", minted.ID, 1000)
	require.NoError(t, err)

	_, err = env.market.Buy("carol", listingID, value.NewPool(1000))
	require.NoError(t, err)

	// Relisting by the new owner works; the dead listing does not
	payment := value.NewPool(1000)
	_, err = env.market.Buy("dave", listingID, payment)
	assert.ErrorIs(t, err, ledger.ErrListingNotFound)
	assert.Equal(t, uint64(1000), payment.Amount())

	_, err = env.market.List("carol", minted.ID, 2000)
	require.NoError(t, err)
}

func TestBuyOverpaymentDistributed(t *testing.T) {
	env := newTestEnv(t)
	minted := mintTestAsset(
		t,
		env,
		"alice",
		[]ledger.Identity{"alice"},
		[]uint16{10000},
	)
	listingID, err := env.market.List("alice", minted.ID, 1000)
	require.NoError(t, err)

	_, err = env.market.Buy("carol", listingID, value.NewPool(1500))
	require.NoError(t, err)

	balance, err := env.accounts.BalanceOf("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), balance)
}
