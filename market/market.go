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

// Package market implements asset trading over marketplace custody.
// Listing moves an asset into custody; buying takes it out, settles the
// payment through the asset's royalty table, and hands ownership to the
// buyer. When two buyers race, exactly one wins.
package market

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/magpie/asset"
	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/royalty"
	"github.com/blinklabs-io/magpie/value"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrAssetFrozen is returned when listing or buying a frozen asset
	ErrAssetFrozen = errors.New("asset frozen")

	// ErrInvalidPrice is returned for zero-price listings
	ErrInvalidPrice = errors.New("invalid price")
)

const (
	AssetListedEventType    event.EventType = "market.asset_listed"
	AssetPurchasedEventType event.EventType = "market.asset_purchased"
)

// AssetListedEvent is emitted when an asset enters marketplace custody
type AssetListedEvent struct {
	ListingID uint64 `json:"listingId"`
	AssetID   uint64 `json:"assetId"`
	Price     uint64 `json:"price"`
}

// AssetPurchasedEvent is emitted when a listed asset changes hands. Price
// is the amount the buyer actually paid.
type AssetPurchasedEvent struct {
	AssetID uint64          `json:"assetId"`
	Buyer   ledger.Identity `json:"buyer"`
	Price   uint64          `json:"price"`
}

// MarketConfig is the configuration for the trading Market
type MarketConfig struct {
	Logger       *slog.Logger
	EventBus     *event.EventBus
	Assets       *asset.Manager
	Custody      *ledger.Custody
	Royalty      *royalty.Engine
	PromRegistry prometheus.Registerer
}

// Market trades assets held in marketplace custody
type Market struct {
	logger  *slog.Logger
	bus     *event.EventBus
	assets  *asset.Manager
	custody *ledger.Custody
	royalty *royalty.Engine
	metrics marketMetrics
	mutex   sync.Mutex
}

// NewMarket creates a trading market
func NewMarket(cfg MarketConfig) (*Market, error) {
	if cfg.Assets == nil {
		return nil, errors.New("no asset manager provided")
	}
	if cfg.Custody == nil {
		return nil, errors.New("no custody book provided")
	}
	if cfg.Royalty == nil {
		return nil, errors.New("no royalty engine provided")
	}
	m := &Market{
		logger:  cfg.Logger,
		bus:     cfg.EventBus,
		assets:  cfg.Assets,
		custody: cfg.Custody,
		royalty: cfg.Royalty,
	}
	if m.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.PromRegistry != nil {
		m.metrics.init(cfg.PromRegistry)
	}
	return m, nil
}

// List moves an asset into marketplace custody at the given price. The
// seller must own the asset.
func (m *Market) List(
	seller ledger.Identity,
	assetID uint64,
	price uint64,
) (uint64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	a, err := m.assets.Get(assetID)
	if err != nil {
		return 0, err
	}
	if !a.Active {
		return 0, fmt.Errorf("asset %d: %w", assetID, ErrAssetFrozen)
	}
	if price == 0 {
		return 0, fmt.Errorf("asset %d: %w", assetID, ErrInvalidPrice)
	}
	listingID, err := m.custody.PlaceAndList(
		seller,
		ledger.RecordKindAsset,
		assetID,
		price,
	)
	if err != nil {
		return 0, err
	}
	m.metrics.incListed()
	m.logger.Info(
		"listed asset",
		"component", "market",
		"listing_id", listingID,
		"asset_id", assetID,
		"seller", string(seller),
		"price", price,
	)
	if m.bus != nil {
		m.bus.Publish(
			AssetListedEventType,
			event.NewEvent(
				AssetListedEventType,
				AssetListedEvent{
					ListingID: listingID,
					AssetID:   assetID,
					Price:     price,
				},
			),
		)
	}
	return listingID, nil
}

// Buy takes a listed asset out of custody. The full payment is distributed
// through the asset's royalty table; overpayment is distributed too.
func (m *Market) Buy(
	buyer ledger.Identity,
	listingID uint64,
	payment *value.Pool,
) (*asset.Asset, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	listing, err := m.custody.Listing(listingID)
	if err != nil {
		return nil, err
	}
	if !listing.Active {
		return nil, ledger.ErrListingNotFound
	}
	a, err := m.assets.Get(listing.RecordID)
	if err != nil {
		return nil, err
	}
	// An asset frozen after listing cannot be bought
	if !a.Active {
		return nil, fmt.Errorf("asset %d: %w", a.ID, ErrAssetFrozen)
	}
	if payment.Amount() < listing.Price {
		return nil, fmt.Errorf(
			"payment %d below price %d: %w",
			payment.Amount(),
			listing.Price,
			ledger.ErrInsufficientPayment,
		)
	}
	paid := payment.Amount()
	if _, err := m.custody.TakeListed(listingID, buyer); err != nil {
		return nil, err
	}
	if _, err := m.royalty.Distribute(payment, a.Royalties); err != nil {
		return nil, fmt.Errorf("failed to distribute payment: %w", err)
	}
	m.metrics.observePurchase(paid)
	m.logger.Info(
		"sold asset",
		"component", "market",
		"listing_id", listingID,
		"asset_id", a.ID,
		"buyer", string(buyer),
		"price", paid,
	)
	if m.bus != nil {
		m.bus.Publish(
			AssetPurchasedEventType,
			event.NewEvent(
				AssetPurchasedEventType,
				AssetPurchasedEvent{
					AssetID: a.ID,
					Buyer:   buyer,
					Price:   paid,
				},
			),
		)
	}
	return a, nil
}
