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

package asset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/blinklabs-io/magpie/capability"
	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/royalty"
	"github.com/blinklabs-io/magpie/value"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/prometheus/client_golang/prometheus"
)

// PurchaseRoyaltyBasisPoints is the flat marketplace royalty credited to
// an asset's creator on direct (non-listing) sales
const PurchaseRoyaltyBasisPoints = 500

const ipfsScheme = "ipfs://"

// ManagerConfig is the configuration for the asset lifecycle Manager
type ManagerConfig struct {
	Logger       *slog.Logger
	EventBus     *event.EventBus
	Store        *ledger.Store
	Accounts     royalty.Accounts
	PromRegistry prometheus.Registerer
}

// Manager owns the asset lifecycle. Operations serialize on an in-process
// mutex and persist through version-checked record updates.
type Manager struct {
	logger   *slog.Logger
	bus      *event.EventBus
	store    *ledger.Store
	accounts royalty.Accounts
	metrics  managerMetrics
	mutex    sync.Mutex
}

// NewManager creates an asset lifecycle manager
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("no record store provided")
	}
	if cfg.Accounts == nil {
		return nil, errors.New("no accounts provided")
	}
	m := &Manager{
		logger:   cfg.Logger,
		bus:      cfg.EventBus,
		store:    cfg.Store,
		accounts: cfg.Accounts,
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

func validateContentHash(contentHash []byte) error {
	if _, err := multihash.Decode(contentHash); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContentHash, err)
	}
	return nil
}

func validateStorageRef(storageRef string) error {
	if storageRef == "" {
		return fmt.Errorf("%w: empty", ErrInvalidStorageRef)
	}
	if strings.HasPrefix(storageRef, ipfsScheme) {
		if _, err := cid.Decode(strings.TrimPrefix(storageRef, ipfsScheme)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidStorageRef, err)
		}
	}
	return nil
}

// Mint creates a new asset owned by its creator. The royalty table is
// validated here and immutable afterward.
func (m *Manager) Mint(
	token capability.Uploader,
	creator ledger.Identity,
	contentHash []byte,
	storageRef string,
	licenseHash []byte,
	recipients []ledger.Identity,
	basisPoints []uint16,
) (*Asset, error) {
	if token == nil {
		return nil, capability.ErrNotAuthorized
	}
	table, err := royalty.NewTable(recipients, basisPoints)
	if err != nil {
		return nil, err
	}
	if err := validateContentHash(contentHash); err != nil {
		return nil, err
	}
	if err := validateStorageRef(storageRef); err != nil {
		return nil, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	newAsset := &Asset{
		Creator:     creator,
		ContentHash: contentHash,
		StorageRef:  storageRef,
		LicenseHash: licenseHash,
		Royalties:   table,
		Active:      true,
		Version:     1,
	}
	id, err := m.store.CreateRecord(ledger.RecordKindAsset, creator, newAsset)
	if err != nil {
		return nil, err
	}
	newAsset.ID = id
	m.metrics.incMinted()
	m.logger.Info(
		"minted asset",
		"component", "asset",
		"asset_id", id,
		"creator", string(creator),
		"token_id", token.ID().String(),
	)
	if m.bus != nil {
		m.bus.Publish(
			AssetMintedEventType,
			event.NewEvent(
				AssetMintedEventType,
				AssetMintedEvent{
					AssetID:     id,
					Creator:     creator,
					ContentHash: contentHash,
				},
			),
		)
		m.bus.Publish(
			StorageTicketEventType,
			event.NewEvent(
				StorageTicketEventType,
				StorageTicketEvent{
					AssetID:    id,
					StorageRef: storageRef,
					Version:    1,
				},
			),
		)
	}
	return newAsset, nil
}

// Get returns the asset with the given ID
func (m *Manager) Get(assetID uint64) (*Asset, error) {
	a, _, err := m.get(assetID)
	return a, err
}

// Owner returns the current record owner of an asset
func (m *Manager) Owner(assetID uint64) (ledger.Identity, error) {
	owner, _, err := m.store.GetRecord(ledger.RecordKindAsset, assetID, nil)
	return owner, err
}

func (m *Manager) get(assetID uint64) (*Asset, uint64, error) {
	var a Asset
	_, version, err := m.store.GetRecord(ledger.RecordKindAsset, assetID, &a)
	if err != nil {
		return nil, 0, err
	}
	// The record key is authoritative for the ID
	a.ID = assetID
	return &a, version, nil
}

// Update applies creator-supplied metadata changes. Only provided fields
// change; each successful update bumps the asset version.
func (m *Manager) Update(
	requester ledger.Identity,
	assetID uint64,
	storageRef *string,
	licenseHash []byte,
) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	a, recordVersion, err := m.get(assetID)
	if err != nil {
		return err
	}
	if requester != a.Creator {
		return fmt.Errorf(
			"asset %d created by %s, not %s: %w",
			assetID,
			a.Creator,
			requester,
			capability.ErrNotAuthorized,
		)
	}
	if storageRef != nil {
		if err := validateStorageRef(*storageRef); err != nil {
			return err
		}
		a.StorageRef = *storageRef
	}
	if licenseHash != nil {
		a.LicenseHash = licenseHash
	}
	a.Version++
	if err := m.store.UpdateRecord(
		ledger.RecordKindAsset,
		assetID,
		recordVersion,
		a,
	); err != nil {
		return err
	}
	m.metrics.incUpdated()
	m.logger.Info(
		"updated asset",
		"component", "asset",
		"asset_id", assetID,
		"version", a.Version,
	)
	if m.bus != nil {
		m.bus.Publish(
			AssetUpdatedEventType,
			event.NewEvent(
				AssetUpdatedEventType,
				AssetUpdatedEvent{AssetID: assetID, Version: a.Version},
			),
		)
		m.bus.Publish(
			StorageTicketEventType,
			event.NewEvent(
				StorageTicketEventType,
				StorageTicketEvent{
					AssetID:    assetID,
					StorageRef: a.StorageRef,
					Version:    a.Version,
				},
			),
		)
	}
	return nil
}

// SetActive flips an asset's active flag. Possession of a Freezer
// capability is the entire authorization check.
func (m *Manager) SetActive(
	token capability.Freezer,
	assetID uint64,
	active bool,
) error {
	if token == nil {
		return capability.ErrNotAuthorized
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	a, recordVersion, err := m.get(assetID)
	if err != nil {
		return err
	}
	if a.Active == active {
		return nil
	}
	a.Active = active
	if err := m.store.UpdateRecord(
		ledger.RecordKindAsset,
		assetID,
		recordVersion,
		a,
	); err != nil {
		return err
	}
	m.logger.Info(
		"set asset active flag",
		"component", "asset",
		"asset_id", assetID,
		"active", active,
		"token_id", token.ID().String(),
	)
	return nil
}

// PurchaseRoyalty settles the flat creator royalty on a direct sale and
// returns the remainder pool for the caller to forward to the seller.
func (m *Manager) PurchaseRoyalty(
	assetID uint64,
	salePrice uint64,
	payment *value.Pool,
) (*value.Pool, error) {
	a, _, err := m.get(assetID)
	if err != nil {
		return nil, err
	}
	royaltyAmount := royalty.Share(salePrice, PurchaseRoyaltyBasisPoints)
	if payment.Amount() < royaltyAmount {
		return nil, fmt.Errorf(
			"payment %d below royalty %d: %w",
			payment.Amount(),
			royaltyAmount,
			ledger.ErrInsufficientPayment,
		)
	}
	if royaltyAmount > 0 {
		slice, err := payment.Split(royaltyAmount)
		if err != nil {
			return nil, err
		}
		if err := m.accounts.Credit(a.Creator, slice); err != nil {
			return nil, err
		}
	}
	m.logger.Debug(
		"settled purchase royalty",
		"component", "asset",
		"asset_id", assetID,
		"sale_price", salePrice,
		"royalty", royaltyAmount,
		"creator", string(a.Creator),
	)
	return payment, nil
}
