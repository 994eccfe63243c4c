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
	"io"
	"log/slog"

	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
)

// CustodyIdentity owns every record held in marketplace custody
const CustodyIdentity Identity = "@custody"

// Listing describes a record held in marketplace custody
type Listing struct {
	ID       uint64
	RecordID uint64
	Seller   Identity
	Price    uint64
	Active   bool
}

// CustodyConfig is the configuration for the Custody book
type CustodyConfig struct {
	Logger   *slog.Logger
	Database *database.Database
	Store    *Store
}

// Custody holds listed records on behalf of sellers. Listing a record
// moves its ownership to the custody identity; taking it moves ownership
// to the buyer. At most one taker succeeds per listing.
type Custody struct {
	logger *slog.Logger
	db     *database.Database
	store  *Store
}

// NewCustody creates a custody book over the given database and store
func NewCustody(cfg CustodyConfig) (*Custody, error) {
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	if cfg.Store == nil {
		return nil, errors.New("no record store provided")
	}
	c := &Custody{
		logger: cfg.Logger,
		db:     cfg.Database,
		store:  cfg.Store,
	}
	if c.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		c.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return c, nil
}

// PlaceAndList moves a record into custody and opens a listing for it. The
// seller must own the record.
func (c *Custody) PlaceAndList(
	seller Identity,
	kind RecordKind,
	recordID uint64,
	price uint64,
) (uint64, error) {
	if err := c.store.TransferOwnership(
		kind,
		recordID,
		seller,
		CustodyIdentity,
	); err != nil {
		return 0, err
	}
	listing := &models.Listing{
		AssetID: types.Uint64(recordID),
		Seller:  string(seller),
		Price:   types.Uint64(price),
	}
	if err := c.db.CreateListing(listing, nil); err != nil {
		// Hand the record back so it isn't stranded in custody
		if err2 := c.store.TransferOwnership(
			kind,
			recordID,
			CustodyIdentity,
			seller,
		); err2 != nil {
			c.logger.Error(
				"failed to return record after listing failure",
				"component", "ledger",
				"record_id", recordID,
				"error", err2,
			)
		}
		return 0, err
	}
	c.logger.Debug(
		"placed record in custody",
		"component", "ledger",
		"listing_id", uint64(listing.ID),
		"record_id", recordID,
		"seller", string(seller),
		"price", price,
	)
	return uint64(listing.ID), nil
}

// Listing returns the listing with the given ID
func (c *Custody) Listing(listingID uint64) (*Listing, error) {
	row, err := c.db.GetListing(listingID, nil)
	if err != nil {
		return nil, err
	}
	return &Listing{
		ID:       uint64(row.ID),
		RecordID: uint64(row.AssetID),
		Seller:   Identity(row.Seller),
		Price:    uint64(row.Price),
		Active:   row.Active,
	}, nil
}

// TakeListed closes a listing and moves the record out of custody to the
// buyer. Closing is the commit point: when two buyers race, exactly one
// close succeeds and the loser gets ErrListingNotFound.
func (c *Custody) TakeListed(
	listingID uint64,
	to Identity,
) (*Listing, error) {
	listing, err := c.Listing(listingID)
	if err != nil {
		return nil, err
	}
	if !listing.Active {
		return nil, ErrListingNotFound
	}
	if err := c.db.CloseListing(listingID, nil); err != nil {
		return nil, err
	}
	if err := c.store.TransferOwnership(
		RecordKindAsset,
		listing.RecordID,
		CustodyIdentity,
		to,
	); err != nil {
		return nil, err
	}
	c.logger.Debug(
		"took record from custody",
		"component", "ledger",
		"listing_id", listingID,
		"record_id", listing.RecordID,
		"buyer", string(to),
	)
	return listing, nil
}
