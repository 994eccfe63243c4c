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

package database

import (
	"github.com/blinklabs-io/magpie/database/models"
)

// CreateListing records a new marketplace listing
func (d *Database) CreateListing(
	listing *models.Listing,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.MetadataTxn(true)
		defer txn.Release()
		if err := d.Metadata().CreateListing(listing, txn.Metadata()); err != nil {
			return err
		}
		return txn.Commit()
	}
	return d.Metadata().CreateListing(listing, txn.Metadata())
}

// GetListing returns the active listing for an asset
func (d *Database) GetListing(
	assetID uint64,
	txn *Txn,
) (*models.Listing, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	return d.Metadata().GetListing(assetID, txn.Metadata())
}

// CloseListing marks the active listing for an asset as inactive
func (d *Database) CloseListing(assetID uint64, txn *Txn) error {
	if txn == nil {
		txn = d.MetadataTxn(true)
		defer txn.Release()
		if err := d.Metadata().CloseListing(assetID, txn.Metadata()); err != nil {
			return err
		}
		return txn.Commit()
	}
	return d.Metadata().CloseListing(assetID, txn.Metadata())
}
