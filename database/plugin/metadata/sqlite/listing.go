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

package sqlite

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
	"gorm.io/gorm"
)

// CreateListing inserts a new listing row. The generated row ID becomes the
// listing reference handed back to sellers.
func (d *MetadataStoreSqlite) CreateListing(
	listing *models.Listing,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(listing); result.Error != nil {
		return fmt.Errorf("failed to create listing: %w", result.Error)
	}
	return nil
}

// GetListing gets a listing by ID
func (d *MetadataStoreSqlite) GetListing(
	listingID uint64,
	txn types.Txn,
) (*models.Listing, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Listing{}
	result := db.Where("id = ?", listingID).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrListingNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// CloseListing marks a listing as no longer active
func (d *MetadataStoreSqlite) CloseListing(
	listingID uint64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Model(&models.Listing{}).
		Where("id = ? AND active = ?", listingID, true).
		Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to close listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrListingNotFound
	}
	return nil
}
