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
	"gorm.io/gorm/clause"
)

// GetRecord gets a record index row by kind and record ID
func (d *MetadataStoreSqlite) GetRecord(
	kind uint8,
	recordID uint64,
	txn types.Txn,
) (*models.Record, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Record{}
	result := db.Where("kind = ? AND record_id = ?", kind, types.Uint64(recordID)).
		First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetRecord upserts a record index row
func (d *MetadataStoreSqlite) SetRecord(
	record *models.Record,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "kind"},
			{Name: "record_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "version"}),
	}).Create(record)
	if result.Error != nil {
		return fmt.Errorf("failed to set record: %w", result.Error)
	}
	return nil
}

// MaxRecordID returns the highest record ID stored for a kind, or zero when
// no records of that kind exist
func (d *MetadataStoreSqlite) MaxRecordID(
	kind uint8,
	txn types.Txn,
) (uint64, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return 0, err
	}
	var records []models.Record
	result := db.Where("kind = ?", kind).Find(&records)
	if result.Error != nil {
		return 0, result.Error
	}
	// Record IDs are stored as strings to survive sqlite's signed 64-bit
	// integers, so the max is computed here rather than in SQL
	var maxID uint64
	for _, record := range records {
		if uint64(record.RecordID) > maxID {
			maxID = uint64(record.RecordID)
		}
	}
	return maxID, nil
}
