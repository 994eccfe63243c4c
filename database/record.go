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
	"encoding/binary"

	"github.com/blinklabs-io/magpie/database/models"
)

// RecordBlobKey returns the blob store key for a record body
func RecordBlobKey(kind uint8, id uint64) []byte {
	key := make([]byte, 0, 10)
	key = append(key, 'r', kind)
	key = binary.BigEndian.AppendUint64(key, id)
	return key
}

// GetRecord returns the index row and encoded body for a record
func (d *Database) GetRecord(
	kind uint8,
	id uint64,
	txn *Txn,
) (*models.Record, []byte, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	record, err := d.Metadata().GetRecord(kind, id, txn.Metadata())
	if err != nil {
		return nil, nil, err
	}
	body, err := d.Blob().Get(txn.Blob(), RecordBlobKey(kind, id))
	if err != nil {
		return nil, nil, err
	}
	return record, body, nil
}

// SetRecord writes the index row and encoded body for a record
func (d *Database) SetRecord(
	record *models.Record,
	body []byte,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Release()
		if err := d.setRecord(record, body, txn); err != nil {
			return err
		}
		return txn.Commit()
	}
	return d.setRecord(record, body, txn)
}

func (d *Database) setRecord(
	record *models.Record,
	body []byte,
	txn *Txn,
) error {
	if err := d.Blob().Set(
		txn.Blob(),
		RecordBlobKey(record.Kind, uint64(record.RecordID)),
		body,
	); err != nil {
		return err
	}
	return d.Metadata().SetRecord(record, txn.Metadata())
}

// MaxRecordID returns the largest record ID in use for a record kind
func (d *Database) MaxRecordID(kind uint8, txn *Txn) (uint64, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	return d.Metadata().MaxRecordID(kind, txn.Metadata())
}
