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

// GetAccount returns the settlement account for an address
func (d *Database) GetAccount(
	address string,
	txn *Txn,
) (*models.Account, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	return d.Metadata().GetAccount(address, txn.Metadata())
}

// CreditAccount adds funds to the settlement account for an address,
// creating the account if it does not exist
func (d *Database) CreditAccount(
	address string,
	amount uint64,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.MetadataTxn(true)
		defer txn.Release()
		if err := d.Metadata().CreditAccount(address, amount, txn.Metadata()); err != nil {
			return err
		}
		return txn.Commit()
	}
	return d.Metadata().CreditAccount(address, amount, txn.Metadata())
}
