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

// AddUpgradeAuthorization records an authorized code upgrade digest
func (d *Database) AddUpgradeAuthorization(
	auth *models.UpgradeAuthorization,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.MetadataTxn(true)
		defer txn.Release()
		if err := d.Metadata().AddUpgradeAuthorization(auth, txn.Metadata()); err != nil {
			return err
		}
		return txn.Commit()
	}
	return d.Metadata().AddUpgradeAuthorization(auth, txn.Metadata())
}

// GetUpgradeAuthorizations returns all recorded upgrade authorizations
func (d *Database) GetUpgradeAuthorizations(
	txn *Txn,
) ([]models.UpgradeAuthorization, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	return d.Metadata().GetUpgradeAuthorizations(txn.Metadata())
}
