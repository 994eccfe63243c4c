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

// GetAccount gets a settlement account by address
func (d *MetadataStoreSqlite) GetAccount(
	address string,
	txn types.Txn,
) (*models.Account, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	ret := &models.Account{}
	result := db.Where("address = ?", address).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// CreditAccount adds the given amount to an account balance, creating the
// account row if it does not exist yet. Balances are stored as strings, so
// the addition happens here rather than in SQL.
func (d *MetadataStoreSqlite) CreditAccount(
	address string,
	amount uint64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	account := &models.Account{}
	result := db.FirstOrCreate(account, models.Account{Address: address})
	if result.Error != nil {
		return fmt.Errorf(
			"failed to find or create account: %w",
			result.Error,
		)
	}
	newBalance := uint64(account.Balance) + amount
	if newBalance < uint64(account.Balance) {
		return fmt.Errorf(
			"account balance overflow for %s",
			address,
		)
	}
	if err := db.Model(account).
		Update("balance", types.Uint64(newBalance)).Error; err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	return nil
}
