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

package models

import (
	"errors"

	"github.com/blinklabs-io/magpie/database/types"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is the settlement book entry for a marketplace identity. Balances
// only ever grow through credits; withdrawals happen outside this layer.
type Account struct {
	ID      uint   `gorm:"primarykey"`
	Address string `gorm:"uniqueIndex;size:128;not null"`
	Balance types.Uint64
}

func (Account) TableName() string {
	return "account"
}
