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

var ErrListingNotFound = errors.New("listing not found")

// Listing records an asset held in marketplace custody. Active is cleared
// when the listed asset is taken by a buyer.
type Listing struct {
	ID      uint         `gorm:"primarykey"`
	AssetID types.Uint64 `gorm:"index;not null"`
	Seller  string       `gorm:"index;size:128;not null"`
	Price   types.Uint64 `gorm:"not null"`
	Active  bool         `gorm:"default:true"`
}

func (Listing) TableName() string {
	return "listing"
}
