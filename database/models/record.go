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

var ErrRecordNotFound = errors.New("record not found")

// Record is the metadata index row for a ledger record. The record body is
// stored in the blob store keyed by kind and record ID; this row tracks the
// current owner and the version used for compare-and-swap updates.
type Record struct {
	ID       uint         `gorm:"primarykey"`
	Kind     uint8        `gorm:"uniqueIndex:idx_record_unique,priority:1;not null"`
	RecordID types.Uint64 `gorm:"uniqueIndex:idx_record_unique,priority:2;not null"`
	Owner    string       `gorm:"index;size:128;not null"`
	Version  types.Uint64 `gorm:"not null"`
}

func (Record) TableName() string {
	return "record"
}
