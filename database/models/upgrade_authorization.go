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

import "github.com/blinklabs-io/magpie/database/types"

// UpgradeAuthorization persists the digest of a protocol upgrade approved
// through governance. Deployment tooling consumes these rows to decide
// which package digests may be installed.
type UpgradeAuthorization struct {
	ID         uint         `gorm:"primarykey"`
	ProposalID types.Uint64 `gorm:"uniqueIndex;not null"`
	Digest     []byte       `gorm:"size:32;not null"`
}

func (UpgradeAuthorization) TableName() string {
	return "upgrade_authorization"
}
