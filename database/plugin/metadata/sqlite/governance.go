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
	"fmt"

	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
)

// AddGovernanceVote inserts a vote audit row. The composite unique index on
// proposal and voter surfaces duplicate votes as a constraint violation.
func (d *MetadataStoreSqlite) AddGovernanceVote(
	vote *models.GovernanceVote,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(vote); result.Error != nil {
		return fmt.Errorf(
			"failed to add governance vote: %w",
			result.Error,
		)
	}
	return nil
}

// GetGovernanceVotes returns all votes recorded for a proposal
func (d *MetadataStoreSqlite) GetGovernanceVotes(
	proposalID uint64,
	txn types.Txn,
) ([]models.GovernanceVote, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.GovernanceVote
	result := db.Where("proposal_id = ?", types.Uint64(proposalID)).
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// AddUpgradeAuthorization persists an executed upgrade approval
func (d *MetadataStoreSqlite) AddUpgradeAuthorization(
	auth *models.UpgradeAuthorization,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(auth); result.Error != nil {
		return fmt.Errorf(
			"failed to add upgrade authorization: %w",
			result.Error,
		)
	}
	return nil
}

// GetUpgradeAuthorizations returns all recorded upgrade authorizations
func (d *MetadataStoreSqlite) GetUpgradeAuthorizations(
	txn types.Txn,
) ([]models.UpgradeAuthorization, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.UpgradeAuthorization
	result := db.Order("id").Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}
