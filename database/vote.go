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

// AddGovernanceVote records a weighted vote on a proposal
func (d *Database) AddGovernanceVote(
	vote *models.GovernanceVote,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.MetadataTxn(true)
		defer txn.Release()
		if err := d.Metadata().AddGovernanceVote(vote, txn.Metadata()); err != nil {
			return err
		}
		return txn.Commit()
	}
	return d.Metadata().AddGovernanceVote(vote, txn.Metadata())
}

// GetGovernanceVotes returns all recorded votes for a proposal
func (d *Database) GetGovernanceVotes(
	proposalID uint64,
	txn *Txn,
) ([]models.GovernanceVote, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	return d.Metadata().GetGovernanceVotes(proposalID, txn.Metadata())
}
