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

// GovernanceVote records a weighted vote on a governance proposal. The
// composite unique index enforces one vote per voter per proposal at the
// storage layer in addition to the governance engine's own check.
type GovernanceVote struct {
	ID         uint         `gorm:"primarykey"`
	ProposalID types.Uint64 `gorm:"index:idx_vote_proposal;uniqueIndex:idx_vote_unique,priority:1;not null"`
	Voter      string       `gorm:"uniqueIndex:idx_vote_unique,priority:2;size:128;not null"`
	Support    bool         `gorm:"not null"`
	Weight     types.Uint64 `gorm:"not null"`
}

func (GovernanceVote) TableName() string {
	return "governance_vote"
}
