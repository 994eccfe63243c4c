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
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package api

import (
	"errors"

	"github.com/blinklabs-io/magpie/asset"
	"github.com/blinklabs-io/magpie/governance"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/tasks"
)

// NodeAdapter wraps the marketplace engines to implement
// the ApiNode interface.
type NodeAdapter struct {
	assets     *asset.Manager
	workflow   *tasks.Workflow
	governance *governance.Engine
	accounts   *ledger.Accounts
}

// NewNodeAdapter creates a NodeAdapter that queries the
// given engines for marketplace data.
func NewNodeAdapter(
	assets *asset.Manager,
	workflow *tasks.Workflow,
	govEngine *governance.Engine,
	accounts *ledger.Accounts,
) (*NodeAdapter, error) {
	if assets == nil || workflow == nil ||
		govEngine == nil || accounts == nil {
		return nil, errors.New("all engines are required")
	}
	return &NodeAdapter{
		assets:     assets,
		workflow:   workflow,
		governance: govEngine,
		accounts:   accounts,
	}, nil
}

// AssetInfo returns the asset with the given ID along with
// its current owner.
func (a *NodeAdapter) AssetInfo(
	assetID uint64,
) (AssetInfo, error) {
	item, err := a.assets.Get(assetID)
	if err != nil {
		return AssetInfo{}, err
	}
	owner, err := a.assets.Owner(assetID)
	if err != nil {
		return AssetInfo{}, err
	}
	royalties := make([]RoyaltyInfo, 0, len(item.Royalties))
	for _, entry := range item.Royalties {
		royalties = append(royalties, RoyaltyInfo{
			Recipient:   string(entry.Recipient),
			BasisPoints: entry.BasisPoints,
		})
	}
	return AssetInfo{
		ID:          item.ID,
		Owner:       string(owner),
		Creator:     string(item.Creator),
		ContentHash: item.ContentHash,
		StorageRef:  item.StorageRef,
		LicenseHash: item.LicenseHash,
		Royalties:   royalties,
		Active:      item.Active,
		Version:     item.Version,
	}, nil
}

// TaskInfo returns the labeling task with the given ID.
func (a *NodeAdapter) TaskInfo(
	taskID uint64,
) (TaskInfo, error) {
	task, err := a.workflow.Get(taskID)
	if err != nil {
		return TaskInfo{}, err
	}
	validators := make([]string, 0, len(task.Validators))
	for _, v := range task.Validators {
		validators = append(validators, string(v))
	}
	return TaskInfo{
		ID:           task.ID,
		Publisher:    string(task.Publisher),
		DatasetRef:   task.DatasetRef,
		RewardAmount: task.RewardAmount,
		EscrowAmount: task.EscrowAmount,
		Deadline:     task.Deadline,
		Assignee:     string(task.Assignee),
		Validators:   validators,
		PassCount:    task.PassCount,
		Status:       task.Status.String(),
		ResultHash:   task.ResultHash,
	}, nil
}

// ProposalInfo returns the governance proposal with the
// given ID.
func (a *NodeAdapter) ProposalInfo(
	proposalID uint64,
) (ProposalInfo, error) {
	snap, err := a.governance.Snapshot(proposalID)
	if err != nil {
		return ProposalInfo{}, err
	}
	return ProposalInfo{
		ID:       snap.ID,
		Proposer: string(snap.Proposer),
		Action:   snap.Action,
		AyeVotes: snap.AyeVotes,
		NayVotes: snap.NayVotes,
		Status:   snap.Status.String(),
		Deadline: snap.Deadline,
	}, nil
}

// AccountBalance returns the credited balance for the
// given identity.
func (a *NodeAdapter) AccountBalance(
	id string,
) (uint64, error) {
	return a.accounts.BalanceOf(ledger.Identity(id))
}
