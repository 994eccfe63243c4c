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

// ApiNode is the interface that the API server uses to
// query the node for marketplace data. This decouples the
// HTTP server from the concrete Node struct and enables
// testing with mock implementations.
type ApiNode interface {
	// AssetInfo returns the asset with the given ID
	// along with its current owner.
	AssetInfo(assetID uint64) (AssetInfo, error)

	// TaskInfo returns the labeling task with the given
	// ID.
	TaskInfo(taskID uint64) (TaskInfo, error)

	// ProposalInfo returns the governance proposal with
	// the given ID.
	ProposalInfo(proposalID uint64) (ProposalInfo, error)

	// AccountBalance returns the credited balance for
	// the given identity. Unknown identities have a zero
	// balance.
	AccountBalance(id string) (uint64, error)
}

// RoyaltyInfo holds one royalty table entry needed by the
// API.
type RoyaltyInfo struct {
	Recipient   string
	BasisPoints uint16
}

// AssetInfo holds asset data needed by the API.
type AssetInfo struct {
	ID          uint64
	Owner       string
	Creator     string
	ContentHash []byte
	StorageRef  string
	LicenseHash []byte
	Royalties   []RoyaltyInfo
	Active      bool
	Version     uint64
}

// TaskInfo holds labeling task data needed by the API.
type TaskInfo struct {
	ID           uint64
	Publisher    string
	DatasetRef   uint64
	RewardAmount uint64
	EscrowAmount uint64
	Deadline     int64
	Assignee     string
	Validators   []string
	PassCount    uint8
	Status       string
	ResultHash   []byte
}

// ProposalInfo holds governance proposal data needed by
// the API.
type ProposalInfo struct {
	ID       uint64
	Proposer string
	Action   string
	AyeVotes uint64
	NayVotes uint64
	Status   string
	Deadline int64
}
