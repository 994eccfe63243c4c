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

// RootResponse is returned by GET /.
type RootResponse struct {
	URL     string `json:"url"`
	Version string `json:"version"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// RoyaltyResponse represents one royalty table entry.
type RoyaltyResponse struct {
	Recipient   string `json:"recipient"`
	BasisPoints uint16 `json:"basis_points"`
}

// AssetResponse represents a data asset.
type AssetResponse struct {
	ID          uint64            `json:"id"`
	Owner       string            `json:"owner"`
	Creator     string            `json:"creator"`
	ContentHash string            `json:"content_hash"`
	StorageRef  string            `json:"storage_ref"`
	LicenseHash string            `json:"license_hash,omitempty"`
	Royalties   []RoyaltyResponse `json:"royalties"`
	Active      bool              `json:"active"`
	Version     uint64            `json:"version"`
}

// TaskResponse represents a labeling task.
type TaskResponse struct {
	ID           uint64   `json:"id"`
	Publisher    string   `json:"publisher"`
	DatasetRef   uint64   `json:"dataset_ref"`
	RewardAmount uint64   `json:"reward_amount"`
	EscrowAmount uint64   `json:"escrow_amount"`
	Deadline     int64    `json:"deadline"`
	Assignee     string   `json:"assignee,omitempty"`
	Validators   []string `json:"validators"`
	PassCount    uint8    `json:"pass_count"`
	Status       string   `json:"status"`
	ResultHash   string   `json:"result_hash,omitempty"`
}

// ProposalResponse represents a governance proposal.
type ProposalResponse struct {
	ID       uint64 `json:"id"`
	Proposer string `json:"proposer"`
	Action   string `json:"action"`
	AyeVotes uint64 `json:"aye_votes"`
	NayVotes uint64 `json:"nay_votes"`
	Status   string `json:"status"`
	Deadline int64  `json:"deadline"`
}

// AccountResponse represents an account balance.
type AccountResponse struct {
	ID      string `json:"id"`
	Balance uint64 `json:"balance"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}
