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
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blinklabs-io/magpie/ledger"
)

const apiVersion = "0.1.0"

// writeJSON writes a JSON response with the given status
// code.
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError writes an API-format error response.
func writeError(
	w http.ResponseWriter,
	status int,
	errStr string,
	message string,
) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      errStr,
		Message:    message,
	})
}

// writeLookupError maps a lookup failure to an error
// response, distinguishing missing records from internal
// failures.
func writeLookupError(
	w http.ResponseWriter,
	err error,
	message string,
) {
	if errors.Is(err, ledger.ErrRecordNotFound) {
		writeError(
			w,
			http.StatusNotFound,
			"Not Found",
			"the requested resource was not found",
		)
		return
	}
	writeError(
		w,
		http.StatusInternalServerError,
		"Internal Server Error",
		message,
	)
}

// pathID parses the {id} path segment as a uint64.
func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(r.PathValue("id"), 10, 64)
}

// handleRoot handles GET / and returns API metadata.
func (a *Api) handleRoot(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, RootResponse{
		URL:     "https://blinklabs.io/",
		Version: apiVersion,
	})
}

// handleHealth handles GET /health and returns node health
// status.
func (a *Api) handleHealth(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

// handleAsset handles GET /api/v1/assets/{id} and returns
// the asset with its current owner.
func (a *Api) handleAsset(
	w http.ResponseWriter,
	r *http.Request,
) {
	assetID, err := pathID(r)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid asset ID",
		)
		return
	}
	info, err := a.node.AssetInfo(assetID)
	if err != nil {
		if !errors.Is(err, ledger.ErrRecordNotFound) {
			a.logger.Error(
				"failed to get asset",
				"error", err,
			)
		}
		writeLookupError(
			w,
			err,
			"failed to retrieve asset",
		)
		return
	}
	royalties := make(
		[]RoyaltyResponse,
		0,
		len(info.Royalties),
	)
	for _, entry := range info.Royalties {
		royalties = append(royalties, RoyaltyResponse{
			Recipient:   entry.Recipient,
			BasisPoints: entry.BasisPoints,
		})
	}
	writeJSON(w, http.StatusOK, AssetResponse{
		ID:          info.ID,
		Owner:       info.Owner,
		Creator:     info.Creator,
		ContentHash: hex.EncodeToString(info.ContentHash),
		StorageRef:  info.StorageRef,
		LicenseHash: hex.EncodeToString(info.LicenseHash),
		Royalties:   royalties,
		Active:      info.Active,
		Version:     info.Version,
	})
}

// handleTask handles GET /api/v1/tasks/{id} and returns
// the labeling task.
func (a *Api) handleTask(
	w http.ResponseWriter,
	r *http.Request,
) {
	taskID, err := pathID(r)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid task ID",
		)
		return
	}
	info, err := a.node.TaskInfo(taskID)
	if err != nil {
		if !errors.Is(err, ledger.ErrRecordNotFound) {
			a.logger.Error(
				"failed to get task",
				"error", err,
			)
		}
		writeLookupError(
			w,
			err,
			"failed to retrieve task",
		)
		return
	}
	if info.Validators == nil {
		info.Validators = []string{}
	}
	writeJSON(w, http.StatusOK, TaskResponse{
		ID:           info.ID,
		Publisher:    info.Publisher,
		DatasetRef:   info.DatasetRef,
		RewardAmount: info.RewardAmount,
		EscrowAmount: info.EscrowAmount,
		Deadline:     info.Deadline,
		Assignee:     info.Assignee,
		Validators:   info.Validators,
		PassCount:    info.PassCount,
		Status:       info.Status,
		ResultHash:   hex.EncodeToString(info.ResultHash),
	})
}

// handleProposal handles GET /api/v1/proposals/{id} and
// returns the governance proposal.
func (a *Api) handleProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	proposalID, err := pathID(r)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid proposal ID",
		)
		return
	}
	info, err := a.node.ProposalInfo(proposalID)
	if err != nil {
		if !errors.Is(err, ledger.ErrRecordNotFound) {
			a.logger.Error(
				"failed to get proposal",
				"error", err,
			)
		}
		writeLookupError(
			w,
			err,
			"failed to retrieve proposal",
		)
		return
	}
	writeJSON(w, http.StatusOK, ProposalResponse{
		ID:       info.ID,
		Proposer: info.Proposer,
		Action:   info.Action,
		AyeVotes: info.AyeVotes,
		NayVotes: info.NayVotes,
		Status:   info.Status,
		Deadline: info.Deadline,
	})
}

// handleAccount handles GET /api/v1/accounts/{id} and
// returns the account balance. Unknown identities report
// a zero balance.
func (a *Api) handleAccount(
	w http.ResponseWriter,
	r *http.Request,
) {
	id := r.PathValue("id")
	if id == "" {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid account ID",
		)
		return
	}
	balance, err := a.node.AccountBalance(id)
	if err != nil {
		a.logger.Error(
			"failed to get account balance",
			"error", err,
		)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to retrieve account balance",
		)
		return
	}
	writeJSON(w, http.StatusOK, AccountResponse{
		ID:      id,
		Balance: balance,
	})
}
