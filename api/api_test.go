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
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blinklabs-io/magpie/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNode implements ApiNode for testing.
type mockNode struct {
	asset       AssetInfo
	task        TaskInfo
	proposal    ProposalInfo
	balance     uint64
	assetErr    error
	taskErr     error
	proposalErr error
	balanceErr  error
}

func (m *mockNode) AssetInfo(
	_ uint64,
) (AssetInfo, error) {
	return m.asset, m.assetErr
}

func (m *mockNode) TaskInfo(
	_ uint64,
) (TaskInfo, error) {
	return m.task, m.taskErr
}

func (m *mockNode) ProposalInfo(
	_ uint64,
) (ProposalInfo, error) {
	return m.proposal, m.proposalErr
}

func (m *mockNode) AccountBalance(
	_ string,
) (uint64, error) {
	return m.balance, m.balanceErr
}

func newTestApi(node ApiNode) *Api {
	return New(
		ApiConfig{
			ListenAddress: ":0",
		},
		node,
		slog.Default(),
	)
}

func newPathRequest(
	path string,
	id string,
) *http.Request {
	req := httptest.NewRequest(
		http.MethodGet, path, nil,
	)
	req.SetPathValue("id", id)
	return req
}

func TestNewNodeAdapterRequiresEngines(t *testing.T) {
	adapter, err := NewNodeAdapter(nil, nil, nil, nil)
	assert.Error(t, err)
	assert.Nil(t, adapter)
}

func TestStartStop(t *testing.T) {
	mock := &mockNode{}
	a := newTestApi(mock)

	err := a.Start(t.Context())
	require.NoError(t, err)

	// Verify server is running
	a.mu.Lock()
	assert.NotNil(t, a.httpServer)
	a.mu.Unlock()

	// Stop the server
	stopCtx, stopCancel := context.WithTimeout(
		context.Background(),
		5*time.Second,
	)
	defer stopCancel()
	err = a.Stop(stopCtx)
	require.NoError(t, err)

	// Verify server is stopped
	a.mu.Lock()
	assert.Nil(t, a.httpServer)
	a.mu.Unlock()
}

func TestStartAlreadyStarted(t *testing.T) {
	mock := &mockNode{}
	a := newTestApi(mock)

	ctx := t.Context()
	err := a.Start(ctx)
	require.NoError(t, err)
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer stopCancel()
		_ = a.Stop(stopCtx)
	}()

	// Starting again should error
	err = a.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already started")
}

func TestHandleRoot(t *testing.T) {
	mock := &mockNode{}
	a := newTestApi(mock)

	req := httptest.NewRequest(
		http.MethodGet, "/", nil,
	)
	w := httptest.NewRecorder()
	a.handleRoot(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(
		t,
		"application/json",
		w.Header().Get("Content-Type"),
	)

	var resp RootResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", resp.Version)
}

func TestHandleHealth(t *testing.T) {
	mock := &mockNode{}
	a := newTestApi(mock)

	req := httptest.NewRequest(
		http.MethodGet, "/health", nil,
	)
	w := httptest.NewRecorder()
	a.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.True(t, resp.IsHealthy)
}

func TestHandleAsset(t *testing.T) {
	mock := &mockNode{
		asset: AssetInfo{
			ID:          7,
			Owner:       "bob",
			Creator:     "alice",
			ContentHash: []byte{0xde, 0xad},
			StorageRef:  "s3://bucket/dataset",
			Royalties: []RoyaltyInfo{
				{Recipient: "alice", BasisPoints: 10000},
			},
			Active:  true,
			Version: 3,
		},
	}
	a := newTestApi(mock)

	req := newPathRequest("/api/v1/assets/7", "7")
	w := httptest.NewRecorder()
	a.handleAsset(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AssetResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), resp.ID)
	assert.Equal(t, "bob", resp.Owner)
	assert.Equal(t, "alice", resp.Creator)
	assert.Equal(t, "dead", resp.ContentHash)
	assert.Equal(t, "s3://bucket/dataset", resp.StorageRef)
	require.Len(t, resp.Royalties, 1)
	assert.Equal(t, "alice", resp.Royalties[0].Recipient)
	assert.Equal(
		t,
		uint16(10000),
		resp.Royalties[0].BasisPoints,
	)
	assert.True(t, resp.Active)
	assert.Equal(t, uint64(3), resp.Version)
}

func TestHandleAssetNotFound(t *testing.T) {
	mock := &mockNode{
		assetErr: ledger.ErrRecordNotFound,
	}
	a := newTestApi(mock)

	req := newPathRequest("/api/v1/assets/99", "99")
	w := httptest.NewRecorder()
	a.handleAsset(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.Error)
}

func TestHandleAssetBadID(t *testing.T) {
	mock := &mockNode{}
	a := newTestApi(mock)

	req := newPathRequest(
		"/api/v1/assets/banana", "banana",
	)
	w := httptest.NewRecorder()
	a.handleAsset(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAssetError(t *testing.T) {
	mock := &mockNode{
		assetErr: assert.AnError,
	}
	a := newTestApi(mock)

	req := newPathRequest("/api/v1/assets/7", "7")
	w := httptest.NewRecorder()
	a.handleAsset(w, req)

	assert.Equal(
		t,
		http.StatusInternalServerError,
		w.Code,
	)
}

func TestHandleTask(t *testing.T) {
	mock := &mockNode{
		task: TaskInfo{
			ID:           4,
			Publisher:    "publisher",
			DatasetRef:   7,
			RewardAmount: 45_000_000,
			EscrowAmount: 5_000_000,
			Deadline:     1700000000,
			Assignee:     "worker",
			Validators:   []string{"v1", "v2"},
			PassCount:    2,
			Status:       "in_review",
			ResultHash:   []byte{0xbe, 0xef},
		},
	}
	a := newTestApi(mock)

	req := newPathRequest("/api/v1/tasks/4", "4")
	w := httptest.NewRecorder()
	a.handleTask(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp TaskResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), resp.ID)
	assert.Equal(t, "publisher", resp.Publisher)
	assert.Equal(t, uint64(7), resp.DatasetRef)
	assert.Equal(t, uint64(45_000_000), resp.RewardAmount)
	assert.Equal(t, uint64(5_000_000), resp.EscrowAmount)
	assert.Equal(t, "worker", resp.Assignee)
	assert.Equal(t, []string{"v1", "v2"}, resp.Validators)
	assert.Equal(t, uint8(2), resp.PassCount)
	assert.Equal(t, "in_review", resp.Status)
	assert.Equal(t, "beef", resp.ResultHash)
}

func TestHandleTaskNotFound(t *testing.T) {
	mock := &mockNode{
		taskErr: ledger.ErrRecordNotFound,
	}
	a := newTestApi(mock)

	req := newPathRequest("/api/v1/tasks/99", "99")
	w := httptest.NewRecorder()
	a.handleTask(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleProposal(t *testing.T) {
	mock := &mockNode{
		proposal: ProposalInfo{
			ID:       2,
			Proposer: "alice",
			Action:   "freeze_asset",
			AyeVotes: 10,
			NayVotes: 4,
			Status:   "passed",
			Deadline: 1700000000,
		},
	}
	a := newTestApi(mock)

	req := newPathRequest("/api/v1/proposals/2", "2")
	w := httptest.NewRecorder()
	a.handleProposal(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ProposalResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), resp.ID)
	assert.Equal(t, "alice", resp.Proposer)
	assert.Equal(t, "freeze_asset", resp.Action)
	assert.Equal(t, uint64(10), resp.AyeVotes)
	assert.Equal(t, uint64(4), resp.NayVotes)
	assert.Equal(t, "passed", resp.Status)
}

func TestHandleAccount(t *testing.T) {
	mock := &mockNode{
		balance: 45_000_000,
	}
	a := newTestApi(mock)

	req := newPathRequest(
		"/api/v1/accounts/worker", "worker",
	)
	w := httptest.NewRecorder()
	a.handleAccount(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AccountResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	require.NoError(t, err)
	assert.Equal(t, "worker", resp.ID)
	assert.Equal(t, uint64(45_000_000), resp.Balance)
}

func TestHandleAccountError(t *testing.T) {
	mock := &mockNode{
		balanceErr: assert.AnError,
	}
	a := newTestApi(mock)

	req := newPathRequest(
		"/api/v1/accounts/worker", "worker",
	)
	w := httptest.NewRecorder()
	a.handleAccount(w, req)

	assert.Equal(
		t,
		http.StatusInternalServerError,
		w.Code,
	)
}
