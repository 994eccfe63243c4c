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

package governance

import (
	"github.com/blinklabs-io/magpie/asset"
	"github.com/blinklabs-io/magpie/capability"
	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
	"github.com/blinklabs-io/magpie/tasks"
)

// Executor runs one action variant. The type parameter ties each executor
// to its variant, so handing an executor the wrong proposal is a compile
// error.
type Executor[A Action] interface {
	Execute(token capability.Governor, proposalID uint64, action A) error
}

// FreezeExecutor applies FreezeAsset actions through the asset manager
type FreezeExecutor struct {
	Assets *asset.Manager
}

func (x FreezeExecutor) Execute(
	token capability.Governor,
	proposalID uint64,
	action FreezeAsset,
) error {
	return x.Assets.SetActive(token, action.AssetID, !action.Freeze)
}

// UpgradeExecutor records AuthorizeUpgrade digests in the metadata store
type UpgradeExecutor struct {
	Database *database.Database
}

func (x UpgradeExecutor) Execute(
	token capability.Governor,
	proposalID uint64,
	action AuthorizeUpgrade,
) error {
	return x.Database.AddUpgradeAuthorization(
		&models.UpgradeAuthorization{
			ProposalID: types.Uint64(proposalID),
			Digest:     action.Digest,
		},
		nil,
	)
}

// EscrowExecutor applies ResolveTaskEscrow actions through the task
// workflow
type EscrowExecutor struct {
	Workflow *tasks.Workflow
}

func (x EscrowExecutor) Execute(
	token capability.Governor,
	proposalID uint64,
	action ResolveTaskEscrow,
) error {
	return x.Workflow.ResolveEscrow(
		token,
		action.TaskID,
		action.Beneficiary,
	)
}
