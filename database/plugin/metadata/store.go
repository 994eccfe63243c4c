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

package metadata

import (
	"fmt"

	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/plugin"
	"github.com/blinklabs-io/magpie/database/types"
	"gorm.io/gorm"
)

// MetadataStore is the interface for record index and settlement storage.
// Write operations accept an optional transaction handle; a nil transaction
// runs the operation against the store directly.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
	Transaction() types.Txn

	// Record index
	GetRecord(uint8, uint64, types.Txn) (*models.Record, error)
	SetRecord(*models.Record, types.Txn) error
	MaxRecordID(uint8, types.Txn) (uint64, error)

	// Settlement accounts
	GetAccount(string, types.Txn) (*models.Account, error)
	CreditAccount(string, uint64, types.Txn) error

	// Marketplace listings
	CreateListing(*models.Listing, types.Txn) error
	GetListing(uint64, types.Txn) (*models.Listing, error)
	CloseListing(uint64, types.Txn) error

	// Task reviews
	AddTaskReview(*models.TaskReview, types.Txn) error
	GetTaskReviews(uint64, types.Txn) ([]models.TaskReview, error)

	// Governance votes
	AddGovernanceVote(*models.GovernanceVote, types.Txn) error
	GetGovernanceVotes(uint64, types.Txn) ([]models.GovernanceVote, error)

	// Upgrade authorizations
	AddUpgradeAuthorization(*models.UpgradeAuthorization, types.Txn) error
	GetUpgradeAuthorizations(types.Txn) ([]models.UpgradeAuthorization, error)
}

// New returns the started metadata plugin selected by name
func New(pluginName string) (MetadataStore, error) {
	// Get and start the plugin
	p, err := plugin.StartPlugin(plugin.PluginTypeMetadata, pluginName)
	if err != nil {
		return nil, err
	}

	// Type assert to MetadataStore interface
	metadataStore, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement MetadataStore interface",
			pluginName,
		)
	}

	return metadataStore, nil
}
