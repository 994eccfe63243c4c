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

// Package asset implements the data-asset lifecycle: minting with a
// validated royalty table, creator-gated metadata updates, and
// capability-gated freezing. An asset's royalty table is fixed at mint.
package asset

import (
	"errors"

	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/royalty"
)

var (
	// ErrInvalidContentHash is returned when a content hash does not
	// decode as a multihash
	ErrInvalidContentHash = errors.New("invalid content hash")

	// ErrInvalidStorageRef is returned for empty storage references and
	// for ipfs references without a parseable CID
	ErrInvalidStorageRef = errors.New("invalid storage reference")
)

// Asset is a uniquely owned data-asset record
type Asset struct {
	ID          uint64          `cbor:"0,keyasint" json:"id"`
	Creator     ledger.Identity `cbor:"1,keyasint" json:"creator"`
	ContentHash []byte          `cbor:"2,keyasint" json:"contentHash"`
	StorageRef  string          `cbor:"3,keyasint" json:"storageRef"`
	LicenseHash []byte          `cbor:"4,keyasint" json:"licenseHash"`
	Royalties   royalty.Table   `cbor:"5,keyasint" json:"royalties"`
	Active      bool            `cbor:"6,keyasint" json:"active"`
	Version     uint64          `cbor:"7,keyasint" json:"version"`
}

const (
	AssetMintedEventType   event.EventType = "asset.minted"
	AssetUpdatedEventType  event.EventType = "asset.updated"
	StorageTicketEventType event.EventType = "asset.storage_ticket"
)

// AssetMintedEvent is emitted once per newly minted asset
type AssetMintedEvent struct {
	AssetID     uint64          `json:"assetId"`
	Creator     ledger.Identity `json:"creator"`
	ContentHash []byte          `json:"contentHash"`
}

// AssetUpdatedEvent is emitted when an asset's metadata changes
type AssetUpdatedEvent struct {
	AssetID uint64 `json:"assetId"`
	Version uint64 `json:"version"`
}

// StorageTicketEvent instructs the off-chain storage layer to pin the
// referenced content. One is emitted at mint and after every update.
type StorageTicketEvent struct {
	AssetID    uint64 `json:"assetId"`
	StorageRef string `json:"storageRef"`
	Version    uint64 `json:"version"`
}
