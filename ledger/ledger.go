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

// Package ledger provides the record substrate the marketplace engines run
// on: uniquely owned records with version-checked updates, settlement
// accounts, marketplace custody of listed records, and an injectable clock.
// Record bodies are CBOR-encoded into the blob store; ownership and version
// live in the metadata index.
package ledger

// Identity is an account address on the underlying ledger
type Identity string

// RecordKind namespaces record IDs by the engine that owns them
type RecordKind uint8

const (
	RecordKindAsset    RecordKind = 1
	RecordKindTask     RecordKind = 2
	RecordKindProposal RecordKind = 3
)
