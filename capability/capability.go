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

// Package capability implements unforgeable authorization tokens. A token
// is proof of authorization by possession: operations take a token of the
// required role as an argument, and holding one is the entire check. The
// role interfaces carry unexported marker methods and the backing structs
// are unexported, so tokens cannot be constructed or implemented outside
// this package; they only come from a Registry.
package capability

import (
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// ErrNotAuthorized is returned when an operation requires a token or an
// identity match that the caller does not have.
var ErrNotAuthorized = errors.New("not authorized")

// Role identifies what a capability token permits.
type Role string

const (
	RoleGovernor  Role = "governor"
	RoleUploader  Role = "uploader"
	RoleLabeler   Role = "labeler"
	RoleValidator Role = "validator"
	RoleAdmin     Role = "admin"
)

// Token is the surface common to all capability tokens. The ID exists only
// for audit logging; it confers nothing.
type Token interface {
	ID() uuid.UUID
	Role() Role
}

// Governor authorizes governance actions: proposal creation, execution, and
// asset freezes.
type Governor interface {
	Token
	governorCap()
	freezeCap()
}

// Uploader authorizes asset minting and task publication.
type Uploader interface {
	Token
	uploaderCap()
}

// Labeler authorizes claiming labeling tasks.
type Labeler interface {
	Token
	labelerCap()
}

// Validator authorizes reviewing submitted task results.
type Validator interface {
	Token
	validatorCap()
}

// Admin authorizes marketplace administration, including issuing further
// Labeler and Validator tokens.
type Admin interface {
	Token
	adminCap()
	freezeCap()
}

// Freezer authorizes flipping an asset's active flag. Governor and Admin
// tokens both satisfy it.
type Freezer interface {
	Token
	freezeCap()
}

type token struct {
	id   uuid.UUID
	role Role
}

func (t token) ID() uuid.UUID {
	return t.id
}

func (t token) Role() Role {
	return t.role
}

type governorToken struct{ token }

func (governorToken) governorCap() {}
func (governorToken) freezeCap()   {}

type uploaderToken struct{ token }

func (uploaderToken) uploaderCap() {}

type labelerToken struct{ token }

func (labelerToken) labelerCap() {}

type validatorToken struct{ token }

func (validatorToken) validatorCap() {}

type adminToken struct{ token }

func (adminToken) adminCap()  {}
func (adminToken) freezeCap() {}

// RegistryConfig is the configuration for the capability Registry.
type RegistryConfig struct {
	Logger *slog.Logger
}

// Registry issues capability tokens. Create one with NewRegistry; the zero
// value has no logger and no bootstrap set.
type Registry struct {
	logger *slog.Logger
}

// InitialTokens is the bootstrap token set, one per role, handed to the
// deployer at initialization.
type InitialTokens struct {
	Governor  Governor
	Uploader  Uploader
	Labeler   Labeler
	Validator Validator
	Admin     Admin
}

// NewRegistry creates a Registry and mints the initial token set.
func NewRegistry(cfg RegistryConfig) (*Registry, InitialTokens) {
	r := &Registry{
		logger: cfg.Logger,
	}
	// Init logger
	if r.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	tokens := InitialTokens{
		Governor:  governorToken{r.mint(RoleGovernor)},
		Uploader:  uploaderToken{r.mint(RoleUploader)},
		Labeler:   labelerToken{r.mint(RoleLabeler)},
		Validator: validatorToken{r.mint(RoleValidator)},
		Admin:     adminToken{r.mint(RoleAdmin)},
	}
	return r, tokens
}

func (r *Registry) mint(role Role) token {
	t := token{
		id:   uuid.New(),
		role: role,
	}
	r.logger.Info(
		"issued capability token",
		"component", "capability",
		"role", string(role),
		"token_id", t.id.String(),
	)
	return t
}

// IssueLabeler mints an additional Labeler token. Requires possession of
// the Admin token.
func (r *Registry) IssueLabeler(auth Admin) (Labeler, error) {
	if auth == nil {
		return nil, ErrNotAuthorized
	}
	return labelerToken{r.mint(RoleLabeler)}, nil
}

// IssueValidator mints an additional Validator token. Requires possession
// of the Admin token.
func (r *Registry) IssueValidator(auth Admin) (Validator, error) {
	if auth == nil {
		return nil, ErrNotAuthorized
	}
	return validatorToken{r.mint(RoleValidator)}, nil
}

// IssueUploader mints an additional Uploader token. Requires possession of
// the Admin token.
func (r *Registry) IssueUploader(auth Admin) (Uploader, error) {
	if auth == nil {
		return nil, ErrNotAuthorized
	}
	return uploaderToken{r.mint(RoleUploader)}, nil
}
