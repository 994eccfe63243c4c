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

package magpie

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/magpie/api"
	"github.com/blinklabs-io/magpie/asset"
	"github.com/blinklabs-io/magpie/capability"
	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/governance"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/market"
	"github.com/blinklabs-io/magpie/royalty"
	"github.com/blinklabs-io/magpie/tasks"
)

type Node struct {
	eventBus      *event.EventBus
	db            *database.Database
	store         *ledger.Store
	accounts      *ledger.Accounts
	custody       *ledger.Custody
	capRegistry   *capability.Registry
	tokens        capability.InitialTokens
	royaltyEngine *royalty.Engine
	assets        *asset.Manager
	market        *market.Market
	workflow      *tasks.Workflow
	governance    *governance.Engine
	api           *api.Api
	shutdownFuncs []func(context.Context) error
	config        Config
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Node, error) {
	eventBus := event.NewEventBus(event.EventBusConfig{
		Logger:       cfg.logger,
		PromRegistry: cfg.promRegistry,
	})
	n := &Node{
		config:   cfg,
		eventBus: eventBus,
		done:     make(chan struct{}),
	}
	return n, nil
}

func (n *Node) Run() error {
	// Load database
	dbConfig := &database.Config{
		DataDir:        n.config.dataDir,
		Logger:         n.config.logger,
		PromRegistry:   n.config.promRegistry,
		BlobPlugin:     n.config.blobPlugin,
		MetadataPlugin: n.config.metadataPlugin,
	}
	db, err := database.New(dbConfig)
	if db == nil {
		n.config.logger.Error(
			"failed to create database",
			"error",
			"empty database returned",
		)
		return errors.New("empty database returned")
	}
	n.db = db
	if err != nil {
		var dbErr database.CommitTimestampError
		if errors.As(err, &dbErr) {
			return fmt.Errorf(
				"database stores are out of sync, manual recovery required: %w",
				err,
			)
		}
		return fmt.Errorf("failed to open database: %w", err)
	}
	// Load record store
	store, err := ledger.NewStore(ledger.StoreConfig{
		Logger:   n.config.logger,
		Database: n.db,
	})
	if err != nil {
		return fmt.Errorf("failed to load record store: %w", err)
	}
	n.store = store
	// Load accounts
	accounts, err := ledger.NewAccounts(ledger.AccountsConfig{
		Logger:   n.config.logger,
		Database: n.db,
	})
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	n.accounts = accounts
	// Load custody
	custody, err := ledger.NewCustody(ledger.CustodyConfig{
		Logger:   n.config.logger,
		Database: n.db,
		Store:    n.store,
	})
	if err != nil {
		return fmt.Errorf("failed to load custody: %w", err)
	}
	n.custody = custody
	// Bootstrap capability tokens
	n.capRegistry, n.tokens = capability.NewRegistry(
		capability.RegistryConfig{
			Logger: n.config.logger,
		},
	)
	// Initialize royalty engine
	royaltyEngine, err := royalty.NewEngine(royalty.EngineConfig{
		Logger:       n.config.logger,
		Accounts:     n.accounts,
		PromRegistry: n.config.promRegistry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize royalty engine: %w", err)
	}
	n.royaltyEngine = royaltyEngine
	// Initialize asset manager
	assets, err := asset.NewManager(asset.ManagerConfig{
		Logger:       n.config.logger,
		EventBus:     n.eventBus,
		Store:        n.store,
		Accounts:     n.accounts,
		PromRegistry: n.config.promRegistry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize asset manager: %w", err)
	}
	n.assets = assets
	// Initialize market
	mkt, err := market.NewMarket(market.MarketConfig{
		Logger:       n.config.logger,
		EventBus:     n.eventBus,
		Assets:       n.assets,
		Custody:      n.custody,
		Royalty:      n.royaltyEngine,
		PromRegistry: n.config.promRegistry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize market: %w", err)
	}
	n.market = mkt
	// Initialize task workflow
	workflow, err := tasks.NewWorkflow(tasks.WorkflowConfig{
		Logger:       n.config.logger,
		EventBus:     n.eventBus,
		Store:        n.store,
		Database:     n.db,
		Accounts:     n.accounts,
		PromRegistry: n.config.promRegistry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize task workflow: %w", err)
	}
	n.workflow = workflow
	// Initialize governance engine
	govEngine, err := governance.NewEngine(governance.EngineConfig{
		Logger:       n.config.logger,
		EventBus:     n.eventBus,
		Store:        n.store,
		Database:     n.db,
		PromRegistry: n.config.promRegistry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize governance engine: %w", err)
	}
	n.governance = govEngine
	// Start API listener
	if n.config.apiListenAddress != "" {
		adapter, err := api.NewNodeAdapter(
			n.assets,
			n.workflow,
			n.governance,
			n.accounts,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize API adapter: %w", err)
		}
		apiCtx, apiCancel := context.WithCancel(context.Background())
		n.api = api.New(
			api.ApiConfig{
				ListenAddress: n.config.apiListenAddress,
			},
			adapter,
			n.config.logger,
		)
		if err := n.api.Start(apiCtx); err != nil {
			apiCancel()
			return fmt.Errorf("failed to start API server: %w", err)
		}
		n.shutdownFuncs = append(
			n.shutdownFuncs,
			func(ctx context.Context) error {
				apiCancel()
				return n.api.Stop(ctx)
			},
		)
	}

	// Wait for shutdown signal
	<-n.done
	return nil
}

// Assets returns the asset manager
func (n *Node) Assets() *asset.Manager {
	return n.assets
}

// Market returns the trading engine
func (n *Node) Market() *market.Market {
	return n.market
}

// Workflow returns the labeling task workflow engine
func (n *Node) Workflow() *tasks.Workflow {
	return n.workflow
}

// Governance returns the governance engine
func (n *Node) Governance() *governance.Engine {
	return n.governance
}

// Accounts returns the account ledger
func (n *Node) Accounts() *ledger.Accounts {
	return n.accounts
}

// Registry returns the capability token registry
func (n *Node) Registry() *capability.Registry {
	return n.capRegistry
}

// InitialTokens returns the bootstrap capability token set
func (n *Node) InitialTokens() capability.InitialTokens {
	return n.tokens
}

func (n *Node) Stop() error {
	var err error
	n.shutdownOnce.Do(func() {
		err = n.shutdown()
	})
	return err
}

func (n *Node) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if n.config.shutdownTimeout > 0 {
		shutdownTimeout = n.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	n.config.logger.Debug("starting graceful shutdown")

	// Phase 1: Stop accepting new work
	n.config.logger.Debug("shutdown phase 1: stopping new work")

	// Call registered shutdown functions
	for _, fn := range n.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	n.shutdownFuncs = nil

	// Phase 2: Flush state and close database
	n.config.logger.Debug("shutdown phase 2: flushing state")

	if n.db != nil {
		if closeErr := n.db.Close(); closeErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("database close: %w", closeErr),
			)
		}
	}

	// Phase 3: Cleanup resources
	n.config.logger.Debug("shutdown phase 3: cleanup resources")

	if n.eventBus != nil {
		n.eventBus.Stop()
	}

	n.config.logger.Debug("graceful shutdown complete")
	close(n.done)
	return err
}
