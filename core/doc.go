// Package core contains the business logic of the marketplace catalog
// client. It is framework-agnostic and can be used independently of any
// particular transport or storage backend.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Market, Category, Node, Marketplace)
// - decode: Streaming XML decoder turning catalog responses into domain models
// - request: Request URI construction, retry and cancellation handling
// - catalog: The marketplace client mapping operations onto endpoint paths
// - cache: Memoizing client wrapper behind reclaimable handles
// - favorites: Favorites synchronization against a revision-checked blob store
// - errors: The error taxonomy driving retry and recovery decisions
// - interfaces: Contracts for external dependencies (transport, blob store, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "marketplace-client-api/core/catalog"
//	    "marketplace-client-api/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Transport: myTransport, // implements interfaces.Transport
//	    Logger:    myLogger,    // implements interfaces.Logger
//	}
//
//	// Create the client
//	client := catalog.NewService(deps, "https://marketplace.eclipse.org", nil)
//
//	// List markets
//	markets, err := client.ListMarkets(ctx)
package core
