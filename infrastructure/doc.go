// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as network I/O, blob persistence and logging.
//
// The infrastructure package is organized by technical concern:
//
// - transport/standard: http.Client transport with error classification
// - blobstore/memory: In-memory revision-checked blob store
// - blobstore/redis: Redis blob store using WATCH/MULTI optimistic writes
// - blobstore/sqlite: SQLite blob store using a version column
// - logger/logrus: Structured logger implementation
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
// - Production-ready: Include timeouts, classification and error handling
//
// # Transport
//
// The transport classifies every failure into the core error taxonomy
// before it leaves the package:
//
//	transport := standard.New(30 * time.Second)
//	body, err := transport.Stream(ctx, "https://marketplace.eclipse.org/api/p")
//	if err != nil {
//	    // err is a core/errors type, e.g. *NotFoundError
//	}
//	defer body.Close()
//
// # Blob Stores
//
// All three stores share the same optimistic-write contract:
//
//	store := memory.New()
//	rev, err := store.Put(ctx, "marketplace_favorites", "1,2,3", "")
//	blob, err := store.Get(ctx, "marketplace_favorites")
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	log := logrus.New("info")
//	log.Info("resolving nodes", map[string]interface{}{
//	    "count": 4,
//	})
package infrastructure
