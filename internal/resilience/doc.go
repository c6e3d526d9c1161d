// Package resilience groups the fault-tolerance helpers used around the content store
// and the blob store.
//
//   - circuitbreaker: fail fast while the database or object store is down
//   - retry: bounded exponential backoff, used only while waiting for dependencies at startup
//
// Request paths never retry; a failed query or fetch is reported to the caller as-is.
//
// Usage Example:
//
//	exec := circuitbreaker.NewDBCircuitBreaker(db)
//	repo := sqlite.NewPostRepo(exec)
//
//	err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
