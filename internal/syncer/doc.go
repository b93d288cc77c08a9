// Package syncer implements the bulk synchronization engine that mirrors the
// remote user collection into the local store.
//
// Pages are fetched sequentially because each page's cursor depends on the
// previous response. Records from a fetched page are mapped independently and
// dispatched to a bounded pool of upsert workers; excess work queues rather
// than spawning unbounded goroutines, which is the backpressure protecting
// the store. A malformed record is skipped with a reason, a failing upsert is
// retried with exponential backoff a bounded number of times, and neither
// aborts the run. Transient page-fetch errors are retried; rate limits are
// honored; auth failures abort immediately.
//
// The run is additive: records absent from the remote pass are never deleted
// locally.
package syncer
