// Package ledger resolves effective-dated amounts and aggregates
// transactions into monthly totals.
//
// Every function in this package is a pure computation over a snapshot of
// transactions. Nothing here touches storage, takes a lock or mutates its
// arguments, so callers may share a snapshot across goroutines freely.
package ledger
