// Package store keeps an append-only SQLite history of scoring runs.
//
// Each run row records the input paths, their content fingerprints, the
// options that affect the score and the full confusion counts. Rows are never
// updated. Listing orders by the insertion sequence, newest first.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - schema version tracked in PRAGMA user_version
package store
