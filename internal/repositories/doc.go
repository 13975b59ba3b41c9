// Package repositories implements SQLite persistence for the player's durable state.
//
// The player keeps only two durable values, the playlist list and the theme, so storage is a
// key/value table rather than one table per entity.
//
// Key Implementations:
//   - [KeyValueRepository] : JSON documents keyed by name, upserted on every write
//
// The schema is created by the embedded migrations in the shared package.
package repositories
