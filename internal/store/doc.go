// Package store provides SQLite-backed storage for saved searches.
//
// A saved search is a named query held in canonical form: the query text is
// the serializer's output for the parsed clauses, and the fingerprint is the
// hash of the compiled query tree. Two saved searches with the same
// fingerprint select the same documents.
//
// # Ordering
//
// Every saved search carries a logical seq assigned on save. Listing is
// always ORDER BY seq ASC, id ASC COLLATE BINARY, so results do not depend on
// wall-clock time or insertion timing.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
