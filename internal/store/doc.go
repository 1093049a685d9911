// Package store provides SQLite-backed durable storage for pass runs.
//
// Every `eggir lower --record` appends one row describing what a pass did
// to a program: the digests of its input and output, and the command,
// global and reference counts.
//
// # Ordering
//
//   - Runs are ordered by seq, a logical clock assigned on insert
//   - Wall-clock time is never stored, so two logs of the same runs compare equal
//   - Queries use ORDER BY seq ASC, id COLLATE BINARY ASC
//
// # Idempotency
//
// RecordRun ignores a second write with the same id. Re-recording a run
// returns the seq the first write was given.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait on lock contention
//   - foreign_keys=ON
package store
