// Package store provides durable storage for rendered performances.
//
// A performance row records the piece metadata, the seed it was rendered
// under, and the timeline hash; its events live in a child table keyed by
// emission index. Storage is SQLite in WAL mode with a single writer
// connection. Writes are transactional: a performance and its events land
// together or not at all.
package store
