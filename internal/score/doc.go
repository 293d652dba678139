// Package score provides the event data model for ostinato.
//
// This package contains the Event record, the Timeline sink that composer
// processes append to, and the canonical snapshot serialization used for
// hashing and golden comparison. All other internal packages may import
// score; score imports nothing internal. This keeps the event model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Events are value types and are never mutated after Add
//   - Timeline preserves insertion order; time ordering is derived on
//     demand by a stable sort (ties break by insertion order)
//   - Snapshot JSON uses sorted keys, NFC-normalized strings, and
//     shortest round-trip float formatting so identical timelines always
//     produce identical bytes
package score
