package score

// Version constants for the snapshot schema and engine.
const (
	// SnapshotVersion is the snapshot/serialization schema version.
	SnapshotVersion = "1"

	// EngineVersion is the ostinato engine version.
	EngineVersion = "0.1.0"
)
