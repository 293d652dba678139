// Package testutil provides shared fixtures for tests that need piece
// files on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MinimalPiece is a valid single-voice piece with no stochastic
// generators. Rendering it always yields the same four events.
const MinimalPiece = `piece: {
	title: "minimal"
	voices: [{
		name:   "lead"
		steps:  4
		pitch:  {cycle: [60, 62, 64, 65]}
		rhythm: 0.5
		dur:    0.25
		amp:    0.5
	}]
}
`

// TwoVoicePiece layers a bass line under the lead. Still fully
// deterministic.
const TwoVoicePiece = `piece: {
	title: "duet"
	voices: [
		{
			name:   "lead"
			steps:  4
			pitch:  {cycle: [60, 62, 64, 65]}
			rhythm: 0.5
			dur:    0.25
			amp:    0.5
		},
		{
			name:    "bass"
			channel: 1
			steps:   2
			pitch:   36
			rhythm:  1
			dur:     1
			amp:     0.25
		},
	]
}
`

// WritePiece writes a piece source to dir and returns its path.
func WritePiece(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write piece %s: %v", name, err)
	}
	return path
}
