package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkord/ostinato/internal/store"
	"github.com/mkord/ostinato/internal/testutil"
)

func TestListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "perf.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No performances stored")
}

func TestListShowsPerformances(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "perf.db")

	lead := testutil.WritePiece(t, dir, "a.cue", testutil.MinimalPiece)
	duet := testutil.WritePiece(t, dir, "b.cue", testutil.TwoVoicePiece)
	renderJSON(t, lead, "--db", db)
	renderJSON(t, duet, "--db", db)

	out, err := execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "minimal")
	assert.Contains(t, out, "duet")
	assert.Contains(t, out, "ID")
}

func TestListRequiresDB(t *testing.T) {
	_, err := execute(t, "list")
	require.Error(t, err)
}
