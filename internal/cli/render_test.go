package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkord/ostinato/internal/store"
	"github.com/mkord/ostinato/internal/testutil"
)

func renderJSON(t *testing.T, args ...string) RenderResult {
	t.Helper()
	out, err := execute(t, append([]string{"--format", "json", "render"}, args...)...)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result RenderResult
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}

func TestRenderText(t *testing.T) {
	piece := testutil.WritePiece(t, t.TempDir(), "p.cue", testutil.MinimalPiece)

	out, err := execute(t, "render", piece)
	require.NoError(t, err)
	assert.Contains(t, out, `Rendered "minimal": 4 events`)
	assert.Contains(t, out, "Timeline hash: ")
}

func TestRenderJSON(t *testing.T) {
	piece := testutil.WritePiece(t, t.TempDir(), "p.cue", testutil.MinimalPiece)

	result := renderJSON(t, piece)
	assert.Equal(t, "minimal", result.Title)
	assert.Equal(t, 4, result.EventCount)
	assert.Equal(t, 1.5, result.Span)
	assert.NotEmpty(t, result.TimelineHash)
	assert.Empty(t, result.PerformanceID, "no --db, nothing stored")
}

func TestRenderDeterministicHash(t *testing.T) {
	piece := testutil.WritePiece(t, t.TempDir(), "p.cue", testutil.MinimalPiece)

	first := renderJSON(t, piece)
	second := renderJSON(t, piece)
	assert.Equal(t, first.TimelineHash, second.TimelineHash)
}

func TestRenderSeedOverride(t *testing.T) {
	src := `piece: {
	title: "dice"
	seed:  1
	voices: [{
		steps:  32
		pitch:  {choose: {values: [60, 62, 64, 67, 69]}}
		rhythm: 0.5
		dur:    0.25
		amp:    0.5
	}]
}
`
	piece := testutil.WritePiece(t, t.TempDir(), "p.cue", src)

	base := renderJSON(t, piece)
	same := renderJSON(t, piece, "--seed", "1")
	other := renderJSON(t, piece, "--seed", "2")

	assert.Equal(t, base.TimelineHash, same.TimelineHash)
	assert.NotEqual(t, base.TimelineHash, other.TimelineHash)
	assert.Equal(t, int64(2), other.Seed)
}

func TestRenderStoresPerformance(t *testing.T) {
	dir := t.TempDir()
	piece := testutil.WritePiece(t, dir, "p.cue", testutil.MinimalPiece)
	db := filepath.Join(dir, "perf.db")

	result := renderJSON(t, piece, "--db", db)
	require.NotEmpty(t, result.PerformanceID)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	perf, err := st.ReadPerformance(context.Background(), result.PerformanceID)
	require.NoError(t, err)
	assert.Equal(t, "minimal", perf.Title)
	assert.Equal(t, result.TimelineHash, perf.TimelineHash)
	assert.Equal(t, 4, perf.EventCount)
}

func TestRenderMissingPiece(t *testing.T) {
	_, err := execute(t, "render", "no_such_file.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRenderInvalidPiece(t *testing.T) {
	piece := testutil.WritePiece(t, t.TempDir(), "bad.cue", `piece: voices: []`)

	_, err := execute(t, "render", piece)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
