package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/mkord/ostinato/internal/score"
)

// snapshot converts a result to the canonical map form used for golden
// comparison. The timeline hash is deliberately excluded: the events are
// the source of truth, and the hash is derived from them.
func (r *Result) snapshot() map[string]any {
	return map[string]any{
		"scenario_name": r.ScenarioName,
		"events":        score.SnapshotEvents(r.Events),
	}
}

// RunWithGolden executes a scenario and compares the timeline snapshot
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}

	data, err := score.MarshalCanonical(result.snapshot())
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
