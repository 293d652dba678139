package harness

import (
	"context"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/mkord/ostinato/internal/compiler"
	"github.com/mkord/ostinato/internal/perform"
	"github.com/mkord/ostinato/internal/score"
)

// Result is the outcome of a scenario run.
type Result struct {
	ScenarioName string
	Pass         bool
	Errors       []string

	// Events is the rendered timeline in time order.
	Events []score.Event

	// TimelineHash commits to the timeline's canonical form.
	TimelineHash string
}

// AddError records a failed assertion and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run renders the scenario's piece and evaluates its assertions.
//
// A failed assertion does not return an error; it lands in
// Result.Errors with Pass set false. Errors are reserved for the piece
// failing to load, compile, or render.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	piece, err := loadPiece(scenario.Piece)
	if err != nil {
		return nil, err
	}

	timeline, err := perform.Render(ctx, piece)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", scenario.Name, err)
	}

	hash, err := score.TimelineHash(timeline)
	if err != nil {
		return nil, fmt.Errorf("hash %s: %w", scenario.Name, err)
	}

	result := &Result{
		ScenarioName: scenario.Name,
		Pass:         true,
		Events:       timeline.Ordered(),
		TimelineHash: hash,
	}

	for i, a := range scenario.Assertions {
		evalAssertion(result, i, &a)
	}

	return result, nil
}

func loadPiece(path string) (*compiler.Piece, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read piece file: %w", err)
	}

	v := cuecontext.New().CompileBytes(src, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile piece %s: %w", path, err)
	}

	piece, err := compiler.CompilePiece(v.LookupPath(cue.ParsePath("piece")))
	if err != nil {
		return nil, fmt.Errorf("compile piece %s: %w", path, err)
	}
	return piece, nil
}
