package perform

import (
	"fmt"
	"math/rand"

	"github.com/mkord/ostinato/internal/compiler"
	"github.com/mkord/ostinato/internal/pattern"
)

// buildGen instantiates the generator a compiled spec describes. Stochastic
// variants draw from rng; const and cycle never touch it.
func buildGen(spec *compiler.GenSpec, rng *rand.Rand) (pattern.Gen[float64], error) {
	switch spec.Kind {
	case compiler.GenConst:
		v := spec.Const
		return pattern.Func[float64](func() (float64, error) { return v, nil }), nil

	case compiler.GenCycle:
		return pattern.NewCycle(spec.Values...)

	case compiler.GenChoose:
		return pattern.NewChoose(rng, literals(spec.Values, spec.Weights)...)

	case compiler.GenShuffle:
		var opts []pattern.ShuffleOption[float64]
		if spec.NoRepeat {
			opts = append(opts, pattern.WithNoImmediateRepeat[float64]())
		}
		return pattern.NewShuffle(rng, spec.Values, opts...)

	case compiler.GenMarkov:
		transitions := make([]pattern.Transition[float64], len(spec.Rules))
		for i, rule := range spec.Rules {
			transitions[i] = pattern.Transition[float64]{
				From:    rule.From,
				Choices: literals(rule.To, rule.Weights),
			}
		}
		return pattern.NewMarkov(rng, spec.Order, spec.SeedHistory, transitions)

	default:
		return nil, fmt.Errorf("unknown generator kind %q", spec.Kind)
	}
}

// literals pairs candidate values with their weights, defaulting every
// weight to 1 when none were given.
func literals(values, weights []float64) []pattern.Choice[float64] {
	choices := make([]pattern.Choice[float64], len(values))
	for i, v := range values {
		w := 1.0
		if len(weights) > 0 {
			w = weights[i]
		}
		choices[i] = pattern.Lit(v, w)
	}
	return choices
}
