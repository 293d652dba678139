package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
)

// GenKind tags a generator spec variant.
type GenKind string

const (
	GenConst   GenKind = "const"
	GenCycle   GenKind = "cycle"
	GenChoose  GenKind = "choose"
	GenShuffle GenKind = "shuffle"
	GenMarkov  GenKind = "markov"
)

// GenSpec is the compiled form of one generator declaration. Exactly one
// variant's fields are populated, selected by Kind.
type GenSpec struct {
	Kind GenKind

	// const
	Const float64

	// cycle / choose / shuffle
	Values []float64

	// choose (optional; all 1 when absent, must match Values otherwise)
	Weights []float64

	// shuffle
	NoRepeat bool

	// markov
	Order       int
	SeedHistory []float64
	Rules       []RuleSpec
}

// RuleSpec is one Markov transition: a history tuple, its candidate
// values, and optional per-candidate weights.
type RuleSpec struct {
	From    []float64
	To      []float64
	Weights []float64
}

// compileGenSpec parses one generator declaration. The declaration is a
// struct with exactly one of the variant keys:
//
//	{const: 0.5}
//	{cycle: [60, 62, 64]}
//	{choose: {values: [...], weights: [...]}}
//	{shuffle: {values: [...], norepeat: true}}
//	{markov: {order: 1, seed: [60], rules: [{from: [60], to: [62, 64]}]}}
func compileGenSpec(v cue.Value, field string) (*GenSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(field, err)
	}

	// A bare number is shorthand for {const: n}.
	if n, err := v.Float64(); err == nil {
		return &GenSpec{Kind: GenConst, Const: n}, nil
	}

	var found *GenSpec
	for _, kind := range []GenKind{GenConst, GenCycle, GenChoose, GenShuffle, GenMarkov} {
		kv := v.LookupPath(cue.ParsePath(string(kind)))
		if !kv.Exists() {
			continue
		}
		if found != nil {
			return nil, &CompileError{Field: field, Message: "generator must declare exactly one variant", Pos: v.Pos()}
		}
		spec, err := compileGenVariant(kind, kv, field)
		if err != nil {
			return nil, err
		}
		found = spec
	}
	if found == nil {
		return nil, &CompileError{
			Field:   field,
			Message: "generator must declare one of const, cycle, choose, shuffle, markov",
			Pos:     v.Pos(),
		}
	}
	return found, nil
}

func compileGenVariant(kind GenKind, v cue.Value, field string) (*GenSpec, error) {
	sub := field + "." + string(kind)

	switch kind {
	case GenConst:
		n, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(sub, err)
		}
		return &GenSpec{Kind: GenConst, Const: n}, nil

	case GenCycle:
		var values []float64
		if err := v.Decode(&values); err != nil {
			return nil, formatCUEError(sub, err)
		}
		if len(values) == 0 {
			return nil, &CompileError{Field: sub, Message: "cycle needs at least one value", Pos: v.Pos()}
		}
		return &GenSpec{Kind: GenCycle, Values: values}, nil

	case GenChoose:
		spec := &GenSpec{Kind: GenChoose}
		if err := decodeFloats(v, "values", &spec.Values); err != nil {
			return nil, formatCUEError(sub+".values", err)
		}
		if len(spec.Values) == 0 {
			return nil, &CompileError{Field: sub, Message: "choose needs at least one value", Pos: v.Pos()}
		}
		if err := decodeFloats(v, "weights", &spec.Weights); err != nil {
			return nil, formatCUEError(sub+".weights", err)
		}
		if len(spec.Weights) > 0 && len(spec.Weights) != len(spec.Values) {
			return nil, &CompileError{
				Field:   sub,
				Message: fmt.Sprintf("%d weights for %d values", len(spec.Weights), len(spec.Values)),
				Pos:     v.Pos(),
			}
		}
		return spec, nil

	case GenShuffle:
		spec := &GenSpec{Kind: GenShuffle}
		if err := decodeFloats(v, "values", &spec.Values); err != nil {
			return nil, formatCUEError(sub+".values", err)
		}
		if len(spec.Values) == 0 {
			return nil, &CompileError{Field: sub, Message: "shuffle needs at least one value", Pos: v.Pos()}
		}
		nr := v.LookupPath(cue.ParsePath("norepeat"))
		if nr.Exists() {
			b, err := nr.Bool()
			if err != nil {
				return nil, formatCUEError(sub+".norepeat", err)
			}
			spec.NoRepeat = b
		}
		return spec, nil

	case GenMarkov:
		spec := &GenSpec{Kind: GenMarkov, Order: 1}
		orderVal := v.LookupPath(cue.ParsePath("order"))
		if orderVal.Exists() {
			order, err := orderVal.Int64()
			if err != nil {
				return nil, formatCUEError(sub+".order", err)
			}
			spec.Order = int(order)
		}
		if err := decodeFloats(v, "seed", &spec.SeedHistory); err != nil {
			return nil, formatCUEError(sub+".seed", err)
		}
		if len(spec.SeedHistory) != spec.Order {
			return nil, &CompileError{
				Field:   sub,
				Message: fmt.Sprintf("seed history has %d values, want order %d", len(spec.SeedHistory), spec.Order),
				Pos:     v.Pos(),
			}
		}

		rulesVal := v.LookupPath(cue.ParsePath("rules"))
		if !rulesVal.Exists() {
			return nil, &CompileError{Field: sub, Message: "markov needs at least one rule", Pos: v.Pos()}
		}
		iter, err := rulesVal.List()
		if err != nil {
			return nil, formatCUEError(sub+".rules", err)
		}
		for i := 0; iter.Next(); i++ {
			rule, err := compileRule(iter.Value(), fmt.Sprintf("%s.rules[%d]", sub, i), spec.Order)
			if err != nil {
				return nil, err
			}
			spec.Rules = append(spec.Rules, *rule)
		}
		if len(spec.Rules) == 0 {
			return nil, &CompileError{Field: sub, Message: "markov needs at least one rule", Pos: rulesVal.Pos()}
		}
		return spec, nil

	default:
		return nil, &CompileError{Field: field, Message: fmt.Sprintf("unknown generator kind %q", kind)}
	}
}

func compileRule(v cue.Value, field string, order int) (*RuleSpec, error) {
	rule := &RuleSpec{}
	if err := decodeFloats(v, "from", &rule.From); err != nil {
		return nil, formatCUEError(field+".from", err)
	}
	if len(rule.From) != order {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("from has %d values, want order %d", len(rule.From), order),
			Pos:     v.Pos(),
		}
	}
	if err := decodeFloats(v, "to", &rule.To); err != nil {
		return nil, formatCUEError(field+".to", err)
	}
	if len(rule.To) == 0 {
		return nil, &CompileError{Field: field, Message: "to needs at least one candidate", Pos: v.Pos()}
	}
	if err := decodeFloats(v, "weights", &rule.Weights); err != nil {
		return nil, formatCUEError(field+".weights", err)
	}
	if len(rule.Weights) > 0 && len(rule.Weights) != len(rule.To) {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("%d weights for %d candidates", len(rule.Weights), len(rule.To)),
			Pos:     v.Pos(),
		}
	}
	return rule, nil
}

// decodeFloats decodes an optional list field into dst, leaving dst
// untouched when the field is absent.
func decodeFloats(v cue.Value, name string, dst *[]float64) error {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return nil
	}
	return fv.Decode(dst)
}
