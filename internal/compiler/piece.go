package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/mkord/ostinato/internal/num"
)

// Piece is the compiled form of a CUE piece definition.
type Piece struct {
	Title  string
	Seed   int64
	Voices []Voice
}

// Voice is one concurrent line of the piece: a composer process template.
type Voice struct {
	Name    string
	Channel int
	Offset  float64
	Steps   int

	Pitch  *GenSpec
	Rhythm *GenSpec
	Dur    *GenSpec

	// Amp and AmpEnv are alternatives: a generator stream, or a
	// breakpoint envelope evaluated against elapsed voice time.
	Amp    *GenSpec
	AmpEnv []num.Point

	// Jitter displaces each event start by a uniform random offset in
	// [-Jitter, +Jitter], clamped at zero. Zero keeps the voice strictly
	// on the grid.
	Jitter float64
}

// CompilePiece parses the "piece" struct of a CUE value.
//
// Usage:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileBytes(src)
//	piece, err := compiler.CompilePiece(v.LookupPath(cue.ParsePath("piece")))
func CompilePiece(v cue.Value) (*Piece, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError("piece", err)
	}
	if !v.Exists() {
		return nil, &CompileError{Field: "piece", Message: "piece struct is required"}
	}

	p := &Piece{}

	titleVal := v.LookupPath(cue.ParsePath("title"))
	if titleVal.Exists() {
		title, err := titleVal.String()
		if err != nil {
			return nil, formatCUEError("title", err)
		}
		p.Title = title
	}

	seedVal := v.LookupPath(cue.ParsePath("seed"))
	if seedVal.Exists() {
		seed, err := seedVal.Int64()
		if err != nil {
			return nil, formatCUEError("seed", err)
		}
		p.Seed = seed
	}

	voicesVal := v.LookupPath(cue.ParsePath("voices"))
	if !voicesVal.Exists() {
		return nil, &CompileError{Field: "voices", Message: "at least one voice is required", Pos: v.Pos()}
	}
	iter, err := voicesVal.List()
	if err != nil {
		return nil, formatCUEError("voices", err)
	}
	for i := 0; iter.Next(); i++ {
		voice, err := compileVoice(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		p.Voices = append(p.Voices, *voice)
	}
	if len(p.Voices) == 0 {
		return nil, &CompileError{Field: "voices", Message: "at least one voice is required", Pos: voicesVal.Pos()}
	}

	return p, nil
}

func compileVoice(v cue.Value, idx int) (*Voice, error) {
	field := func(name string) string { return fmt.Sprintf("voices[%d].%s", idx, name) }

	voice := &Voice{Name: fmt.Sprintf("voice-%d", idx)}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(field("name"), err)
		}
		voice.Name = name
	}

	chanVal := v.LookupPath(cue.ParsePath("channel"))
	if chanVal.Exists() {
		ch, err := chanVal.Int64()
		if err != nil {
			return nil, formatCUEError(field("channel"), err)
		}
		if ch < 0 {
			return nil, &CompileError{Field: field("channel"), Message: fmt.Sprintf("must be >= 0, got %d", ch), Pos: chanVal.Pos()}
		}
		voice.Channel = int(ch)
	}

	offsetVal := v.LookupPath(cue.ParsePath("offset"))
	if offsetVal.Exists() {
		offset, err := offsetVal.Float64()
		if err != nil {
			return nil, formatCUEError(field("offset"), err)
		}
		if offset < 0 {
			return nil, &CompileError{Field: field("offset"), Message: fmt.Sprintf("must be >= 0, got %v", offset), Pos: offsetVal.Pos()}
		}
		voice.Offset = offset
	}

	stepsVal := v.LookupPath(cue.ParsePath("steps"))
	if !stepsVal.Exists() {
		return nil, &CompileError{Field: field("steps"), Message: "steps is required", Pos: v.Pos()}
	}
	steps, err := stepsVal.Int64()
	if err != nil {
		return nil, formatCUEError(field("steps"), err)
	}
	if steps < 1 {
		return nil, &CompileError{Field: field("steps"), Message: fmt.Sprintf("must be >= 1, got %d", steps), Pos: stepsVal.Pos()}
	}
	voice.Steps = int(steps)

	jitterVal := v.LookupPath(cue.ParsePath("jitter"))
	if jitterVal.Exists() {
		jitter, err := jitterVal.Float64()
		if err != nil {
			return nil, formatCUEError(field("jitter"), err)
		}
		if jitter < 0 {
			return nil, &CompileError{Field: field("jitter"), Message: fmt.Sprintf("must be >= 0, got %v", jitter), Pos: jitterVal.Pos()}
		}
		voice.Jitter = jitter
	}

	for _, g := range []struct {
		name     string
		dst      **GenSpec
		required bool
	}{
		{"pitch", &voice.Pitch, true},
		{"rhythm", &voice.Rhythm, true},
		{"dur", &voice.Dur, true},
		{"amp", &voice.Amp, false},
	} {
		gv := v.LookupPath(cue.ParsePath(g.name))
		if !gv.Exists() {
			if g.required {
				return nil, &CompileError{Field: field(g.name), Message: g.name + " generator is required", Pos: v.Pos()}
			}
			continue
		}
		spec, err := compileGenSpec(gv, field(g.name))
		if err != nil {
			return nil, err
		}
		*g.dst = spec
	}

	envVal := v.LookupPath(cue.ParsePath("ampEnv"))
	if envVal.Exists() {
		points, err := compileEnvPoints(envVal, field("ampEnv"))
		if err != nil {
			return nil, err
		}
		voice.AmpEnv = points
	}

	if voice.Amp == nil && len(voice.AmpEnv) == 0 {
		return nil, &CompileError{Field: field("amp"), Message: "either amp or ampEnv is required", Pos: v.Pos()}
	}

	return voice, nil
}

// compileEnvPoints parses [[x, y], ...] breakpoint pairs.
func compileEnvPoints(v cue.Value, field string) ([]num.Point, error) {
	var raw [][]float64
	if err := v.Decode(&raw); err != nil {
		return nil, formatCUEError(field, err)
	}
	points := make([]num.Point, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, &CompileError{Field: field, Message: fmt.Sprintf("point %d must be [x, y]", i), Pos: v.Pos()}
		}
		points[i] = num.Point{X: pair[0], Y: pair[1]}
	}
	// Validate through the envelope constructor so the rules stay in one place.
	if _, err := num.NewEnv(points...); err != nil {
		return nil, &CompileError{Field: field, Message: err.Error(), Pos: v.Pos()}
	}
	return points, nil
}
