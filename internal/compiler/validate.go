package compiler

import "cuelang.org/go/cue"

// ValidatePiece checks a piece definition, collecting errors at voice
// granularity rather than stopping at the first. A nil return means the
// piece compiles.
func ValidatePiece(v cue.Value) []error {
	if err := v.Err(); err != nil {
		return []error{formatCUEError("piece", err)}
	}
	if !v.Exists() {
		return []error{&CompileError{Field: "piece", Message: "piece struct is required"}}
	}

	var errs []error

	if titleVal := v.LookupPath(cue.ParsePath("title")); titleVal.Exists() {
		if _, err := titleVal.String(); err != nil {
			errs = append(errs, formatCUEError("title", err))
		}
	}
	if seedVal := v.LookupPath(cue.ParsePath("seed")); seedVal.Exists() {
		if _, err := seedVal.Int64(); err != nil {
			errs = append(errs, formatCUEError("seed", err))
		}
	}

	voicesVal := v.LookupPath(cue.ParsePath("voices"))
	if !voicesVal.Exists() {
		return append(errs, &CompileError{Field: "voices", Message: "at least one voice is required", Pos: v.Pos()})
	}
	iter, err := voicesVal.List()
	if err != nil {
		return append(errs, formatCUEError("voices", err))
	}

	count := 0
	for i := 0; iter.Next(); i++ {
		count++
		if _, err := compileVoice(iter.Value(), i); err != nil {
			errs = append(errs, err)
		}
	}
	if count == 0 {
		errs = append(errs, &CompileError{Field: "voices", Message: "at least one voice is required", Pos: voicesVal.Pos()})
	}

	return errs
}
