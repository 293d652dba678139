package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/mkord/ostinato/internal/compiler"
)

// LoadPiece reads and compiles a CUE piece file.
func LoadPiece(path string) (*compiler.Piece, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read piece file: %w", err)
	}

	v := cuecontext.New().CompileBytes(src, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	piece, err := compiler.CompilePiece(v.LookupPath(cue.ParsePath("piece")))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return piece, nil
}

// ValidatePieceFile reads a piece file and returns every problem found,
// at voice granularity. A nil return means the piece compiles.
func ValidatePieceFile(path string) []error {
	src, err := os.ReadFile(path)
	if err != nil {
		return []error{fmt.Errorf("read piece file: %w", err)}
	}

	v := cuecontext.New().CompileBytes(src, cue.Filename(path))
	if err := v.Err(); err != nil {
		return []error{fmt.Errorf("compile %s: %w", path, err)}
	}

	return compiler.ValidatePiece(v.LookupPath(cue.ParsePath("piece")))
}
