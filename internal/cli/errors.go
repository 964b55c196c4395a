package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/resiou/internal/score"
	"github.com/roach88/resiou/internal/table"
)

// Error code constants, shared by all commands.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeNotFound       = "E005" // Path not found or unreadable
	ErrCodeTargetRequired = "E010" // Scoring attempted without a target
	ErrCodeInvalidArgs    = "E011" // Invalid or missing flags
	ErrCodeSchema         = "E020" // Missing column, empty file or non-binary label
	ErrCodeSuite          = "E021" // Suite file invalid
	ErrCodeStore          = "E030" // History database failure
)

// classifyError maps a pipeline error to its CLI error code.
func classifyError(err error) string {
	switch {
	case errors.Is(err, score.ErrTargetRequired):
		return ErrCodeTargetRequired
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ErrCodeNotFound
	case errors.Is(err, table.ErrMissingColumn),
		errors.Is(err, table.ErrEmptyFile),
		errors.Is(err, table.ErrNonBinaryLabel):
		return ErrCodeSchema
	default:
		return ErrCodeGeneric
	}
}

// reportError prints err through the formatter and returns the matching
// command-level ExitError.
func reportError(f *OutputFormatter, code string, err error) error {
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}
