package codegen

import (
	"errors"
	"fmt"

	"github.com/njreid/compgen/pkg/ir"
)

// ErrNilInput is returned when a required input is missing.
var ErrNilInput = errors.New("nil input")

// ContractError reports misuse of the writer by its caller, such as an
// unbalanced scope stack or a node in a position it cannot occupy. It is
// raised as a panic while writing and returned by Generate.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("codegen: %s: %s", e.Op, e.Msg)
}

// UnsupportedShapeError reports an IR shape the writers do not handle.
type UnsupportedShapeError struct {
	Node   ir.Node
	Reason string
}

func (e *UnsupportedShapeError) Error() string {
	if src := e.Node.Source(); src != nil {
		return fmt.Sprintf("%s: unsupported %s: %s", src, e.Node.Type(), e.Reason)
	}
	return fmt.Sprintf("unsupported %s: %s", e.Node.Type(), e.Reason)
}

func contractf(op, format string, args ...any) *ContractError {
	return &ContractError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
