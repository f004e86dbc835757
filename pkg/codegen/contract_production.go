//go:build production

package codegen

import "log/slog"

// contractViolation logs and lets the caller recover by popping the top
// frame.
func contractViolation(log *slog.Logger, err *ContractError) {
	log.Error("contract violation", "op", err.Op, "error", err.Msg)
}
