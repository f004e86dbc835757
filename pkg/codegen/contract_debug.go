//go:build !production

package codegen

import "log/slog"

// contractViolation panics with err. Builds tagged production log it
// instead.
func contractViolation(_ *slog.Logger, err *ContractError) {
	panic(err)
}
