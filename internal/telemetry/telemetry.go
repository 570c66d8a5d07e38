// Package telemetry provides the structured logger used by the host-facing layers of this
// module (txbuilder, cmd/privpay-fixture). The pure cryptographic packages never import this
// package — they stay silent, side-effect-free functions of their arguments.
package telemetry

import "log/slog"

// Component returns a logger tagged with the given component name, matching the
// slog.Default().With("component", ...) idiom used throughout this module's host layer.
func Component(name string) *slog.Logger {
	return slog.Default().With("component", name)
}
