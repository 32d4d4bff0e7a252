// Package consts holds process-wide switches that don't belong to any
// one subsystem.
package consts

// ModeDebug gates assertions and the debug overlay/profiling hooks in
// cmd/tessera. It is a var, not a const, so a debug build can flip it
// at init time without needing a build tag per call site.
var ModeDebug = false
