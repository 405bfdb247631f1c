// Package chain runs a list of external commands strictly one after another.
// Each command runs in its own working directory with stdout and stderr
// streamed to the same writer as they arrive. A failing command never stops
// the chain: every queued command runs exactly once, in order.
package chain
