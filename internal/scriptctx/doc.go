// Package scriptctx wraps one goja runtime as an isolated scripting context:
// its own global object and heap, a stable identity the host can key state
// by, and a console that writes into the host logger.
//
// A Context is not safe for concurrent use. Everything that touches its
// runtime must run on the goroutine that owns it.
package scriptctx
