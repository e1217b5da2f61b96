// Package extension loads an extension's JavaScript glue code into a
// scripting context.
//
// Glue code is the body of a function called as
//
//	function(exports, extension, requireNative) { ... }
//
// where exports is the object installed at the extension's namespace (for
// "tizen.time" that is globalThis.tizen.time), extension describes the
// extension itself, and requireNative is the module system's bridge.
//
// A loader asked to use a trampoline does not run the code. It installs lazy
// accessors at the namespace and at every entry point instead; the first read
// of any of them runs the code and is answered with whatever now lives at that
// path.
package extension
