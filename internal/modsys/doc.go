// Package modsys is the per-context module system.
//
// A ModuleSystem is bound to exactly one scripting context. It owns the
// native module registry and the list of extension modules registered for
// that context, hands every extension loader the requireNative function when
// Initialize runs, and tears everything down in a fixed order on Destroy:
// extension modules first, native modules next, the context binding last.
//
// Script code may keep references to requireNative or to lazily loaded
// namespaces after the host destroys the module system. Those references stay
// callable and answer undefined.
//
// Slots replaces a per-context embedder field with a host-side map from
// context identity to the owned ModuleSystem.
package modsys
