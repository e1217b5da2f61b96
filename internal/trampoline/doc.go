// Package trampoline decides which extension modules load their glue code
// eagerly and which are deferred behind a lazy accessor (a "trampoline").
//
// When an ancestor namespace such as "tizen" and a dotted descendant such as
// "tizen.time" are both registered, the ancestor is loaded eagerly so the
// descendant has an object to hang its accessor on; the descendant waits until
// script first touches it. Names without a registered descendant use a
// trampoline.
//
// The decision only looks at neighbours in lexicographic order. A relation
// separated by an unrelated name ("a", "a-b", "a.b" sorts '-' before '.') is
// not detected and "a" keeps its trampoline.
package trampoline
