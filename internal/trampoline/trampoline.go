// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package trampoline

import (
	"slices"
	"strings"
)

// IsPrefix reports whether parent is a namespace ancestor of child, treating
// '.' as the separator. "a" is a prefix of "a.b" but not of "ab".
func IsPrefix(parent, child string) bool {
	return len(child) > len(parent) &&
		child[len(parent)] == '.' &&
		child[:len(parent)] == parent
}

// Mark sorts entries in place by the key returned from name and reports, for
// each position of the sorted slice, whether that entry should use a
// trampoline. An entry is eager (false) only when the entry immediately after
// it is one of its dotted descendants.
func Mark[S ~[]E, E any](entries S, name func(E) string) []bool {
	slices.SortStableFunc(entries, func(a, b E) int {
		return strings.Compare(name(a), name(b))
	})

	useTrampoline := make([]bool, len(entries))
	for i := range useTrampoline {
		useTrampoline[i] = true
	}
	for i := 0; i+1 < len(entries); i++ {
		if IsPrefix(name(entries[i]), name(entries[i+1])) {
			useTrampoline[i] = false
		}
	}
	return useTrampoline
}

// Classify returns the trampoline decision for every name without touching
// the caller's slice.
func Classify(names []string) map[string]bool {
	sorted := slices.Clone(names)
	flags := Mark(sorted, func(s string) string { return s })

	out := make(map[string]bool, len(sorted))
	for i, n := range sorted {
		out[n] = flags[i]
	}
	return out
}
