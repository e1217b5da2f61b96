package trampoline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrefix(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{"tizen", "tizen.time", true},
		{"a", "a.b.c", true},
		{"a.b", "a.b.c", true},
		{"a", "ab", false},
		{"a", "a", false},
		{"a", "a.", true},
		{"tizen.time", "tizen", false},
		{"b", "a.b", false},
		{"", ".x", true},
	}

	for _, tc := range tests {
		t.Run(tc.parent+"|"+tc.child, func(t *testing.T) {
			assert.Equal(t, tc.want, IsPrefix(tc.parent, tc.child))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  map[string]bool
	}{
		{
			name:  "parent and child",
			names: []string{"tizen.time", "tizen"},
			want:  map[string]bool{"tizen": false, "tizen.time": true},
		},
		{
			name:  "no separator at boundary",
			names: []string{"a", "ab"},
			want:  map[string]bool{"a": true, "ab": true},
		},
		{
			name:  "three level chain",
			names: []string{"a.b.c", "a", "a.b"},
			want:  map[string]bool{"a": false, "a.b": false, "a.b.c": true},
		},
		{
			name:  "siblings under one parent",
			names: []string{"a.c", "a.b", "a"},
			want:  map[string]bool{"a": false, "a.b": true, "a.c": true},
		},
		{
			name:  "relation hidden by an unrelated neighbour",
			names: []string{"a", "a.b", "a-b"},
			want:  map[string]bool{"a": true, "a-b": true, "a.b": true},
		},
		{
			name:  "single entry",
			names: []string{"print"},
			want:  map[string]bool{"print": true},
		},
		{
			name:  "empty",
			names: nil,
			want:  map[string]bool{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.names)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Classify(%v) mismatch (-want +got):\n%s", tc.names, diff)
			}
		})
	}
}

func TestClassify_LeavesInputUntouched(t *testing.T) {
	names := []string{"b", "a"}
	Classify(names)
	assert.Equal(t, []string{"b", "a"}, names)
}

func TestMark_SortsEntriesInPlace(t *testing.T) {
	type entry struct{ name string }
	entries := []*entry{{"tizen.time"}, {"print"}, {"tizen"}}

	flags := Mark(entries, func(e *entry) string { return e.name })

	require.Len(t, flags, 3)
	assert.Equal(t, "print", entries[0].name)
	assert.Equal(t, "tizen", entries[1].name)
	assert.Equal(t, "tizen.time", entries[2].name)
	assert.Equal(t, []bool{true, false, true}, flags)
}
