package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextReferenceFromEmpty(t *testing.T) {
	ref := NextReference("")
	require.Equal(t, "A00000001", ref)
	require.Len(t, ref, ReferenceLength)
}

func TestNextReferenceSuccessorRules(t *testing.T) {
	cases := []struct {
		previous string
		want     string
	}{
		{"A00000001", "A00000002"},
		{"A00000008", "A00000009"},
		{"A00000009", "A0000000A"},
		{"A0000000A", "A0000000B"},
		{"A0000000Y", "A0000000Z"},
		// Z wraps to 0 without carrying into the preceding characters.
		{"A0000000Z", "A00000000"},
		{"A0000010Z", "A00000100"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NextReference(tc.previous), "previous=%s", tc.previous)
	}
}

func TestNextReferenceSequenceIsDistinctAndFixedLength(t *testing.T) {
	seen := make(map[string]struct{})
	ref := ""
	for i := 0; i < 35; i++ {
		ref = NextReference(ref)
		require.Len(t, ref, ReferenceLength)
		_, dup := seen[ref]
		require.False(t, dup, "duplicate reference %s at step %d", ref, i)
		seen[ref] = struct{}{}
	}
}

func TestNextReferenceIsDeterministic(t *testing.T) {
	require.Equal(t, NextReference("A0000042F"), NextReference("A0000042F"))
}
