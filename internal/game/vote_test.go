package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBallotResolve(t *testing.T) {
	cases := []struct {
		name    string
		casts   [][2]string // connID, sceneID in cast order
		want    string
		wantOK  bool
	}{
		{
			name:   "majority wins",
			casts:  [][2]string{{"a", "x"}, {"b", "y"}, {"c", "x"}},
			want:   "x",
			wantOK: true,
		},
		{
			name:   "tie goes to first scene to reach the max",
			casts:  [][2]string{{"a", "x"}, {"b", "y"}},
			want:   "x",
			wantOK: true,
		},
		{
			name:   "tie order follows insertion even with interleaving",
			casts:  [][2]string{{"a", "y"}, {"b", "x"}, {"c", "x"}, {"d", "y"}},
			want:   "x",
			wantOK: true,
		},
		{
			name:   "empty ballot has no winner",
			casts:  nil,
			wantOK: false,
		},
		{
			name:   "single vote",
			casts:  [][2]string{{"a", "z"}},
			want:   "z",
			wantOK: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b Ballot
			for _, c := range tc.casts {
				b.Cast(c[0], c[1])
			}
			got, ok := b.Resolve()
			require.Equal(t, tc.wantOK, ok)
			if ok {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestBallotCast_LastWriteWinsKeepsPosition(t *testing.T) {
	var b Ballot
	b.Cast("a", "x")
	b.Cast("b", "y")
	b.Cast("a", "y") // re-vote overwrites, keeps a's slot

	require.Equal(t, 2, b.Len())
	v, ok := b.Get("a")
	require.True(t, ok)
	require.Equal(t, "y", v)

	// y now reached 1 first (a's slot is tallied first), so a y/x tie
	// after another voter resolves to y.
	b.Cast("c", "x")
	winner, ok := b.Resolve()
	require.True(t, ok)
	require.Equal(t, "y", winner)
}

func TestBallotRemove(t *testing.T) {
	var b Ballot
	b.Cast("a", "x")
	b.Cast("b", "y")
	b.Remove("a")

	require.Equal(t, 1, b.Len())
	_, ok := b.Get("a")
	require.False(t, ok)

	b.Remove("missing") // no-op
	require.Equal(t, 1, b.Len())
}

func TestBallotClear(t *testing.T) {
	var b Ballot
	b.Cast("a", "x")
	b.Clear()
	require.Zero(t, b.Len())
	_, ok := b.Resolve()
	require.False(t, ok)
}
