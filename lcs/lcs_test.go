package lcs

import (
	"testing"
)

func strEq(a, b []string) func(i, j int) bool {
	return func(i, j int) bool { return a[i] == b[j] }
}

func TestLongest(t *testing.T) {
	for _, tc := range []struct {
		name string
		l, r []string
		want []Pair
	}{
		{
			name: "identical",
			l:    []string{"a", "b", "c"},
			r:    []string{"a", "b", "c"},
			want: []Pair{{0, 0}, {1, 1}, {2, 2}},
		},
		{
			name: "empty left",
			l:    nil,
			r:    []string{"a"},
			want: nil,
		},
		{
			name: "empty right",
			l:    []string{"a"},
			r:    nil,
			want: nil,
		},
		{
			name: "disjoint",
			l:    []string{"a", "b"},
			r:    []string{"x", "y"},
			want: nil,
		},
		{
			name: "middle substitution",
			l:    []string{"a", "x", "c"},
			r:    []string{"a", "y", "c"},
			want: []Pair{{0, 0}, {2, 2}},
		},
		{
			name: "swap keeps one of the pair",
			l:    []string{"a", "b", "c"},
			r:    []string{"b", "a", "c"},
			want: []Pair{{1, 0}, {2, 2}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Longest(len(tc.l), len(tc.r), strEq(tc.l, tc.r))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestLongestClassic(t *testing.T) {
	l := []string{"A", "B", "C", "A", "B", "B", "A"}
	r := []string{"C", "B", "A", "B", "A", "C"}
	got := Longest(len(l), len(r), strEq(l, r))
	if len(got) != 4 {
		t.Fatalf("LCS length = %d, want 4: %v", len(got), got)
	}
	checkSubsequence(t, got, strEq(l, r))
}

func TestLongestLargeShift(t *testing.T) {
	// a block moved from front to back: the stationary middle dominates
	var l, r []string
	for i := 0; i < 50; i++ {
		l = append(l, string(rune('a'+i%26))+string(rune('0'+i%10)))
	}
	r = append(append([]string{}, l[10:]...), l[:10]...)
	got := Longest(len(l), len(r), strEq(l, r))
	if len(got) != 40 {
		t.Fatalf("LCS length = %d, want 40", len(got))
	}
	checkSubsequence(t, got, strEq(l, r))
}

func checkSubsequence(t *testing.T, pairs []Pair, eq func(i, j int) bool) {
	t.Helper()
	for i, p := range pairs {
		if !eq(p.Left, p.Right) {
			t.Errorf("pair %v is not an equality", p)
		}
		if i > 0 && (p.Left <= pairs[i-1].Left || p.Right <= pairs[i-1].Right) {
			t.Errorf("pairs not strictly increasing at %d: %v", i, pairs)
		}
	}
}
