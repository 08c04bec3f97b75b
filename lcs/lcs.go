// Package lcs finds longest common subsequences under an arbitrary
// equality predicate, using Myers' O(ND) algorithm with history kept per
// diagonal path. Equal prefixes and suffixes are trimmed up front.
package lcs

// Pair links index Left in the first sequence to index Right in the
// second.
type Pair struct {
	Left  int
	Right int
}

// Longest returns the pairs of a longest common subsequence of two
// sequences of the given lengths, in increasing index order. eq must be
// deterministic.
func Longest(llen, rlen int, eq func(i, j int) bool) []Pair {
	start := 0
	lend, rend := llen, rlen
	for start < lend && start < rend && eq(start, start) {
		start++
	}
	for start < lend && start < rend && eq(lend-1, rend-1) {
		lend--
		rend--
	}

	res := make([]Pair, 0, start)
	for i := 0; i < start; i++ {
		res = append(res, Pair{i, i})
	}

	lmax := lend - start
	rmax := rend - start
	if lmax == 0 || rmax == 0 {
		return appendTail(res, lend, llen, rend)
	}

	type hist struct {
		x    int
		path []Pair
	}
	furthest := map[int]hist{1: {}}
	for d := 0; d <= lmax+rmax; d++ {
		for k := -d; k <= d; k += 2 {
			var x int
			var path []Pair
			if k == -d || (k != d && furthest[k-1].x < furthest[k+1].x) {
				h := furthest[k+1]
				x, path = h.x, h.path
			} else {
				h := furthest[k-1]
				x, path = h.x+1, h.path
			}
			// cap the slice so appends below copy instead of sharing
			path = path[:len(path):len(path)]
			y := x - k
			for x < lmax && y < rmax && eq(x+start, y+start) {
				path = append(path, Pair{x + start, y + start})
				x++
				y++
			}
			if x >= lmax && y >= rmax {
				return appendTail(append(res, path...), lend, llen, rend)
			}
			furthest[k] = hist{x, path}
		}
	}
	// d is bounded by lmax+rmax, so the loop above always returns
	return res
}

func appendTail(res []Pair, lend, llen, rend int) []Pair {
	for i := 0; lend+i < llen; i++ {
		res = append(res, Pair{lend + i, rend + i})
	}
	return res
}
