package engine

import "golang.org/x/exp/constraints"

// abs returns the absolute value of x.
func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// clamp limits x to [lo, hi].
func clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int) bool {
	return abs(score) > MateScore-MaxPly
}

// MateDistance returns the number of full moves to the mate encoded by score:
// positive when the side to move mates, negative when it is mated.
func MateDistance(score int) int {
	if !IsMateScore(score) {
		return 0
	}
	if score > 0 {
		return (MateScore - score + 1) / 2
	}
	return -(MateScore + score + 1) / 2
}
