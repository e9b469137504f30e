// SPDX-License-Identifier: Apache-2.0

package windowrank

import "math"

// isNaN reports whether v is NaN, for either float32 or float64.
func isNaN[T Real](v T) bool {
	return float64(v) != float64(v)
}

// quietNaN returns T's quiet NaN value.
func quietNaN[T Real]() T {
	return T(math.NaN())
}
