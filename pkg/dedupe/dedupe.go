// Package dedupe collapses a multi-row-per-key slice to one row per key.
package dedupe

// First keeps the first row per key in current row order. The result is
// order-dependent: callers that need a specific row to win must either sort
// beforehand or use Best, which takes the tie-break ordering explicitly.
// Output preserves first-occurrence order and the operation is idempotent.
func First[T any, K comparable](rows []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(rows))
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Best keeps one row per key, chosen by the better comparator: a row replaces
// the current winner for its key only when better(candidate, winner) is true,
// so on ties the earlier row wins. Output preserves the order in which keys
// were first encountered. Unlike First, the result does not depend on any
// prior sort of the input.
func Best[T any, K comparable](rows []T, key func(T) K, better func(a, b T) bool) []T {
	winner := make(map[K]int, len(rows))
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		i, ok := winner[k]
		if !ok {
			winner[k] = len(out)
			out = append(out, r)
			continue
		}
		if better(r, out[i]) {
			out[i] = r
		}
	}
	return out
}
