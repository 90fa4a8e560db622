package collage

// Dedupe removes repeated items, keeping the first occurrence of each value.
// The relative order of surviving items is preserved and the input slice is
// not modified.
func Dedupe[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
