package shared

// Pages splits the input slice into consecutive pages holding at most size
// elements each; the last page holds the remainder. An empty input produces
// no pages. The pages share the input's backing array.
//
// T represents any type.
//
// Parameters:
//   - input: A slice of elements of type T to be split.
//   - size: The maximum number of elements per page. Must be positive.
//
// Returns:
//
//	A slice of pages covering the input in order.
func Pages[T any](input []T, size int) (result [][]T) {
	for start := 0; start < len(input); start += size {
		end := start + size
		if end > len(input) {
			end = len(input)
		}
		result = append(result, input[start:end])
	}
	return result
}
