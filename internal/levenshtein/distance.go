// Package levenshtein implements edit distance for domain typo detection.
package levenshtein

// Distance computes the Levenshtein edit distance between two strings.
// Runes are compared, not bytes, so internationalized domains measure
// correctly. Memory use is O(min(m,n)).
func Distance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)

	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	// Keep the shorter string on the row axis.
	if len(ar) > len(br) {
		ar, br = br, ar
	}

	prev := make([]int, len(ar)+1)
	row := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}

	for j, bc := range br {
		row[0] = j + 1
		for i, ac := range ar {
			sub := prev[i]
			if ac != bc {
				sub++
			}
			row[i+1] = min(row[i]+1, prev[i+1]+1, sub)
		}
		prev, row = row, prev
	}

	return prev[len(ar)]
}
