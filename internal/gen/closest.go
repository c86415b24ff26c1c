package gen

// maxSuggestionDistance bounds the edit distance of suggested flag names.
const maxSuggestionDistance = 3

// levenshtein returns the edit distance between two strings.
func levenshtein(str, tgt string) int {
	src, dst := []rune(str), []rune(tgt)

	if len(src) == 0 {
		return len(dst)
	}
	if len(dst) == 0 {
		return len(src)
	}

	dists := make([][]int, len(src)+1)
	for i := range dists {
		dists[i] = make([]int, len(dst)+1)
		dists[i][0] = i
	}
	for j := range dists[0] {
		dists[0][j] = j
	}

	for sidx, sc := range src {
		for tidx, tc := range dst {
			cost := 1
			if sc == tc {
				cost = 0
			}

			dists[sidx+1][tidx+1] = min(
				dists[sidx][tidx]+cost,
				dists[sidx+1][tidx]+1,
				dists[sidx][tidx+1]+1,
			)
		}
	}

	return dists[len(src)][len(dst)]
}

// closestChoice returns the choice nearest to name, and its distance.
func closestChoice(name string, choices []string) (string, int) {
	if len(choices) == 0 {
		return "", 0
	}

	closest, mindist := "", -1

	for _, choice := range choices {
		if dist := levenshtein(name, choice); mindist < 0 || dist < mindist {
			closest, mindist = choice, dist
		}
	}

	return closest, mindist
}

// suggest returns a flag name close enough to the unknown name, if any.
func suggest(name string, choices []string) (string, bool) {
	closest, dist := closestChoice(name, choices)
	if closest == "" || dist > maxSuggestionDistance || dist >= len([]rune(name)) {
		return "", false
	}

	return closest, true
}
