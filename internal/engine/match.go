package engine

import "strings"

// editDistanceWithinPrefix computes the Levenshtein distance between a and
// b, but treats their shared prefix of length prefixLen as free (it is not
// allowed to be edited), matching FuzzyQuery's prefixlength parameter.
func editDistanceWithinPrefix(a, b string, prefixLen int) int {
	al, bl := []rune(strings.ToLower(a)), []rune(strings.ToLower(b))
	n := prefixLen
	if n > len(al) {
		n = len(al)
	}
	if n > len(bl) {
		n = len(bl)
	}
	for i := 0; i < n; i++ {
		if al[i] != bl[i] {
			n = i
			break
		}
	}
	al, bl = al[n:], bl[n:]
	return levenshtein(al, bl)
}

func levenshtein(a, b []rune) int {
	la, lb := len(a), len(b)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}

// phraseWithinSlop reports whether target occurs in tokens as an ordered
// subsequence with at most slop extra tokens permitted between matches.
func phraseWithinSlop(tokens, target []string, slop int) bool {
	if len(target) == 0 {
		return false
	}
	for start := 0; start < len(tokens); start++ {
		if tokens[start] != target[0] {
			continue
		}
		pos := start
		matchedAll := true
		for ti := 1; ti < len(target); ti++ {
			found := false
			for next := pos + 1; next < len(tokens) && next-pos-1 <= slop; next++ {
				if tokens[next] == target[ti] {
					pos = next
					found = true
					break
				}
			}
			if !found {
				matchedAll = false
				break
			}
		}
		if matchedAll {
			return true
		}
	}
	return false
}

// wildcardMatch implements `*`/`?` glob matching (standard two-pointer
// backtracking algorithm).
func wildcardMatch(pattern, s string) bool {
	p, t := []rune(pattern), []rune(s)
	pi, ti := 0, 0
	starIdx, match := -1, 0
	for ti < len(t) {
		if pi < len(p) && (p[pi] == '?' || p[pi] == t[ti]) {
			pi++
			ti++
		} else if pi < len(p) && p[pi] == '*' {
			starIdx = pi
			match = ti
			pi++
		} else if starIdx != -1 {
			pi = starIdx + 1
			match++
			ti = match
		} else {
			return false
		}
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
