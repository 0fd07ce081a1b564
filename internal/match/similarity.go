package match

import "strings"

// PhraseSimilarity computes a similarity in [0,1] between two short
// phrases. Tiers, first match wins:
//
//  1. exact match (case-insensitive, trimmed)  -> 1.0
//  2. synonym match                            -> 0.95
//  3. substring containment either direction   -> 0.75
//  4. max of token-synonym bonus, token Jaccard, and a damped
//     edit-distance similarity for near-misses (typos, plurals)
//
// Empty or blank input on either side scores 0.
func (e *Engine) PhraseSimilarity(a, b string) float64 {
	sa := strings.ToLower(strings.TrimSpace(a))
	sb := strings.ToLower(strings.TrimSpace(b))
	if sa == "" || sb == "" {
		return 0.0
	}

	if sa == sb {
		return 1.0
	}

	if e.syn.AreSynonyms(sa, sb) {
		return 0.95
	}

	if strings.Contains(sa, sb) || strings.Contains(sb, sa) {
		return 0.75
	}

	ta := Tokenize(sa)
	tb := Tokenize(sb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	synonymBonus := 0.0
	for tokA := range ta {
		for tokB := range tb {
			if e.syn.AreSynonyms(tokA, tokB) {
				synonymBonus = 0.6
			}
		}
	}

	inter := 0
	for t := range ta {
		if tb[t] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	jaccard := 0.0
	if union > 0 {
		jaccard = float64(inter) / float64(union)
	}

	// Edit distance only pays off for strings of comparable length; a
	// high raw value is damped so a typo never outranks real overlap.
	levenshtein := 0.0
	if diff := len(sa) - len(sb); diff >= -3 && diff <= 3 {
		dist := levenshteinDistance(sa, sb)
		maxLen := len(sa)
		if len(sb) > maxLen {
			maxLen = len(sb)
		}
		if maxLen > 0 && dist <= 3 {
			levenshtein = 1.0 - float64(dist)/float64(maxLen)
			if levenshtein > 0.7 {
				levenshtein *= 0.6
			}
		}
	}

	best := jaccard
	if synonymBonus > best {
		best = synonymBonus
	}
	if levenshtein > best {
		best = levenshtein
	}
	return best
}

// levenshteinDistance is the standard DP recurrence over two rolling
// rows; insertion, deletion and substitution all cost 1.
func levenshteinDistance(s1, s2 string) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := 0; j <= len(s2); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			min := curr[j-1] + 1
			if prev[j]+1 < min {
				min = prev[j] + 1
			}
			if prev[j-1]+cost < min {
				min = prev[j-1] + cost
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
