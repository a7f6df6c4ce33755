package scheduler

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func containsInt(s []int, e int) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

func containsString(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// dedupeStrings preserves first-seen order.
func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func removeString(s []string, e string) []string {
	out := make([]string, 0, len(s))
	removed := false
	for _, a := range s {
		if !removed && a == e {
			removed = true
			continue
		}
		out = append(out, a)
	}
	return out
}
