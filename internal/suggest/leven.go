package suggest

// boundedDistance computes the Levenshtein distance between s1 and s2,
// giving up as soon as the distance is known to exceed maxDist. Returns
// maxDist+1 when the bound is exceeded. Two-row simulation of the full
// NxM matrix, O(min(len)) memory.
func boundedDistance(s1, s2 string, maxDist int) int {
	r1, r2 := []rune(s1), []rune(s2)
	// короткая строка задаёт ширину строк матрицы
	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}
	l1, l2 := len(r1), len(r2)

	if l2-l1 > maxDist {
		return maxDist + 1
	}
	if l1 == 0 {
		return l2
	}

	prev := make([]int, l1+1)
	cur := make([]int, l1+1)
	for i := 0; i <= l1; i++ {
		prev[i] = i
	}

	for j := 1; j <= l2; j++ {
		cur[0] = j
		rowMin := cur[0]
		for i := 1; i <= l1; i++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			del := prev[i] + 1
			ins := cur[i-1] + 1
			sub := prev[i-1] + cost
			d := del
			if ins < d {
				d = ins
			}
			if sub < d {
				d = sub
			}
			cur[i] = d
			if d < rowMin {
				rowMin = d
			}
		}
		// вся строка хуже лимита - дальше только растёт
		if rowMin > maxDist {
			return maxDist + 1
		}
		prev, cur = cur, prev
	}

	if prev[l1] > maxDist {
		return maxDist + 1
	}
	return prev[l1]
}
