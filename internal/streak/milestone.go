package streak

// NextMilestone returns the next streak length worth celebrating above
// current: 3, 7, 14 and 30 days, then every 30.
func NextMilestone(current int) int {
	milestones := []int{3, 7, 14, 30}
	for _, m := range milestones {
		if m > current {
			return m
		}
	}
	return ((current / 30) + 1) * 30
}

// IsMilestone reports whether n is exactly a milestone.
func IsMilestone(n int) bool {
	return n > 0 && NextMilestone(n-1) == n
}
