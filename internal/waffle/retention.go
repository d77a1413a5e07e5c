package waffle

import "sort"

// KeepPerUser is the retention window: how many of a user's most recent
// waffles survive a cleanup pass.
const KeepPerUser = 2

// SelectForDeletion returns every waffle beyond the `keep` most recent ones.
// Ordering is newest-first by CreatedAt; equal timestamps are broken by ID
// ascending so the selection is deterministic. The input slice is not
// modified.
func SelectForDeletion(waffles []Waffle, keep int) []Waffle {
	if keep < 0 {
		keep = 0
	}
	if len(waffles) <= keep {
		return nil
	}
	sorted := make([]Waffle, len(waffles))
	copy(sorted, waffles)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted[keep:]
}
