package selection

import (
	"sort"

	"github.com/wonny/ledger/internal/contracts"
)

// ComputeView filters and orders companies for the selection overlay
// ⭐ SSOT: 오버레이 필터/정렬 로직은 여기서만
//
// The result is always a new slice; companies is never modified.
// Sorting is stable, so rows with equal values keep their filtered order.
// A nil spec (or an invalid column) keeps the input order.
func ComputeView(companies []contracts.Company, criteria FilterCriteria, spec *SortSpec) []contracts.Company {
	view := make([]contracts.Company, 0, len(companies))
	for i := range companies {
		if criteria.Matches(&companies[i]) {
			view = append(view, companies[i])
		}
	}

	if spec == nil || !spec.Column.Valid() {
		return view
	}

	// Extract once per row; avg walks the whole scoreboard
	keys := make([]float64, len(view))
	for i := range view {
		keys[i] = Extract(&view[i], spec.Column)
	}

	idx := make([]int, len(view))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		if spec.Direction == Asc {
			return keys[idx[a]] < keys[idx[b]]
		}
		return keys[idx[a]] > keys[idx[b]]
	})

	sorted := make([]contracts.Company, len(view))
	for i, j := range idx {
		sorted[i] = view[j]
	}
	return sorted
}
