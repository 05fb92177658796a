package corpus

import "sort"

// SortOrder selects the direction of the date sort in a view.
type SortOrder string

const (
	SortDateDesc SortOrder = "date-desc"
	SortDateAsc  SortOrder = "date-asc"
)

// ParseSortOrder maps a UI signal value to a SortOrder, defaulting to
// date-descending for anything unrecognized.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortDateAsc {
		return SortDateAsc
	}
	return SortDateDesc
}

// TagAll is the active-tag value that disables filtering.
const TagAll = "all"

// ViewState is the user-selected state a view derives from: the active tag
// filter and the sort order.
type ViewState struct {
	Tag  string
	Sort SortOrder
}

// DefaultViewState is the initial state: every post, newest first.
func DefaultViewState() ViewState {
	return ViewState{Tag: TagAll, Sort: SortDateDesc}
}

// ComputeView derives the display list for state from posts. It is pure:
// posts is never mutated and identical inputs produce identical results, so
// the view is always recomputed from scratch rather than patched
// incrementally.
//
// The filter keeps posts carrying the active tag (TagAll keeps everything);
// an empty result is a valid "no posts match" outcome, not an error. The
// sort is stable in both directions: only the comparison direction flips,
// never the tie-break, so posts with equal dates and posts whose dates are
// invalid keep their corpus-relative order.
func ComputeView(posts []Post, state ViewState) []Post {
	view := make([]Post, 0, len(posts))
	for _, p := range posts {
		if state.Tag == TagAll || p.HasTag(state.Tag) {
			view = append(view, p)
		}
	}
	sort.SliceStable(view, func(i, j int) bool {
		c := view[i].Date.Compare(view[j].Date)
		if state.Sort == SortDateAsc {
			return c < 0
		}
		return c > 0
	})
	return view
}
