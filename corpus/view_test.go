package corpus

import (
	"reflect"
	"testing"
)

func mkPost(title, date string, tags ...string) Post {
	return Post{Title: title, Slug: Slugify(title), Date: ParseDate(date), Tags: tags}
}

func titles(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestTagsUnion(t *testing.T) {
	posts := []Post{
		mkPost("A", "2024-01-01", "go", "web"),
		mkPost("B", "2024-01-02", "go", "db"),
		mkPost("C", "2024-01-03"),
	}
	got := Tags(posts)
	want := []string{"db", "go", "web"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestTagsEmptyCorpus(t *testing.T) {
	if got := Tags(nil); len(got) != 0 {
		t.Errorf("Tags(nil) = %v, want empty", got)
	}
}

func TestTagsPreserveCase(t *testing.T) {
	posts := []Post{mkPost("A", "2024-01-01", "Go", "go")}
	got := Tags(posts)
	if len(got) != 2 {
		t.Errorf("Tags = %v, want case-distinct entries", got)
	}
}

func TestComputeViewFilter(t *testing.T) {
	posts := []Post{
		mkPost("A", "2024-01-01", "x"),
		mkPost("B", "2024-01-02", "y"),
		mkPost("C", "2024-01-03", "x", "y"),
	}

	all := ComputeView(posts, ViewState{Tag: TagAll, Sort: SortDateAsc})
	if len(all) != 3 {
		t.Errorf("TagAll should pass every post, got %d", len(all))
	}

	onlyX := ComputeView(posts, ViewState{Tag: "x", Sort: SortDateAsc})
	if got, want := titles(onlyX), []string{"A", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("filter x = %v, want %v", got, want)
	}
	for _, p := range onlyX {
		if !p.HasTag("x") {
			t.Errorf("post %q in filtered view lacks the active tag", p.Title)
		}
	}

	none := ComputeView(posts, ViewState{Tag: "missing", Sort: SortDateAsc})
	if len(none) != 0 {
		t.Errorf("unknown tag should yield an empty view, got %v", titles(none))
	}
}

func TestComputeViewFilterIsCaseSensitive(t *testing.T) {
	posts := []Post{mkPost("A", "2024-01-01", "Go")}
	if got := ComputeView(posts, ViewState{Tag: "go", Sort: SortDateAsc}); len(got) != 0 {
		t.Errorf("tag match must be case-sensitive, got %v", titles(got))
	}
}

func TestComputeViewSortDirections(t *testing.T) {
	posts := []Post{
		mkPost("Mid", "2024-02-01"),
		mkPost("Old", "2023-01-01"),
		mkPost("New", "2024-06-01"),
	}
	asc := ComputeView(posts, ViewState{Tag: TagAll, Sort: SortDateAsc})
	if got, want := titles(asc), []string{"Old", "Mid", "New"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ascending = %v, want %v", got, want)
	}
	desc := ComputeView(posts, ViewState{Tag: TagAll, Sort: SortDateDesc})
	if got, want := titles(desc), []string{"New", "Mid", "Old"}; !reflect.DeepEqual(got, want) {
		t.Errorf("descending = %v, want %v", got, want)
	}
}

func TestComputeViewStableTieBreak(t *testing.T) {
	// Two posts share a date; their corpus-relative order must survive both
	// sort directions.
	posts := []Post{
		mkPost("First", "2024-01-01"),
		mkPost("Second", "2024-01-01"),
		mkPost("Earlier", "2023-01-01"),
	}
	asc := ComputeView(posts, ViewState{Tag: TagAll, Sort: SortDateAsc})
	if got, want := titles(asc), []string{"Earlier", "First", "Second"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ascending = %v, want %v", got, want)
	}
	desc := ComputeView(posts, ViewState{Tag: TagAll, Sort: SortDateDesc})
	if got, want := titles(desc), []string{"First", "Second", "Earlier"}; !reflect.DeepEqual(got, want) {
		t.Errorf("descending = %v, want %v", got, want)
	}
}

func TestComputeViewInvalidDatesStayPinned(t *testing.T) {
	posts := []Post{
		mkPost("A", "2024-03-01"),
		mkPost("Broken", "not-a-date"),
		mkPost("B", "2024-01-01"),
	}
	// The invalid sentinel compares equal to everything, so "Broken" never
	// migrates to either end under either direction.
	for _, order := range []SortOrder{SortDateAsc, SortDateDesc} {
		view := ComputeView(posts, ViewState{Tag: TagAll, Sort: order})
		if view[1].Title != "Broken" {
			t.Errorf("%v: invalid-dated post moved: %v", order, titles(view))
		}
	}
}

func TestComputeViewSingleInvalidPost(t *testing.T) {
	posts := []Post{mkPost("Solo", "not-a-date")}
	for _, order := range []SortOrder{SortDateAsc, SortDateDesc} {
		view := ComputeView(posts, ViewState{Tag: TagAll, Sort: order})
		if len(view) != 1 || view[0].Title != "Solo" {
			t.Errorf("%v: view = %v, want [Solo]", order, titles(view))
		}
	}
}

func TestComputeViewPure(t *testing.T) {
	posts := []Post{
		mkPost("A", "2024-01-01", "x"),
		mkPost("B", "2023-01-01", "y"),
		mkPost("C", "2024-06-01", "x"),
	}
	before := titles(posts)
	state := ViewState{Tag: "x", Sort: SortDateDesc}

	first := ComputeView(posts, state)
	second := ComputeView(posts, state)
	if !reflect.DeepEqual(titles(first), titles(second)) {
		t.Errorf("recomputation diverged: %v vs %v", titles(first), titles(second))
	}
	if !reflect.DeepEqual(titles(posts), before) {
		t.Errorf("ComputeView mutated its input: %v", titles(posts))
	}
}

func TestParseSortOrder(t *testing.T) {
	if ParseSortOrder("date-asc") != SortDateAsc {
		t.Error("date-asc should parse to ascending")
	}
	for _, s := range []string{"date-desc", "", "bogus"} {
		if ParseSortOrder(s) != SortDateDesc {
			t.Errorf("ParseSortOrder(%q) should default to descending", s)
		}
	}
}

func TestDefaultViewState(t *testing.T) {
	state := DefaultViewState()
	if state.Tag != TagAll || state.Sort != SortDateDesc {
		t.Errorf("DefaultViewState = %+v", state)
	}
}
