// Package corpus is the ingestion core: it parses a post collection from one
// of two heterogeneous source formats (JSON or XML) into a single canonical
// model, and derives filtered, sorted views from it.
//
// The package is pure data plumbing. It does no I/O: callers hand it raw
// source text and a Format, and get back an ordered, normalized corpus.
// Field-level defects in the source (missing fields, unparseable dates) are
// absorbed by the normalization defaults; only a document that is broken at
// the format level is an error, and then the whole load fails, because a
// corpus is all-or-nothing.
package corpus

// Post is one normalized content item. Posts are created during parsing and
// never mutated afterwards.
type Post struct {
	Title   string
	Slug    string // URL-safe identifier derived from Title, unique per corpus
	Date    Date
	Content string
	Image   *Image // nil when the source has no image element
	Tags    []string
}

// Image is an optional illustration reference on a post.
type Image struct {
	Src string
	Alt string
}

// HasTag reports whether the post carries tag. Matching is exact and
// case-sensitive.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
