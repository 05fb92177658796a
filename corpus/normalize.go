package corpus

import (
	"fmt"
	"strings"
)

// rawPost carries one post's fields exactly as a parser extracted them,
// before the default-value policy is applied. Both parsers converge on this
// shape so everything downstream is format-agnostic.
type rawPost struct {
	Title   string
	Date    string
	Content string
	Tags    []string
	Image   *rawImage // nil when the source has no image element
}

type rawImage struct {
	Src string
	Alt string
}

// normalize applies the shared default-value policy: missing strings stay
// empty strings, a missing image stays absent, tags are kept exactly as
// given (order and duplicates preserved), and the date string is parsed into
// a Date that marks unparseable input instead of discarding the post.
func normalize(r rawPost) Post {
	p := Post{
		Title:   r.Title,
		Slug:    Slugify(r.Title),
		Date:    ParseDate(r.Date),
		Content: r.Content,
		Tags:    r.Tags,
	}
	if r.Image != nil {
		p.Image = &Image{Src: r.Image.Src, Alt: r.Image.Alt}
	}
	return p
}

// assignSlugs makes every slug unique within the corpus by suffixing
// duplicates with a counter, in corpus order. Untitled posts fall back to
// "post".
func assignSlugs(posts []Post) {
	used := make(map[string]bool, len(posts))
	for i := range posts {
		base := posts[i].Slug
		if base == "" {
			base = "post"
		}
		slug := base
		for n := 2; used[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		used[slug] = true
		posts[i].Slug = slug
	}
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
