package corpus

import "sort"

// Tags derives the tag index for a corpus: the union of every post's tags,
// deduplicated and sorted lexically so rendered filter controls come out
// deterministic. Case is preserved, since tag filtering is case-sensitive.
// The index reflects the full corpus, never the currently displayed subset,
// so it is computed once per load rather than per filter change.
func Tags(posts []Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
