package corpus

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is wrapped by parse errors caused by input that is not a
// well-formed document of the declared format.
var ErrMalformedInput = errors.New("corpus: malformed input")

// Parse converts raw source text in the given format into an ordered,
// normalized corpus. Posts come out in source document order. The result is
// all-or-nothing: any parse error yields a nil corpus.
func Parse(data []byte, format Format) ([]Post, error) {
	var (
		raws []rawPost
		err  error
	)
	switch format {
	case FormatJSON:
		raws, err = parseJSON(data)
	case FormatXML:
		raws, err = parseXML(data)
	default:
		return nil, fmt.Errorf("%w: format %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	posts := make([]Post, len(raws))
	for i, r := range raws {
		posts[i] = normalize(r)
	}
	assignSlugs(posts)
	return posts, nil
}
