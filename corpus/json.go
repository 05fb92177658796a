package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonPost is the accepted JSON schema for one post. The image object is
// recognized under either "img" or "image"; unknown fields are ignored.
type jsonPost struct {
	Title   string     `json:"title"`
	Date    string     `json:"date"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags"`
	Img     *jsonImage `json:"img"`
	Image   *jsonImage `json:"image"`
}

type jsonImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// parseJSON accepts either an array of post objects or a single post object,
// which is treated as a one-element corpus. Every other JSON shape (scalar,
// null, array of non-objects) is a malformed-input error.
func parseJSON(data []byte) ([]rawPost, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty JSON document", ErrMalformedInput)
	}
	switch trimmed[0] {
	case '[':
		var items []jsonPost
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		raws := make([]rawPost, len(items))
		for i, it := range items {
			raws[i] = it.raw()
		}
		return raws, nil
	case '{':
		var item jsonPost
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return []rawPost{item.raw()}, nil
	}
	return nil, fmt.Errorf("%w: JSON document must be an object or an array of objects", ErrMalformedInput)
}

func (jp jsonPost) raw() rawPost {
	r := rawPost{
		Title:   jp.Title,
		Date:    jp.Date,
		Content: jp.Content,
		Tags:    jp.Tags,
	}
	img := jp.Img
	if img == nil {
		img = jp.Image
	}
	if img != nil {
		r.Image = &rawImage{Src: img.Src, Alt: img.Alt}
	}
	return r
}
