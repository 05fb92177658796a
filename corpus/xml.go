package corpus

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// xmlPost mirrors one <Post> element: Title/Date/Content as direct child
// text, tags under <tags><tag>, and the first <img><image> carrying src/alt
// children.
type xmlPost struct {
	Title   string   `xml:"Title"`
	Date    string   `xml:"Date"`
	Content string   `xml:"Content"`
	Tags    []string `xml:"tags>tag"`
	Img     *xmlImg  `xml:"img"`
}

type xmlImg struct {
	Image *xmlImage `xml:"image"`
}

type xmlImage struct {
	Src string `xml:"src"`
	Alt string `xml:"alt"`
}

// parseXML walks the token stream and decodes every <Post> element found in
// the document. The whole document must be well-formed: a syntax error
// anywhere discards all posts, so callers can distinguish "invalid XML" from
// "valid XML with zero Post elements" (an empty, valid corpus).
func parseXML(data []byte) ([]rawPost, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var raws []rawPost
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return raws, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Post" {
			continue
		}
		var xp xmlPost
		if err := dec.DecodeElement(&xp, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		raws = append(raws, xp.raw())
	}
}

func (xp xmlPost) raw() rawPost {
	r := rawPost{
		Title:   strings.TrimSpace(xp.Title),
		Date:    strings.TrimSpace(xp.Date),
		Content: strings.TrimSpace(xp.Content),
	}
	for _, t := range xp.Tags {
		r.Tags = append(r.Tags, strings.TrimSpace(t))
	}
	// The image field is absent unless an <img> wrapping an <image> exists.
	if xp.Img != nil && xp.Img.Image != nil {
		r.Image = &rawImage{
			Src: strings.TrimSpace(xp.Img.Image.Src),
			Alt: strings.TrimSpace(xp.Img.Image.Alt),
		}
	}
	return r
}
