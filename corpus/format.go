package corpus

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Format identifies a supported source document format.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	}
	return "unknown"
}

// ErrUnsupportedFormat is returned when a data file extension is neither
// .json nor .xml.
var ErrUnsupportedFormat = errors.New("corpus: unsupported data format")

// DetectFormat maps a data file reference (a filesystem path or a URL) to
// its Format by extension. The extension is the sole discriminator; content
// is never sniffed.
func DetectFormat(file string) (Format, error) {
	name := file
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".xml":
		return FormatXML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, file)
}
