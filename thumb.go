package postview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxThumbWidth    = 480
	thumbJPEGQuality = 80
)

// thumbCache memoizes scaled post-card images by filename and width.
type thumbCache struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newThumbCache() *thumbCache {
	return &thumbCache{blobs: make(map[string][]byte)}
}

func (tc *thumbCache) get(key string) ([]byte, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	blob, ok := tc.blobs[key]
	return blob, ok
}

func (tc *thumbCache) put(key string, blob []byte) {
	tc.mu.Lock()
	tc.blobs[key] = blob
	tc.mu.Unlock()
}

// handleThumb serves a downscaled JPEG of an image in the static dir, for
// post cards whose image src points at a local file. The source is never
// upscaled.
func (a *App) handleThumb(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		return c.String(http.StatusBadRequest, "Invalid filename")
	}

	width := maxThumbWidth
	if w := c.QueryParam("w"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			return c.String(http.StatusBadRequest, "Invalid width")
		}
		if n < width {
			width = n
		}
	}

	key := fmt.Sprintf("%s@%d", filename, width)
	if blob, ok := a.thumbs.get(key); ok {
		return c.Blob(http.StatusOK, "image/jpeg", blob)
	}

	f, err := os.Open(filepath.Join(a.staticDir, filename))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return c.String(http.StatusUnsupportedMediaType, "Not a decodable image")
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > width {
		newH := h * width / w
		dst := image.NewRGBA(image.Rect(0, 0, width, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbJPEGQuality}); err != nil {
		return fmt.Errorf("postview: encode thumb: %w", err)
	}
	a.thumbs.put(key, buf.Bytes())
	return c.Blob(http.StatusOK, "image/jpeg", buf.Bytes())
}
