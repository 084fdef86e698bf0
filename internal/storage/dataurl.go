package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotDataURL      = errors.New("payload is not a base64 data URL")
	ErrUnsupportedMime = errors.New("unsupported image type")
)

// extensions for the image types the front end produces.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// parseDataURL decodes a "data:<mime>;base64,<payload>" string, which is
// how the browser client ships the selected picture. Only image mime types
// are accepted.
func parseDataURL(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}

	mime, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", nil, ErrNotDataURL
	}

	if _, ok := imageExtensions[mime]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedMime, mime)
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image payload: %w", err)
	}

	return mime, data, nil
}
