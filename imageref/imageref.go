// Package imageref resolves initial-image references into embeddable data
// URLs and provides the data URL codec shared with the image cache.
//
// A reference is either already a data URL (passed through after
// validation) or a filesystem path. Paths are read and re-encoded with a
// MIME type inferred from the file extension; unrecognized extensions fall
// back to content sniffing, and png when even that is inconclusive.
package imageref

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const dataURLPrefix = "data:"

// extensionMIME maps recognized file extensions to media types.
var extensionMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// IsDataURL reports whether ref is a data URL rather than a path.
func IsDataURL(ref string) bool {
	return strings.HasPrefix(ref, dataURLPrefix)
}

// Encode builds a base64 data URL for the given media type and payload.
func Encode(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// Decode splits a base64 data URL into its media type and raw payload.
func Decode(dataURL string) (mime string, data []byte, err error) {
	if !IsDataURL(dataURL) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	rest := dataURL[len(dataURLPrefix):]
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: missing comma separator")
	}
	mime = meta
	if enc, found := strings.CutSuffix(meta, ";base64"); found {
		mime = enc
	} else {
		return "", nil, fmt.Errorf("malformed data URL: only base64 encoding is supported")
	}
	if mime == "" {
		mime = "text/plain"
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URL payload: %w", err)
	}
	return mime, data, nil
}

// Resolve turns an initial-image reference into an embeddable data URL.
// Data URLs are validated and returned unchanged; paths are read and
// re-encoded.
func Resolve(ref string) (string, error) {
	if IsDataURL(ref) {
		if _, _, err := Decode(ref); err != nil {
			return "", err
		}
		return ref, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("cannot read initial image %q: %w", ref, err)
	}

	return Encode(inferMIME(ref, data), data), nil
}

// inferMIME determines the media type for a file: extension first, then
// content sniffing, then the png default.
func inferMIME(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mime, ok := extensionMIME[ext]; ok {
		return mime
	}

	if detected := mimetype.Detect(data); strings.HasPrefix(detected.String(), "image/") {
		return detected.String()
	}

	return "image/png"
}
