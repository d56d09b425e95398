// datauri.go - Self-describing data URI encoding for image payloads

package extract

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultMIMEType is assumed when the caller does not declare one.
const DefaultMIMEType = "image/jpeg"

// EncodeDataURI wraps raw image bytes in a data URI embedding the MIME type.
// An empty mimeType falls back to image/jpeg.
func EncodeDataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EnsureDataURI returns a self-describing data URI for the given image
// payload. An already-prefixed data URI is passed through unchanged;
// otherwise one is synthesized from the declared MIME type and the bare
// base64 string.
func EnsureDataURI(image, mimeType string) string {
	if strings.HasPrefix(image, "data:") {
		return image
	}
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return "data:" + mimeType + ";base64," + image
}

// DecodeDataURI splits a data URI back into its MIME type and raw bytes.
// A bare base64 string decodes with the default MIME type.
func DecodeDataURI(uri string) (string, []byte, error) {
	mimeType := DefaultMIMEType
	payload := uri

	if strings.HasPrefix(uri, "data:") {
		rest := strings.TrimPrefix(uri, "data:")
		meta, encoded, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, fmt.Errorf("data URI has no payload separator")
		}
		if !strings.HasSuffix(meta, ";base64") {
			return "", nil, fmt.Errorf("data URI is not base64-encoded")
		}
		if mt := strings.TrimSuffix(meta, ";base64"); mt != "" {
			mimeType = mt
		}
		payload = encoded
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode image payload: %w", err)
	}
	return mimeType, data, nil
}
